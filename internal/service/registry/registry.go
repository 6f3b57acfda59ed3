// Package registry refreshes the desktop application database after a
// shortcut has been written.
package registry

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
)

// updateCommand rebuilds the MIME/application cache of a directory.
const updateCommand = "update-desktop-database"

// ErrUnsupportedOS indicates the desktop database exists on Linux only.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// Refresher updates the desktop database for an applications directory.
type Refresher interface {
	Refresh(ctx context.Context, applicationsDir string) error
}

// Command runs update-desktop-database.
type Command struct {
	// Name overrides the executable, mainly for tests.
	Name string
}

// Refresh runs `update-desktop-database <applicationsDir>` and waits for it.
func (c Command) Refresh(ctx context.Context, applicationsDir string) error {
	if runtime.GOOS != "linux" {
		return fmt.Errorf("desktop database on %s: %w", runtime.GOOS, ErrUnsupportedOS)
	}

	name := c.Name
	if name == "" {
		name = updateCommand
	}

	output, err := exec.CommandContext(ctx, name, applicationsDir).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, output)
	}

	return nil
}

// Func adapts a function to Refresher.
type Func func(ctx context.Context, applicationsDir string) error

// Refresh calls f.
func (f Func) Refresh(ctx context.Context, applicationsDir string) error {
	return f(ctx, applicationsDir)
}
