package registry

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCommand_MissingExecutable reports a failure the installer can ignore.
func TestCommand_MissingExecutable(t *testing.T) {
	t.Parallel()

	err := Command{Name: "definitely-not-a-real-binary-name"}.Refresh(context.Background(), t.TempDir())
	require.Error(t, err)
}

// TestCommand_Runs executes a command that accepts one argument.
func TestCommand_Runs(t *testing.T) {
	t.Parallel()

	if runtime.GOOS != "linux" {
		t.Skip("desktop database is refreshed on Linux only")
	}

	require.NoError(t, Command{Name: "true"}.Refresh(context.Background(), t.TempDir()))
}

// TestFunc forwards the directory.
func TestFunc(t *testing.T) {
	t.Parallel()

	var got string

	f := Func(func(_ context.Context, dir string) error {
		got = dir
		return nil
	})

	require.NoError(t, f.Refresh(context.Background(), "/apps"))
	require.Equal(t, "/apps", got)
}
