package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths lists every filesystem location written by the installer.
type Paths struct {
	// InstallDir holds the binary and the icon.
	InstallDir string
	// Binary is the installed executable.
	Binary string
	// Icon is the downloaded SVG next to the binary.
	Icon string
	// ApplicationsDir is the XDG applications directory.
	ApplicationsDir string
	// DesktopEntry is the shortcut descriptor inside ApplicationsDir.
	DesktopEntry string
}

// ResolvePaths derives installation paths from cfg.HomeDir, or from the
// current user's home directory when it is empty.
func ResolvePaths(cfg *Config) (*Paths, error) {
	home := cfg.HomeDir
	if home == "" {
		var err error

		home, err = os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("detect home directory: %w", err)
		}
	}

	share := filepath.Join(home, ".local", "share")
	installDir := filepath.Join(share, cfg.AssetName)
	applicationsDir := filepath.Join(share, "applications")

	return &Paths{
		InstallDir:      installDir,
		Binary:          filepath.Join(installDir, cfg.AssetName),
		Icon:            filepath.Join(installDir, IconFilename),
		ApplicationsDir: applicationsDir,
		DesktopEntry:    filepath.Join(applicationsDir, DesktopEntryFilename),
	}, nil
}
