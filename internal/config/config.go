package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the release source and installation settings.
type Config struct {
	// Owner is the GitHub account publishing the releases.
	Owner string `yaml:"owner"`
	// Repository is the GitHub repository name.
	Repository string `yaml:"repository"`
	// AssetName is the prefix of the release asset and the installed binary name.
	AssetName string `yaml:"asset_name"`
	// PlatformLabel is the platform part of the asset name, e.g. "Linux".
	PlatformLabel string `yaml:"platform_label"`
	// APIBaseURL is the root of the release API, e.g. https://api.github.com.
	APIBaseURL string `yaml:"api_base_url"`
	// DownloadBaseURL is the root of release asset downloads, e.g. https://github.com.
	DownloadBaseURL string `yaml:"download_base_url"`
	// IconURL is the fixed location of the SVG icon.
	IconURL string `yaml:"icon_url"`
	// Timeout bounds every single HTTP request.
	Timeout time.Duration `yaml:"timeout"`
	// HomeDir overrides the user's home directory. Empty means os.UserHomeDir.
	HomeDir string `yaml:"home_dir"`
}

const (
	// DefaultOwner is the GitHub account publishing Pandora Launcher.
	DefaultOwner = "Moulberry"

	// DefaultRepository is the GitHub repository of Pandora Launcher.
	DefaultRepository = "PandoraLauncher"

	// DefaultAssetName is the release asset prefix and installed binary name.
	DefaultAssetName = "PandoraLauncher"

	// DefaultPlatformLabel is the platform segment of the Linux asset name.
	DefaultPlatformLabel = "Linux"

	// DefaultAPIBaseURL is the GitHub REST API root.
	DefaultAPIBaseURL = "https://api.github.com"

	// DefaultDownloadBaseURL is the GitHub web root serving release assets.
	DefaultDownloadBaseURL = "https://github.com"

	// DefaultIconURL points at the icon shipped in the repository.
	DefaultIconURL = "https://raw.githubusercontent.com/Moulberry/PandoraLauncher/refs/heads/master/package/pandora.svg"

	// DefaultTimeout bounds a single HTTP request, the binary download included.
	DefaultTimeout = 5 * time.Minute

	// DefaultDirPermissions is used for directories created by the installer.
	DefaultDirPermissions os.FileMode = 0o755

	// DefaultFilePermissions is used for the icon and the desktop entry.
	DefaultFilePermissions os.FileMode = 0o644

	// ExecutablePermissions is applied to the installed binary.
	ExecutablePermissions os.FileMode = 0o755

	// IconFilename is the name of the icon next to the binary.
	IconFilename = "pandora.svg"

	// DesktopEntryFilename is the name of the shortcut descriptor.
	DesktopEntryFilename = "com.moulberry.PandoraLauncher.desktop"
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errOwnerRequired is returned when the release owner is missing.
	errOwnerRequired = errors.New("release owner must be provided")
	// errRepositoryRequired is returned when the release repository is missing.
	errRepositoryRequired = errors.New("release repository must be provided")
	// errAssetNameRequired is returned when the asset name is missing.
	errAssetNameRequired = errors.New("asset name must be provided")
)

// Default returns the settings the installer uses without a config file.
func Default() *Config {
	return &Config{
		Owner:           DefaultOwner,
		Repository:      DefaultRepository,
		AssetName:       DefaultAssetName,
		PlatformLabel:   DefaultPlatformLabel,
		APIBaseURL:      DefaultAPIBaseURL,
		DownloadBaseURL: DefaultDownloadBaseURL,
		IconURL:         DefaultIconURL,
		Timeout:         DefaultTimeout,
	}
}

// Load returns Default overlaid with the YAML file at path.
// An empty path yields the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		contents, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read settings: %w", err)
		}

		if err = yaml.Unmarshal(contents, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal settings: %w", err)
		}
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes cfg to path in YAML format.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err = os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks required fields and URL formatting, filling defaults for
// the timeout and platform label.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	switch {
	case cfg.Owner == "":
		return errOwnerRequired
	case cfg.Repository == "":
		return errRepositoryRequired
	case cfg.AssetName == "":
		return errAssetNameRequired
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.PlatformLabel == "" {
		cfg.PlatformLabel = DefaultPlatformLabel
	}

	for name, raw := range map[string]string{
		"api base URL":      cfg.APIBaseURL,
		"download base URL": cfg.DownloadBaseURL,
		"icon URL":          cfg.IconURL,
	} {
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}

	return nil
}
