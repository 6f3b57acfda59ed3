package installer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/oshokin/pandora-installer/internal/config"
	"github.com/oshokin/pandora-installer/internal/domain/release"
	"github.com/oshokin/pandora-installer/internal/logger"
	"github.com/oshokin/pandora-installer/internal/platform"
	"github.com/oshokin/pandora-installer/internal/repository/shortcut"
	"github.com/oshokin/pandora-installer/internal/service/common"
	"github.com/oshokin/pandora-installer/internal/service/registry"
	"github.com/oshokin/pandora-installer/internal/spinner"
)

// applicationName is the menu label of the installed launcher.
const applicationName = "Pandora Launcher"

// Options are inputs accepted by the installer entry point.
// Zero values select the real host detector, command and streams.
type Options struct {
	// Config is the release source and installation settings. Nil means config.Default.
	Config *config.Config
	// Detector reads the machine architecture.
	Detector platform.Detector
	// Refresher updates the desktop database.
	Refresher registry.Refresher
	// HTTPClient performs every request.
	HTTPClient *http.Client
	// Progress receives the spinner frames.
	Progress io.Writer
	// Out receives the success message.
	Out io.Writer
}

// runner holds the state of a single installation.
type runner struct {
	cfg       *config.Config
	paths     *config.Paths
	source    release.Source
	client    *common.Client
	detector  platform.Detector
	refresher registry.Refresher
	shortcuts shortcut.Repository
	progress  io.Writer
	out       io.Writer

	arch    string
	release *release.Release
}

// Run installs the latest release and is the public entry point for the CLI.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "installer")

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	if err = r.run(ctx); err != nil {
		if ctx.Err() != nil && !errors.Is(err, ErrInterrupted) {
			err = fmt.Errorf("%w: %w", ErrInterrupted, err)
		}

		logger.DebugKV(ctx, "Installer run failed", "error", err)

		return err
	}

	return nil
}

func newRunner(opts *Options) (*runner, error) {
	if opts == nil {
		opts = new(Options)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	paths, err := config.ResolvePaths(cfg)
	if err != nil {
		return nil, err
	}

	client, err := common.NewClient(
		cfg.APIBaseURL,
		common.WithCallTimeout(cfg.Timeout),
		common.WithHTTPClient(opts.HTTPClient),
	)
	if err != nil {
		return nil, err
	}

	r := &runner{
		cfg:   cfg,
		paths: paths,
		source: release.Source{
			DownloadBaseURL: cfg.DownloadBaseURL,
			Owner:           cfg.Owner,
			Repository:      cfg.Repository,
			AssetName:       cfg.AssetName,
			PlatformLabel:   cfg.PlatformLabel,
		},
		client:    client,
		detector:  opts.Detector,
		refresher: opts.Refresher,
		shortcuts: shortcut.NewFileRepository(paths.DesktopEntry),
		progress:  opts.Progress,
		out:       opts.Out,
	}

	if r.detector == nil {
		r.detector = platform.NewDetector()
	}

	if r.refresher == nil {
		r.refresher = registry.Command{}
	}

	if r.progress == nil {
		r.progress = os.Stderr
	}

	if r.out == nil {
		r.out = os.Stdout
	}

	return r, nil
}

// run executes the installation steps in order:
// 1) Check the platform.
// 2) Look up the latest release.
// 3) Prepare directories.
// 4) Download the binary.
// 5) Download the icon.
// 6) Mark the binary executable.
// 7) Write the desktop entry.
// 8) Refresh the desktop database.
func (r *runner) run(ctx context.Context) error {
	if err := r.checkPlatform(ctx); err != nil {
		return err
	}

	if err := r.lookupRelease(ctx); err != nil {
		return err
	}

	ctx = logger.WithKV(ctx, "tag", r.release.Tag)

	if err := r.preparePaths(ctx); err != nil {
		return err
	}

	r.reportPreviousInstall(ctx)

	if err := r.installBinary(ctx); err != nil {
		return err
	}

	if err := r.installIcon(ctx); err != nil {
		return err
	}

	if err := os.Chmod(r.paths.Binary, config.ExecutablePermissions); err != nil {
		return fmt.Errorf("%w: %w", ErrPermission, err)
	}

	if err := r.writeShortcut(ctx); err != nil {
		return err
	}

	if err := r.refresher.Refresh(ctx, r.paths.ApplicationsDir); err != nil {
		logger.DebugKV(ctx, "Desktop database refresh failed", "error", err)
	}

	logger.InfoKV(ctx, "Installation finished", "binary", r.paths.Binary)

	_, _ = fmt.Fprintf(r.out, "%s %s installed successfully\n", applicationName, r.release.NumericVersion())

	return nil
}

// checkPlatform fails before any network request on unsupported machines.
func (r *runner) checkPlatform(ctx context.Context) error {
	info, err := r.detector.Detect(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ErrInterrupted
		}

		return fmt.Errorf("%w: %w", ErrUnsupportedPlatform, err)
	}

	arch, err := platform.Check(info)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnsupportedPlatform, err)
	}

	logger.DebugKV(ctx, "Detected platform",
		"arch", info.Arch, "distro", info.Distro, "distro_version", info.DistroVersion)

	r.arch = arch

	return nil
}

// lookupRelease fetches the latest tag with the spinner running.
func (r *runner) lookupRelease(ctx context.Context) error {
	s := spinner.Start(ctx, r.progress, "Getting the latest version")

	latest, err := r.client.LatestRelease(ctx, r.cfg.Owner, r.cfg.Repository)

	s.Stop()

	if ctx.Err() != nil {
		return ErrInterrupted
	}

	if err != nil {
		return fmt.Errorf("%w: %w", ErrVersionLookupFailed, err)
	}

	logger.InfoKV(ctx, "Found latest release", "tag", latest.Tag)

	r.release = latest

	return nil
}

// preparePaths creates the install and applications directories.
func (r *runner) preparePaths(ctx context.Context) error {
	for _, dir := range []string{r.paths.InstallDir, r.paths.ApplicationsDir} {
		if err := os.MkdirAll(dir, config.DefaultDirPermissions); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := checkWritable(r.paths.Binary); err != nil {
		return fmt.Errorf("install directory %s is not writable: %w", r.paths.InstallDir, err)
	}

	logger.DebugKV(ctx, "Prepared directories",
		"install_dir", r.paths.InstallDir, "applications_dir", r.paths.ApplicationsDir)

	return nil
}

// reportPreviousInstall logs when the same release is already installed.
func (r *runner) reportPreviousInstall(ctx context.Context) {
	entry, err := r.shortcuts.Load(ctx)
	if err != nil {
		return
	}

	if entry.Release != r.release.Tag {
		logger.InfoKV(ctx, "Upgrading existing installation", "installed", entry.Release)
		return
	}

	if _, err = os.Stat(r.paths.Binary); err == nil {
		logger.Info(ctx, "This version is already installed, reinstalling")
	}
}

// installBinary downloads the release asset and applies it to the install path.
func (r *runner) installBinary(ctx context.Context) error {
	assetFilename := r.release.AssetFilename(r.source, r.arch)
	downloadURL := r.release.DownloadURL(r.source, r.arch)

	if pids, err := runningProcesses(r.cfg.AssetName); err == nil && len(pids) > 0 {
		logger.WarnKV(ctx, "The launcher is running, restart it to use the new version", "pids", pids)
	}

	var checksum []byte

	if digest, ok := r.release.Digest(assetFilename); ok {
		var err error

		checksum, err = parseDigest(digest)
		if err != nil {
			return &DownloadError{URL: downloadURL, Err: err}
		}
	}

	logger.InfoKV(ctx, "Downloading binary", "url", downloadURL)

	var payload bytes.Buffer
	if err := r.client.Download(ctx, downloadURL, &payload); err != nil {
		return &DownloadError{URL: downloadURL, Err: err}
	}

	if err := applyBinary(ctx, r.paths.Binary, payload.Bytes(), checksum); err != nil {
		return &DownloadError{URL: downloadURL, Err: err}
	}

	return nil
}

// installIcon downloads the icon next to the binary.
func (r *runner) installIcon(ctx context.Context) error {
	logger.DebugKV(ctx, "Downloading icon", "url", r.cfg.IconURL)

	var payload bytes.Buffer
	if err := r.client.Download(ctx, r.cfg.IconURL, &payload); err != nil {
		return &DownloadError{URL: r.cfg.IconURL, Err: err}
	}

	if err := os.WriteFile(r.paths.Icon, payload.Bytes(), config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write icon: %w", err)
	}

	return nil
}

// writeShortcut renders the desktop entry pointing at the files of this run.
func (r *runner) writeShortcut(ctx context.Context) error {
	entry := &shortcut.Entry{
		Name:    applicationName,
		Exec:    r.paths.Binary,
		Icon:    r.paths.Icon,
		Release: r.release.Tag,
	}

	if err := r.shortcuts.Save(ctx, entry); err != nil {
		return err
	}

	logger.DebugKV(ctx, "Wrote desktop entry", "path", r.paths.DesktopEntry)

	return nil
}
