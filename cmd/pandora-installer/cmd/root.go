package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/pandora-installer/internal/config"
	"github.com/oshokin/pandora-installer/internal/logger"
	"github.com/oshokin/pandora-installer/internal/service/installer"
	"github.com/oshokin/pandora-installer/internal/version"
)

// errUnknownLogLevel is returned for --log-level values the logger does not know.
type errUnknownLogLevel string

func (e errUnknownLogLevel) Error() string {
	return fmt.Sprintf("unknown log level %q", string(e))
}

// newRootCommand builds the installer command around run, the installer
// entry point.
func newRootCommand(run func(context.Context, *installer.Options) error) *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	root := &cobra.Command{
		Use:   "pandora-installer",
		Short: "Install the latest Pandora Launcher for the current user.",
		Long: `Download the latest Pandora Launcher release for Linux x86_64 into
~/.local/share/PandoraLauncher and register a desktop entry for it in
~/.local/share/applications.

Without flags the installer uses the official GitHub releases. A YAML file
passed with --config can point it at another owner, repository or mirror.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level, ok := logger.ParseLogLevel(logLevel)
			if !ok {
				return errUnknownLogLevel(logLevel)
			}

			logger.SetLevel(level)

			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			return run(ctx, &installer.Options{
				Config:   cfg,
				Progress: cmd.ErrOrStderr(),
				Out:      cmd.OutOrStdout(),
			})
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "", "path to an optional YAML configuration file")
	root.Flags().StringVarP(&logLevel, "log-level", "l", "info", "log level: debug, info, warn or error")

	version.AttachCobraVersionCommand(root)
	attachInitConfigCommand(root)

	return root
}

// execute runs root with args, writes the failure line to stderr and
// returns the process exit code.
func execute(root *cobra.Command, args []string, stderr io.Writer) int {
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if msg := installer.UserMessage(err); msg != "" {
		_, _ = fmt.Fprintln(stderr, msg)
	}

	return installer.ExitCode(err)
}

// Execute runs the pandora-installer CLI and exits with its status code.
func Execute() {
	os.Exit(execute(newRootCommand(installer.Run), os.Args[1:], os.Stderr))
}
