package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/oshokin/pandora-installer/internal/config"
)

var errConfigExists = errors.New("configuration file already exists")

// attachInitConfigCommand adds the init-config subcommand, which writes the
// default settings to a new YAML file for editing.
func attachInitConfigCommand(root *cobra.Command) {
	root.AddCommand(&cobra.Command{
		Use:   "init-config FILE",
		Short: "Write the default configuration to FILE.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			_, err := os.Stat(path)
			switch {
			case err == nil:
				return fmt.Errorf("%w: %s", errConfigExists, path)
			case !errors.Is(err, fs.ErrNotExist):
				return fmt.Errorf("check %s: %w", path, err)
			}

			if err = config.Save(path, config.Default()); err != nil {
				return fmt.Errorf("save configuration: %w", err)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Default configuration written to %s\n", path)

			return nil
		},
	})
}
