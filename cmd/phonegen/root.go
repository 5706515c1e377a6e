package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
	"github.com/davidleathers/placeholder-numbers/internal/infrastructure/clipboard"
)

type rootOptions struct {
	configPath string
	// clipboard overrides the system clipboard
	clipboard clipboard.Writer
	app       *app
}

func newRootCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phonegen",
		Short: "Generate unique placeholder US phone numbers",
		Long: `Generate realistic-looking US phone numbers for test data and mockups.

Numbers are unique within a calendar day; the day's numbers are kept in the
configured store so uniqueness survives restarts.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts.configPath, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			opts.app = a
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default configs/config.yaml if present)")

	cmd.AddCommand(
		newGenerateCmd(opts),
		newStatsCmd(opts),
		newResetCmd(opts),
		newThemeCmd(opts),
	)

	return cmd
}

// reject prints a validation failure for the user. Other errors are returned.
func reject(w io.Writer, err error) error {
	if errors.IsType(err, errors.ErrorTypeValidation) {
		fmt.Fprintf(w, "Rejected: %v\n", err)
		return nil
	}
	return err
}
