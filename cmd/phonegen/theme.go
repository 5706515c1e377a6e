package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/davidleathers/placeholder-numbers/internal/domain/errors"
	"github.com/davidleathers/placeholder-numbers/internal/service/preferences"
)

func newThemeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or change the display theme preference",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(preferences.ThemeLight), string(preferences.ThemeDark), "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prefs := root.app.prefs
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			if len(args) == 0 {
				fmt.Fprintln(out, prefs.Theme(ctx))
				return nil
			}

			var (
				theme preferences.Theme
				err   error
			)
			if args[0] == "toggle" {
				theme, err = prefs.Toggle(ctx)
			} else {
				theme, err = preferences.ParseTheme(args[0])
				if err == nil {
					err = prefs.SetTheme(ctx, theme)
				}
			}

			if errors.IsType(err, errors.ErrorTypePersistence) {
				fmt.Fprintf(errOut, "Warning: %v\n", err)
				return nil
			}
			if err != nil {
				return reject(errOut, err)
			}

			fmt.Fprintf(out, "Theme set to %s\n", theme)
			return nil
		},
	}
}
