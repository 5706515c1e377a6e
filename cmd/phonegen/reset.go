package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newResetCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the numbers generated today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := root.app
			cleared := a.generator.Stats().UniqueToday

			if err := a.generator.Reset(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s generated %s\n",
				humanize.Comma(int64(cleared)), plural(cleared, "number", "numbers"))
			return nil
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
