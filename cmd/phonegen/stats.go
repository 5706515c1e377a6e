package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show how many numbers were generated today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := root.app
			stats := a.generator.Stats()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Date:            %s\n", stats.Date)
			fmt.Fprintf(out, "Total generated: %s\n", humanize.Comma(int64(stats.TotalGenerated)))
			fmt.Fprintf(out, "Unique today:    %s\n", humanize.Comma(int64(stats.UniqueToday)))
			fmt.Fprintf(out, "Session:         %s\n", a.generator.Session().Short(8))
			return nil
		},
	}
}
