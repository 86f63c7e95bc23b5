package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"dugout/internal/store"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show pipeline counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			runCtx, cancel := ctx.runContext()
			defer cancel()

			summary, err := st.Stats(runCtx)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderSummaryTable(summary))
			return nil
		},
	}
}

func renderSummaryTable(summary store.Summary) string {
	rows := [][]string{
		{"Backlog", strconv.Itoa(summary.Backlog)},
		{"Quarantined", strconv.Itoa(summary.Quarantined)},
		{"Videos", strconv.Itoa(summary.Videos)},
		{"Events", strconv.Itoa(summary.Events)},
		{"Files", strconv.Itoa(summary.Files)},
	}
	return renderTable([]string{"Stage", "Count"}, rows, []columnAlignment{alignLeft, alignRight})
}
