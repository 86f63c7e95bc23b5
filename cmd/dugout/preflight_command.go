package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dugout/internal/preflight"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check binaries, directories, and APIs before a run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			runCtx, cancel := ctx.runContext()
			defer cancel()

			results := preflight.RunAll(runCtx, cfg)
			fmt.Fprintln(cmd.OutOrStdout(), renderPreflightTable(results))

			for _, result := range results {
				if !result.Passed {
					return fmt.Errorf("preflight failed: %s", result.Name)
				}
			}
			return nil
		},
	}
}

func renderPreflightTable(results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "FAIL"
		if result.Passed {
			status = "OK"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	return renderTable([]string{"Check", "Status", "Detail"}, rows, []columnAlignment{alignLeft, alignLeft, alignLeft})
}
