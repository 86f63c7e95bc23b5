package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"dugout/internal/events"
	"dugout/internal/services/scoreboard"
)

func newEventsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "events <date>...",
		Short: "Load the game schedule for one or more dates",
		Long:  "Load the game schedule for one or more dates. Dates may be given as YYYY-MM-DD, YYYY/MM/DD, or YYYYMMDD; dates already stored are skipped.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			unlock, err := ctx.acquireRunLock()
			if err != nil {
				return err
			}
			defer unlock()

			st, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			client, err := scoreboard.New(cfg)
			if err != nil {
				return err
			}
			loader, err := events.NewLoader(client, st, logger)
			if err != nil {
				return err
			}

			runCtx, cancel := ctx.runContext()
			defer cancel()

			out := cmd.OutOrStdout()
			for _, dateStub := range args {
				inserted, err := loader.LoadDate(runCtx, dateStub)
				if err != nil {
					return fmt.Errorf("load %s: %w", dateStub, err)
				}
				fmt.Fprintf(out, "%s: %d events stored\n", dateStub, inserted)
			}
			return nil
		},
	}
}
