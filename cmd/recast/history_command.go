package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"recast/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var statusFlag string
	var limitFlag int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past translation jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			var filter history.Status
			if statusFlag != "" {
				parsed, ok := history.ParseStatus(statusFlag)
				if !ok {
					return fmt.Errorf("unknown status %q", statusFlag)
				}
				filter = parsed
			}

			store, err := history.Open(cfg.HistoryDBPath())
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			jobs, err := store.List(cmd.Context(), filter, limitFlag)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(jobs) == 0 {
				fmt.Fprintln(out, "No jobs recorded")
				return nil
			}

			rows := make([][]string, 0, len(jobs))
			for _, job := range jobs {
				detail := job.Backend
				if job.Status == history.StatusFailed {
					detail = job.ErrorMessage
				}
				rows = append(rows, []string{
					fmt.Sprintf("%d", job.ID),
					job.Input,
					job.SourceLanguage + " -> " + job.TargetLanguage,
					string(job.Status),
					detail,
					job.UpdatedAt.Local().Format(time.DateTime),
				})
			}
			fmt.Fprintln(out, renderTable([]string{"ID", "Input", "Languages", "Status", "Detail", "Updated"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&statusFlag, "status", "", "Filter by job status")
	cmd.Flags().IntVarP(&limitFlag, "limit", "n", 20, "Maximum number of jobs to show (0 for all)")
	return cmd
}
