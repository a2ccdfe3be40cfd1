package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"eventpipe/internal/runlog"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs [run-id]",
		Short: "Show recent pipeline runs, or one run's stages",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := ctx.openLedger()
			if err != nil {
				return err
			}
			defer ledger.Close()

			if len(args) == 1 {
				return showRunStages(cmd, ledger, args[0])
			}
			return showRecentRuns(cmd, ledger, limit)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to list")
	return cmd
}

func showRecentRuns(cmd *cobra.Command, ledger *runlog.Store, limit int) error {
	runs, err := ledger.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		duration := ""
		if run.FinishedAt != nil {
			duration = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
		}
		rows = append(rows, []string{
			run.ID,
			run.Mode,
			run.Status,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			run.Error,
		})
	}
	writeTable(cmd.OutOrStdout(),
		[]string{"Run", "Mode", "Status", "Started", "Duration", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft})
	return nil
}

func showRunStages(cmd *cobra.Command, ledger *runlog.Store, runID string) error {
	stages, err := ledger.StageResults(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(stages) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No stages recorded for run %s\n", runID)
		return nil
	}

	rows := make([][]string, 0, len(stages))
	for _, stage := range stages {
		duration := ""
		if stage.FinishedAt != nil {
			duration = stage.FinishedAt.Sub(stage.StartedAt).Round(time.Millisecond).String()
		}
		rows = append(rows, []string{
			stage.Stage,
			stage.Status,
			strconv.Itoa(stage.InputCount),
			strconv.Itoa(stage.OutputCount),
			duration,
			stage.Error,
		})
	}
	writeTable(cmd.OutOrStdout(),
		[]string{"Stage", "Status", "In", "Out", "Duration", "Error"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft})
	return nil
}
