package main

import (
	"fmt"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"eventpipe/internal/workflow"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Collect events from the configured sources and run the full pipeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePipeline(ctx, cmd, workflow.ModeFull)
		},
	}
}

func newFilterCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "filter",
		Short: "Rerun curation and finalization from the existing timestamped artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executePipeline(ctx, cmd, workflow.ModeFilter)
		},
	}
}

func executePipeline(ctx *commandContext, cmd *cobra.Command, mode workflow.Mode) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger()
	if err != nil {
		return err
	}
	ledger, err := ctx.openLedger()
	if err != nil {
		return err
	}
	defer ledger.Close()

	manager, err := workflow.NewPipeline(cfg, ledger, logger)
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result, err := manager.Run(runCtx, mode)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	rows := make([][]string, 0, len(result.Summaries))
	for _, summary := range result.Summaries {
		rows = append(rows, []string{
			summary.Stage,
			strconv.Itoa(summary.InputCount),
			strconv.Itoa(summary.OutputCount),
			summary.Duration.Round(time.Millisecond).String(),
		})
	}
	writeTable(out, []string{"Stage", "In", "Out", "Duration"}, rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight})
	fmt.Fprintf(out, "Run %s finished with %d events in %s\n",
		result.RunID, result.FinalCount, cfg.FinalArtifactPath())
	return nil
}
