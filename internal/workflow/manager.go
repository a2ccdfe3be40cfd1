package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"eventpipe/internal/events"
	"eventpipe/internal/logging"
	"eventpipe/internal/runlog"
	"eventpipe/internal/services"
	"eventpipe/internal/stage"
)

// Mode selects a run's entry point.
type Mode string

const (
	// ModeFull collects raw events from the sources and runs every stage.
	ModeFull Mode = "full"
	// ModeFilter resumes from the existing timestamped artifact and reruns
	// curation and finalization only.
	ModeFilter Mode = "filter"
)

// ErrLocked indicates another run currently holds the data directory.
var ErrLocked = errors.New("another run is in progress")

// Ingestor produces the raw event list for a full run.
type Ingestor interface {
	Collect(ctx context.Context) ([]events.Event, error)
}

// Step pairs a stage with the artifact path its output is committed to.
type Step struct {
	Handler  stage.Handler
	Artifact string
}

// StageSummary reports one executed stage for the CLI.
type StageSummary struct {
	Stage       string
	InputCount  int
	OutputCount int
	Duration    time.Duration
}

// RunResult is the outcome of a completed run.
type RunResult struct {
	RunID      string
	Mode       Mode
	Summaries  []StageSummary
	FinalCount int
}

// Manager drives a run through its stages.
type Manager struct {
	ingestor    Ingestor
	steps       []Step
	rawArtifact string
	ledger      *runlog.Store
	lock        *flock.Flock
	logger      *slog.Logger
}

// NewManager assembles a run manager. steps must be ordered and start with
// the timestamped stage; rawArtifact is where a full run commits collected
// events before the first stage reads them.
func NewManager(ingestor Ingestor, steps []Step, rawArtifact, lockPath string, ledger *runlog.Store, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Manager{
		ingestor:    ingestor,
		steps:       steps,
		rawArtifact: rawArtifact,
		ledger:      ledger,
		lock:        flock.New(lockPath),
		logger:      logging.NewComponentLogger(logger, "workflow"),
	}
}

// Run executes the pipeline in the given mode and returns its summary. The
// returned error is the run's fatal failure, if any; per-record problems
// have already been logged by the stages.
func (m *Manager) Run(ctx context.Context, mode Mode) (*RunResult, error) {
	locked, err := m.lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}
	defer func() { _ = m.lock.Unlock() }()

	runID := uuid.NewString()
	if err := m.ledger.StartRun(ctx, runID, string(mode)); err != nil {
		return nil, err
	}
	m.logger.Info("run started",
		logging.String(logging.FieldRunID, runID),
		logging.String("mode", string(mode)))

	result, runErr := m.execute(ctx, runID, mode)
	if finishErr := m.ledger.FinishRun(ctx, runID, runErr); finishErr != nil {
		m.logger.Warn("failed to record run finish",
			logging.String(logging.FieldRunID, runID),
			logging.Error(finishErr))
	}
	if runErr != nil {
		m.logger.Error("run failed",
			logging.String(logging.FieldRunID, runID),
			logging.Error(runErr))
		return nil, runErr
	}
	m.logger.Info("run completed",
		logging.String(logging.FieldRunID, runID),
		logging.Int("final_count", result.FinalCount))
	return result, nil
}

func (m *Manager) execute(ctx context.Context, runID string, mode Mode) (*RunResult, error) {
	var (
		input []events.Event
		steps []Step
		err   error
	)
	switch mode {
	case ModeFull:
		input, err = m.collectRaw(ctx, runID)
		if err != nil {
			return nil, err
		}
		steps = m.steps
	case ModeFilter:
		if len(m.steps) < 2 {
			return nil, services.Wrap(services.ErrConfiguration, "workflow", "run", "no filter stages configured", nil)
		}
		input, err = events.ReadArtifact(m.steps[0].Artifact)
		if err != nil {
			if errors.Is(err, events.ErrArtifactMissing) {
				return nil, services.Wrap(services.ErrValidation, "workflow", "run",
					"no timestamped artifact to resume from (run the full pipeline first)", err)
			}
			return nil, services.Wrap(services.ErrValidation, "workflow", "run", "read timestamped artifact", err)
		}
		steps = m.steps[1:]
	default:
		return nil, services.Wrap(services.ErrConfiguration, "workflow", "run", fmt.Sprintf("unknown mode %q", mode), nil)
	}

	result := &RunResult{RunID: runID, Mode: mode}
	for _, step := range steps {
		output, summary, err := m.runStep(ctx, runID, step, input)
		if err != nil {
			return nil, err
		}
		result.Summaries = append(result.Summaries, summary)
		input = output
	}
	result.FinalCount = len(input)
	return result, nil
}

// collectRaw gathers events from the sources and commits the raw artifact.
func (m *Manager) collectRaw(ctx context.Context, runID string) ([]events.Event, error) {
	started := time.Now()
	m.recordStage(ctx, runlog.StageResult{
		RunID: runID, Stage: "raw", Status: runlog.StatusRunning, StartedAt: started,
	})

	collected, err := m.ingestor.Collect(ctx)
	if err != nil {
		m.finishStage(ctx, runID, "raw", started, 0, 0, err)
		return nil, err
	}
	if err := events.WriteArtifact(m.rawArtifact, collected); err != nil {
		err = services.Wrap(services.ErrValidation, "workflow", "raw", "write artifact", err)
		m.finishStage(ctx, runID, "raw", started, 0, len(collected), err)
		return nil, err
	}
	m.finishStage(ctx, runID, "raw", started, 0, len(collected), nil)
	m.logger.Info("raw artifact committed",
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldArtifact, m.rawArtifact),
		logging.Int("event_count", len(collected)))
	return collected, nil
}

func (m *Manager) runStep(ctx context.Context, runID string, step Step, input []events.Event) ([]events.Event, StageSummary, error) {
	name := step.Handler.Name()
	started := time.Now()
	m.recordStage(ctx, runlog.StageResult{
		RunID: runID, Stage: name, Status: runlog.StatusRunning,
		InputCount: len(input), StartedAt: started,
	})

	output, err := step.Handler.Run(ctx, input)
	if err != nil {
		m.finishStage(ctx, runID, name, started, len(input), 0, err)
		return nil, StageSummary{}, fmt.Errorf("stage %s: %w", name, err)
	}
	if err := events.WriteArtifact(step.Artifact, output); err != nil {
		err = services.Wrap(services.ErrValidation, "workflow", name, "write artifact", err)
		m.finishStage(ctx, runID, name, started, len(input), len(output), err)
		return nil, StageSummary{}, err
	}
	m.finishStage(ctx, runID, name, started, len(input), len(output), nil)

	m.logger.Info("stage completed",
		logging.String(logging.FieldRunID, runID),
		logging.String(logging.FieldStage, name),
		logging.String(logging.FieldArtifact, step.Artifact),
		logging.Int("input_count", len(input)),
		logging.Int("output_count", len(output)))
	return output, StageSummary{
		Stage:       name,
		InputCount:  len(input),
		OutputCount: len(output),
		Duration:    time.Since(started),
	}, nil
}

func (m *Manager) recordStage(ctx context.Context, result runlog.StageResult) {
	if err := m.ledger.RecordStage(ctx, result); err != nil {
		m.logger.Warn("failed to record stage state",
			logging.String(logging.FieldRunID, result.RunID),
			logging.String(logging.FieldStage, result.Stage),
			logging.Error(err))
	}
}

func (m *Manager) finishStage(ctx context.Context, runID, name string, started time.Time, inputCount, outputCount int, stageErr error) {
	finished := time.Now()
	status := runlog.StatusCompleted
	message := ""
	if stageErr != nil {
		status = runlog.StatusFailed
		message = stageErr.Error()
	}
	m.recordStage(ctx, runlog.StageResult{
		RunID: runID, Stage: name, Status: status,
		InputCount: inputCount, OutputCount: outputCount,
		StartedAt: started, FinishedAt: &finished, Error: message,
	})
}
