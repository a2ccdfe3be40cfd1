package stage

import (
	"context"
	"log/slog"

	"eventpipe/internal/dedup"
	"eventpipe/internal/events"
	"eventpipe/internal/logging"
)

// Final merges duplicate events and orders the list for publication.
type Final struct {
	deduper *dedup.Deduper
	logger  *slog.Logger
}

// NewFinal builds the deduplication stage.
func NewFinal(deduper *dedup.Deduper, logger *slog.Logger) *Final {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Final{
		deduper: deduper,
		logger:  logging.NewComponentLogger(logger, NameFinal),
	}
}

func (s *Final) Name() string { return NameFinal }

func (s *Final) Run(ctx context.Context, input []events.Event) ([]events.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	output := s.deduper.Apply(input)
	s.logger.Info("finalized events",
		logging.Int("input_count", len(input)),
		logging.Int("output_count", len(output)))
	return output, nil
}
