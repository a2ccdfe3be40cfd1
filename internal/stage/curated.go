package stage

import (
	"context"
	"log/slog"

	"eventpipe/internal/cultural"
	"eventpipe/internal/events"
	"eventpipe/internal/logging"
)

// Curated filters events through the cultural appropriateness classifier.
type Curated struct {
	filter *cultural.Filter
	logger *slog.Logger
}

// NewCurated builds the curation stage.
func NewCurated(filter *cultural.Filter, logger *slog.Logger) *Curated {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Curated{
		filter: filter,
		logger: logging.NewComponentLogger(logger, NameCurated),
	}
}

func (s *Curated) Name() string { return NameCurated }

func (s *Curated) Run(ctx context.Context, input []events.Event) ([]events.Event, error) {
	output, err := s.filter.Apply(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logger.Info("curated events",
		logging.Int("input_count", len(input)),
		logging.Int("kept_count", len(output)))
	return output, nil
}
