package cultural

import (
	"context"
	"log/slog"

	"eventpipe/internal/events"
	"eventpipe/internal/logging"
)

const defaultBatchSize = 20

// Filter applies a Classifier to an event list in batches and keeps only the
// events scored admissible at or above the confidence threshold.
type Filter struct {
	classifier Classifier
	threshold  float64
	batchSize  int
	logger     *slog.Logger
}

// NewFilter builds a filter over classifier. threshold is the minimum
// confidence an admissible verdict needs to survive; batchSize <= 0 selects
// the default.
func NewFilter(classifier Classifier, threshold float64, batchSize int, logger *slog.Logger) *Filter {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Filter{
		classifier: classifier,
		threshold:  threshold,
		batchSize:  batchSize,
		logger:     logging.NewComponentLogger(logger, "cultural"),
	}
}

// Apply filters list, preserving input order. A batch whose classification
// fails is excluded wholesale, with every dropped event logged; the
// remaining batches still run. Apply returns an error only when ctx is
// cancelled.
func (f *Filter) Apply(ctx context.Context, list []events.Event) ([]events.Event, error) {
	kept := make([]events.Event, 0, len(list))
	for start := 0; start < len(list); start += f.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+f.batchSize, len(list))
		batch := list[start:end]

		verdicts, err := f.classifier.Classify(ctx, batch)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			f.logger.Warn("classification failed, excluding batch",
				logging.Int("batch_size", len(batch)),
				logging.Error(err))
			for _, event := range batch {
				f.logger.Warn("excluding unclassified event",
					logging.String(logging.FieldEvent, event.Name),
					logging.String(logging.FieldSource, event.Source))
			}
			continue
		}

		for i, event := range batch {
			verdict := verdicts[i]
			if verdict.Admissible && verdict.Confidence >= f.threshold {
				kept = append(kept, event)
				continue
			}
			f.logger.Info("excluding event",
				logging.String(logging.FieldEvent, event.Name),
				logging.String(logging.FieldSource, event.Source),
				logging.Bool("admissible", verdict.Admissible),
				logging.Float64("confidence", verdict.Confidence),
				logging.String("reason", verdict.Reason))
		}
	}
	return kept, nil
}
