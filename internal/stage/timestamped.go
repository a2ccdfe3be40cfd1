package stage

import (
	"context"
	"log/slog"

	"eventpipe/internal/events"
	"eventpipe/internal/geocode"
	"eventpipe/internal/logging"
	"eventpipe/internal/services"
	"eventpipe/internal/timestamp"
)

// Timestamped resolves each event's free-text date and time into epoch
// timestamps and its location name into coordinates. Events whose schedule
// cannot be parsed at all are excluded from the stage output; the raw
// artifact retains them for inspection. Location resolution failures are
// softer: the event continues with absent coordinates.
type Timestamped struct {
	normalizer *timestamp.Normalizer
	resolver   *geocode.Resolver
	logger     *slog.Logger
}

// NewTimestamped builds the resolution stage.
func NewTimestamped(normalizer *timestamp.Normalizer, resolver *geocode.Resolver, logger *slog.Logger) *Timestamped {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Timestamped{
		normalizer: normalizer,
		resolver:   resolver,
		logger:     logging.NewComponentLogger(logger, NameTimestamped),
	}
}

func (s *Timestamped) Name() string { return NameTimestamped }

// Run normalizes timestamps and geocodes locations for every input event.
// Geocoding errors are logged per event and leave the coordinates absent;
// only context cancellation aborts the stage.
func (s *Timestamped) Run(ctx context.Context, input []events.Event) ([]events.Event, error) {
	output := make([]events.Event, 0, len(input))
	unparseable := 0
	for _, event := range input {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := s.normalizer.Normalize(event.Date, event.Time)
		if result.Kind == timestamp.Unparseable {
			unparseable++
			s.logger.Warn("excluding event with unparseable schedule",
				logging.String(logging.FieldEvent, event.Name),
				logging.String(logging.FieldSource, event.Source),
				logging.String("date", event.Date),
				logging.String("time", event.Time))
			continue
		}
		event.StartTimestamp, event.EndTimestamp = result.Unix()

		coords, err := s.resolver.Resolve(ctx, event.LocationName)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			// A misconfigured provider would fail identically for every
			// event; stop instead of logging a warning per record.
			if services.IsFatal(err) {
				return nil, err
			}
			s.logger.Warn("geocoding failed",
				logging.String(logging.FieldEvent, event.Name),
				logging.String(logging.FieldSource, event.Source),
				logging.String(logging.FieldLocation, event.LocationName),
				logging.Error(err))
		} else if coords != nil {
			event.LocationLat = events.Float64Ptr(coords.Lat)
			event.LocationLng = events.Float64Ptr(coords.Lng)
		}

		output = append(output, event)
	}

	s.logger.Info("resolved event schedules",
		logging.Int("event_count", len(output)),
		logging.Int("excluded_count", unparseable))
	return output, nil
}
