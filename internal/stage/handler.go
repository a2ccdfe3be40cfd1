package stage

import (
	"context"

	"eventpipe/internal/events"
)

// Stage names as recorded in the run ledger and used for artifact naming.
const (
	NameTimestamped = "timestamped"
	NameCurated     = "curated"
	NameFinal       = "final"
)

// Handler describes the contract the workflow manager needs from each stage:
// transform one event list into the next. Returned errors abort the run;
// per-record problems are handled inside the stage and logged instead.
type Handler interface {
	Name() string
	Run(ctx context.Context, input []events.Event) ([]events.Event, error)
}
