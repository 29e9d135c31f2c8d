package sweeper

import (
	"context"
)

// Sweeper is a long-running background task that periodically drains a work queue
type Sweeper interface {
	// Start runs the sweep loop until ctx is cancelled or Stop is called
	Start(ctx context.Context) error

	// Stop signals the loop and waits for the in-flight cycle to finish
	Stop(ctx context.Context) error

	// Name identifies the sweeper in logs
	Name() string
}
