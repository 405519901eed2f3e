package interfaces

import (
	"context"
	"sync"

	"fleet-observer/src/models"
)

// -----------------------------------------------------------------------------
// IVesselSource interface for producers of vessel state updates.
// -----------------------------------------------------------------------------

type IVesselSource interface {

	// Name returns the unique identifier of the source
	Name() string

	// -----------------------------------------------------------------------------

	// IsLive returns true if the source consumes a real upstream feed
	// rather than simulating one.
	IsLive() bool

	// -----------------------------------------------------------------------------

	// Start begins producing updates.
	// ctx: controls the lifecycle (cancellation stops the source)
	// updates: channel to push normalized update batches to
	// wg: WaitGroup to signal when the source has fully stopped
	Start(ctx context.Context, updates chan<- []models.MVesselUpdate, wg *sync.WaitGroup) error

	// -----------------------------------------------------------------------------

	// Stop terminates the source (manual stop; cancelling the context
	// passed to Start is equivalent).
	Stop() error
}
