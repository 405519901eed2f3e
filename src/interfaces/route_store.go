package interfaces

import "fleet-observer/src/models"

// -----------------------------------------------------------------------------
// IRouteStore defines the contract for the shipping-lane catalog.
// -----------------------------------------------------------------------------

type IRouteStore interface {

	// Initialize sets up the schema and seeds the catalog when empty.
	Initialize() error

	// -----------------------------------------------------------------------------

	// LoadRoutes returns every route in the catalog.
	LoadRoutes() ([]models.MRoute, error)

	// -----------------------------------------------------------------------------

	// Close the underlying connection
	Close() error
}
