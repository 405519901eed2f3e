package storage

import (
	"database/sql"
	"fmt"
	"time"

	"fleet-observer/src/helpers"
	"fleet-observer/src/logger"
	"fleet-observer/src/models"

	_ "github.com/lib/pq"
)

// -----------------------------------------------------------------------------

// RoutePostgresDB persists the shipping lane catalog in Postgres, for
// deployments where several observer instances share one catalog.
type RoutePostgresDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRoutePostgresDB(cfg *models.MConfig, log *logger.Logger) (*RoutePostgresDB, error) {
	return &RoutePostgresDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *RoutePostgresDB) Initialize() error {
	dsn := d.Config.Storage.DBConnectionString
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}

	// The database often comes up after the observer in compose
	// deployments, so wait for it rather than failing the boot.
	err = helpers.RetryWithBackoff(d.Logger, "postgres ping", 5, 2*time.Second, db.Ping)
	if err != nil {
		return helpers.NewStorageError("postgres not reachable", err)
	}

	d.DB = db

	if err := d.createTables(); err != nil {
		return err
	}

	if err := d.seedIfEmpty(); err != nil {
		return err
	}

	d.Logger.Info("RoutePostgresDB initialized successfully")
	return nil
}

// -----------------------------------------------------------------------------

func (d *RoutePostgresDB) createTables() error {
	query := `
		CREATE TABLE IF NOT EXISTS routes (
			name TEXT PRIMARY KEY
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create routes: %w", err)
	}

	query = `
		CREATE TABLE IF NOT EXISTS route_waypoints (
			route_name TEXT,
			seq INTEGER,
			lat DOUBLE PRECISION,
			lon DOUBLE PRECISION,
			PRIMARY KEY (route_name, seq)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create route_waypoints: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

func (d *RoutePostgresDB) seedIfEmpty() error {
	var count int
	if err := d.DB.QueryRow("SELECT COUNT(*) FROM routes").Scan(&count); err != nil {
		return fmt.Errorf("failed to count routes: %w", err)
	}
	if count > 0 {
		return nil
	}

	routes := DefaultRoutes()
	if err := saveRoutes(d.DB, routes, "$"); err != nil {
		return err
	}

	d.Logger.Info("Seeded %d built-in routes into Postgres store", len(routes))
	return nil
}

// -----------------------------------------------------------------------------

func (d *RoutePostgresDB) LoadRoutes() ([]models.MRoute, error) {
	return loadRoutes(d.DB, "SELECT route_name, lat, lon FROM route_waypoints ORDER BY route_name, seq")
}

// -----------------------------------------------------------------------------

func (d *RoutePostgresDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
