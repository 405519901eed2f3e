package storage

import (
	"database/sql"
	"fmt"

	"fleet-observer/src/logger"
	"fleet-observer/src/models"

	_ "modernc.org/sqlite"
)

// -----------------------------------------------------------------------------

// RouteSQLiteDB persists the shipping lane catalog in a local SQLite
// file. The built-in catalog seeds an empty store; after that the
// tables are authoritative.
type RouteSQLiteDB struct {
	Config *models.MConfig
	DB     *sql.DB
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

func NewRouteSQLiteDB(cfg *models.MConfig, log *logger.Logger) (*RouteSQLiteDB, error) {
	return &RouteSQLiteDB{
		Config: cfg,
		Logger: log,
	}, nil
}

// -----------------------------------------------------------------------------

func (d *RouteSQLiteDB) Initialize() error {
	dsn := d.Config.Storage.DBPath

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}

	if err := db.Ping(); err != nil {
		return err
	}

	d.DB = db

	// PRAGMA optimizations
	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		d.Logger.Warning("Failed to set WAL mode: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL;"); err != nil {
		d.Logger.Warning("Failed to set synchronous mode: %v", err)
	}

	if err := d.createTables(); err != nil {
		return err
	}

	return d.seedIfEmpty()
}

// -----------------------------------------------------------------------------

func (d *RouteSQLiteDB) createTables() error {
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
			lat REAL,
			lon REAL,
			PRIMARY KEY (route_name, seq)
		);
	`
	if _, err := d.DB.Exec(query); err != nil {
		return fmt.Errorf("failed to create route_waypoints: %w", err)
	}

	return nil
}

// -----------------------------------------------------------------------------

// seedIfEmpty loads the built-in catalog into an empty store.
func (d *RouteSQLiteDB) seedIfEmpty() error {
	var count int
	if err := d.DB.QueryRow("SELECT COUNT(*) FROM routes").Scan(&count); err != nil {
		return fmt.Errorf("failed to count routes: %w", err)
	}
	if count > 0 {
		return nil
	}

	routes := DefaultRoutes()
	if err := saveRoutes(d.DB, routes, "?"); err != nil {
		return err
	}

	d.Logger.Info("Seeded %d built-in routes into SQLite store", len(routes))
	return nil
}

// -----------------------------------------------------------------------------

func (d *RouteSQLiteDB) LoadRoutes() ([]models.MRoute, error) {
	return loadRoutes(d.DB, "SELECT route_name, lat, lon FROM route_waypoints ORDER BY route_name, seq")
}

// -----------------------------------------------------------------------------

func (d *RouteSQLiteDB) Close() error {
	if d.DB != nil {
		return d.DB.Close()
	}
	return nil
}
