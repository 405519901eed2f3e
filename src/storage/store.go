package storage

import (
	"database/sql"
	"fmt"

	"fleet-observer/src/helpers"
	"fleet-observer/src/interfaces"
	"fleet-observer/src/logger"
	"fleet-observer/src/models"
)

// -----------------------------------------------------------------------------
// Store Factory
// -----------------------------------------------------------------------------

// NewRouteStore selects the configured backend.
func NewRouteStore(cfg *models.MConfig, log *logger.Logger) (interfaces.IRouteStore, error) {
	switch cfg.Storage.DBType {
	case "sqlite":
		return NewRouteSQLiteDB(cfg, log)
	case "postgres":
		return NewRoutePostgresDB(cfg, log)
	default:
		return nil, helpers.NewConfigurationError(
			fmt.Sprintf("unsupported db_type: %s", cfg.Storage.DBType), nil)
	}
}

// -----------------------------------------------------------------------------
// Shared SQL Plumbing
// -----------------------------------------------------------------------------

// placeholders renders a parameter list in the backend's style: "?" for
// SQLite, "$" for Postgres ordinal parameters.
func placeholders(style string, n int) string {
	out := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			out += ", "
		}
		if style == "$" {
			out += fmt.Sprintf("$%d", i)
		} else {
			out += "?"
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// saveRoutes writes a full catalog inside one transaction.
func saveRoutes(db *sql.DB, routes []models.MRoute, style string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	routeStmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO routes (name) VALUES (%s)", placeholders(style, 1)))
	if err != nil {
		return err
	}
	defer routeStmt.Close()

	wpStmt, err := tx.Prepare(fmt.Sprintf(
		"INSERT INTO route_waypoints (route_name, seq, lat, lon) VALUES (%s)", placeholders(style, 4)))
	if err != nil {
		return err
	}
	defer wpStmt.Close()

	for _, r := range routes {
		if _, err := routeStmt.Exec(r.Name); err != nil {
			return fmt.Errorf("failed to insert route %s: %w", r.Name, err)
		}
		for i, wp := range r.Waypoints {
			if _, err := wpStmt.Exec(r.Name, i, wp.Lat, wp.Lon); err != nil {
				return fmt.Errorf("failed to insert waypoint %d of %s: %w", i, r.Name, err)
			}
		}
	}

	return tx.Commit()
}

// -----------------------------------------------------------------------------

// loadRoutes reads the catalog back. The query must return rows ordered
// by route then sequence so waypoints reassemble in lane order.
func loadRoutes(db *sql.DB, query string) ([]models.MRoute, error) {
	rows, err := db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query waypoints: %w", err)
	}
	defer rows.Close()

	var routes []models.MRoute
	var current *models.MRoute

	for rows.Next() {
		var name string
		var lat, lon float64
		if err := rows.Scan(&name, &lat, &lon); err != nil {
			return nil, fmt.Errorf("failed to scan waypoint: %w", err)
		}

		if current == nil || current.Name != name {
			routes = append(routes, models.MRoute{Name: name})
			current = &routes[len(routes)-1]
		}
		current.Waypoints = append(current.Waypoints, models.MWaypoint{Lat: lat, Lon: lon})
	}

	return routes, rows.Err()
}
