package storage

import "fleet-observer/src/models"

// -----------------------------------------------------------------------------
// Built-in Shipping Lane Catalog
// -----------------------------------------------------------------------------

// DefaultRoutes returns the built-in shipping lanes. These seed the
// route store on first initialization; the simulator then reads the
// catalog back through the store, so operator edits to the tables
// survive restarts instead of being clobbered by this list.
func DefaultRoutes() []models.MRoute {
	return []models.MRoute{
		{
			// Trans-Pacific: Shanghai to LA
			Name: "trans_pacific_east",
			Waypoints: []models.MWaypoint{
				{Lat: 31.2, Lon: 121.5}, {Lat: 33.0, Lon: 130.0}, {Lat: 35.0, Lon: 140.0}, {Lat: 38.0, Lon: 155.0},
				{Lat: 40.0, Lon: 170.0}, {Lat: 38.0, Lon: -175.0}, {Lat: 36.0, Lon: -160.0}, {Lat: 35.0, Lon: -145.0},
				{Lat: 34.0, Lon: -130.0}, {Lat: 33.7, Lon: -118.3},
			},
		},
		{
			// Trans-Pacific: LA to Shanghai
			Name: "trans_pacific_west",
			Waypoints: []models.MWaypoint{
				{Lat: 33.7, Lon: -118.3}, {Lat: 34.0, Lon: -130.0}, {Lat: 35.0, Lon: -145.0}, {Lat: 36.0, Lon: -160.0},
				{Lat: 38.0, Lon: -175.0}, {Lat: 40.0, Lon: 170.0}, {Lat: 38.0, Lon: 155.0}, {Lat: 35.0, Lon: 140.0},
				{Lat: 33.0, Lon: 130.0}, {Lat: 31.2, Lon: 121.5},
			},
		},
		{
			// Asia-Europe via Suez: Singapore to Rotterdam
			Name: "asia_europe",
			Waypoints: []models.MWaypoint{
				{Lat: 1.3, Lon: 103.8}, {Lat: 5.0, Lon: 95.0}, {Lat: 10.0, Lon: 80.0}, {Lat: 12.0, Lon: 55.0},
				{Lat: 12.5, Lon: 45.0}, {Lat: 14.0, Lon: 43.0}, {Lat: 28.5, Lon: 33.0}, {Lat: 30.5, Lon: 32.3},
				{Lat: 31.3, Lon: 32.3}, {Lat: 35.0, Lon: 25.0}, {Lat: 36.0, Lon: 14.0}, {Lat: 37.5, Lon: 5.0},
				{Lat: 36.0, Lon: -5.5}, {Lat: 43.0, Lon: -9.0}, {Lat: 48.0, Lon: -5.0}, {Lat: 51.0, Lon: 2.0},
				{Lat: 51.9, Lon: 4.1},
			},
		},
		{
			// Europe-Asia via Suez: Rotterdam to Singapore
			Name: "europe_asia",
			Waypoints: []models.MWaypoint{
				{Lat: 51.9, Lon: 4.1}, {Lat: 51.0, Lon: 2.0}, {Lat: 48.0, Lon: -5.0}, {Lat: 43.0, Lon: -9.0},
				{Lat: 36.0, Lon: -5.5}, {Lat: 37.5, Lon: 5.0}, {Lat: 36.0, Lon: 14.0}, {Lat: 35.0, Lon: 25.0},
				{Lat: 31.3, Lon: 32.3}, {Lat: 30.5, Lon: 32.3}, {Lat: 28.5, Lon: 33.0}, {Lat: 14.0, Lon: 43.0},
				{Lat: 12.5, Lon: 45.0}, {Lat: 12.0, Lon: 55.0}, {Lat: 10.0, Lon: 80.0}, {Lat: 5.0, Lon: 95.0},
				{Lat: 1.3, Lon: 103.8},
			},
		},
		{
			// Trans-Atlantic: Rotterdam to New York
			Name: "trans_atlantic_west",
			Waypoints: []models.MWaypoint{
				{Lat: 51.9, Lon: 4.1}, {Lat: 51.0, Lon: -1.0}, {Lat: 50.0, Lon: -8.0}, {Lat: 49.0, Lon: -20.0},
				{Lat: 45.0, Lon: -35.0}, {Lat: 42.0, Lon: -50.0}, {Lat: 40.5, Lon: -65.0}, {Lat: 40.5, Lon: -74.0},
			},
		},
		{
			// Trans-Atlantic: New York to Rotterdam
			Name: "trans_atlantic_east",
			Waypoints: []models.MWaypoint{
				{Lat: 40.5, Lon: -74.0}, {Lat: 40.5, Lon: -65.0}, {Lat: 42.0, Lon: -50.0}, {Lat: 45.0, Lon: -35.0},
				{Lat: 49.0, Lon: -20.0}, {Lat: 50.0, Lon: -8.0}, {Lat: 51.0, Lon: -1.0}, {Lat: 51.9, Lon: 4.1},
			},
		},
		{
			// Persian Gulf to East Asia
			Name: "gulf_asia",
			Waypoints: []models.MWaypoint{
				{Lat: 26.5, Lon: 50.2}, {Lat: 25.5, Lon: 56.5}, {Lat: 22.0, Lon: 60.0}, {Lat: 15.0, Lon: 65.0},
				{Lat: 10.0, Lon: 75.0}, {Lat: 5.0, Lon: 80.0}, {Lat: 1.3, Lon: 103.8}, {Lat: 5.0, Lon: 110.0},
				{Lat: 10.0, Lon: 115.0}, {Lat: 22.0, Lon: 114.2},
			},
		},
		{
			// East Asia to Persian Gulf
			Name: "asia_gulf",
			Waypoints: []models.MWaypoint{
				{Lat: 22.0, Lon: 114.2}, {Lat: 10.0, Lon: 115.0}, {Lat: 5.0, Lon: 110.0}, {Lat: 1.3, Lon: 103.8},
				{Lat: 5.0, Lon: 80.0}, {Lat: 10.0, Lon: 75.0}, {Lat: 15.0, Lon: 65.0}, {Lat: 22.0, Lon: 60.0},
				{Lat: 25.5, Lon: 56.5}, {Lat: 26.5, Lon: 50.2},
			},
		},
		{
			// Brazil to China (iron ore, soybeans)
			Name: "brazil_china",
			Waypoints: []models.MWaypoint{
				{Lat: -23.9, Lon: -46.3}, {Lat: -22.0, Lon: -40.0}, {Lat: -15.0, Lon: -25.0}, {Lat: -5.0, Lon: -10.0},
				{Lat: 5.0, Lon: 10.0}, {Lat: -10.0, Lon: 40.0}, {Lat: -20.0, Lon: 60.0}, {Lat: -15.0, Lon: 80.0},
				{Lat: -5.0, Lon: 95.0}, {Lat: 1.3, Lon: 103.8}, {Lat: 10.0, Lon: 115.0}, {Lat: 22.5, Lon: 114.2},
			},
		},
		{
			// Australia to China (coal, iron ore)
			Name: "australia_china",
			Waypoints: []models.MWaypoint{
				{Lat: -20.3, Lon: 118.6}, {Lat: -15.0, Lon: 118.0}, {Lat: -10.0, Lon: 115.0}, {Lat: -5.0, Lon: 112.0},
				{Lat: 1.3, Lon: 108.0}, {Lat: 10.0, Lon: 114.0}, {Lat: 22.5, Lon: 114.2},
			},
		},
		{
			// Cape of Good Hope route
			Name: "cape_route",
			Waypoints: []models.MWaypoint{
				{Lat: 1.3, Lon: 103.8}, {Lat: 0.0, Lon: 80.0}, {Lat: -10.0, Lon: 60.0}, {Lat: -25.0, Lon: 40.0},
				{Lat: -34.5, Lon: 18.5}, {Lat: -30.0, Lon: 0.0}, {Lat: -15.0, Lon: -20.0}, {Lat: 0.0, Lon: -30.0},
				{Lat: 20.0, Lon: -40.0}, {Lat: 35.0, Lon: -40.0}, {Lat: 43.0, Lon: -20.0}, {Lat: 48.0, Lon: -5.0},
				{Lat: 51.9, Lon: 4.1},
			},
		},
		{
			// Intra-Asia: Japan-Korea-China-ASEAN loop
			Name: "intra_asia",
			Waypoints: []models.MWaypoint{
				{Lat: 35.4, Lon: 139.8}, {Lat: 34.0, Lon: 132.0}, {Lat: 35.1, Lon: 129.0}, {Lat: 31.2, Lon: 121.5},
				{Lat: 22.3, Lon: 114.2}, {Lat: 10.0, Lon: 107.0}, {Lat: 1.3, Lon: 103.8}, {Lat: 5.0, Lon: 110.0},
				{Lat: 10.0, Lon: 118.0}, {Lat: 22.3, Lon: 114.2}, {Lat: 31.2, Lon: 121.5}, {Lat: 35.1, Lon: 129.0},
				{Lat: 35.4, Lon: 139.8},
			},
		},
		{
			// Panama Canal route: East Asia to US East Coast
			Name: "panama_east",
			Waypoints: []models.MWaypoint{
				{Lat: 31.2, Lon: 121.5}, {Lat: 33.0, Lon: 140.0}, {Lat: 30.0, Lon: 160.0}, {Lat: 20.0, Lon: -170.0},
				{Lat: 15.0, Lon: -150.0}, {Lat: 10.0, Lon: -120.0}, {Lat: 9.0, Lon: -79.5}, {Lat: 10.0, Lon: -78.0},
				{Lat: 15.0, Lon: -75.0}, {Lat: 25.0, Lon: -75.0}, {Lat: 32.0, Lon: -80.0}, {Lat: 40.5, Lon: -74.0},
			},
		},
		{
			// Mediterranean loop
			Name: "mediterranean",
			Waypoints: []models.MWaypoint{
				{Lat: 36.0, Lon: -5.5}, {Lat: 36.5, Lon: -2.0}, {Lat: 38.0, Lon: 3.0}, {Lat: 41.0, Lon: 9.0},
				{Lat: 38.0, Lon: 13.0}, {Lat: 35.5, Lon: 15.0}, {Lat: 35.0, Lon: 25.0}, {Lat: 38.0, Lon: 27.0},
				{Lat: 41.0, Lon: 29.0}, {Lat: 38.0, Lon: 27.0}, {Lat: 35.0, Lon: 25.0}, {Lat: 35.5, Lon: 15.0},
				{Lat: 38.0, Lon: 13.0}, {Lat: 41.0, Lon: 9.0}, {Lat: 38.0, Lon: 3.0}, {Lat: 36.5, Lon: -2.0},
				{Lat: 36.0, Lon: -5.5},
			},
		},
		{
			// North Sea / Baltic loop: Rotterdam to Helsinki and back
			Name: "north_sea_baltic",
			Waypoints: []models.MWaypoint{
				{Lat: 51.9, Lon: 4.1}, {Lat: 53.5, Lon: 8.0}, {Lat: 54.5, Lon: 10.0}, {Lat: 55.7, Lon: 12.6},
				{Lat: 57.7, Lon: 12.0}, {Lat: 59.3, Lon: 18.1}, {Lat: 60.2, Lon: 25.0}, {Lat: 59.3, Lon: 18.1},
				{Lat: 57.7, Lon: 12.0}, {Lat: 55.7, Lon: 12.6}, {Lat: 54.5, Lon: 10.0}, {Lat: 53.5, Lon: 8.0},
				{Lat: 51.9, Lon: 4.1},
			},
		},
	}
}
