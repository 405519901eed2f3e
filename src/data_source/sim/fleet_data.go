package sim

import "fleet-observer/src/models"

// -----------------------------------------------------------------------------
// Fleet Profile
// -----------------------------------------------------------------------------

// WeightedType is one entry of a weighted category choice.
type WeightedType struct {
	Type   string
	Weight float64
}

// RouteBias overrides the default category weights for routes whose name
// contains Match (oil corridors skew toward tankers, ore runs toward bulk
// carriers, and so on).
type RouteBias struct {
	Match   string
	Weights []WeightedType
}

// Range is a closed [Min, Max] interval sampled uniformly.
type Range struct {
	Min, Max float64
}

// NamedPoint is a port with its coordinates, used to label destinations.
type NamedPoint struct {
	Name     string
	Lat, Lon float64
}

// FleetProfile holds every data table the simulator needs. The algorithm
// itself carries no fleet-flavor text; swap the profile to simulate a
// different fleet.
type FleetProfile struct {
	RouteCounts map[string]int

	TypeWeights []WeightedType
	RouteBiases []RouteBias

	SpeedRanges  map[string]Range // knots, per category
	LengthRanges map[string]Range // metres, per category
	DraughtRange Range

	NamePools map[string][]string
	Flags     []string
	Ports     []NamedPoint

	// Jitter amplitudes. Zero values disable jitter, which the tests
	// rely on for exact advancement checks.
	SpeedJitterKnots   float64 // per-tick speed fluctuation
	PositionJitterDeg  float64 // per-tick lat/lon scatter
	PlacementJitterDeg float64 // one-off lateral offset at spawn
}

// -----------------------------------------------------------------------------

// DefaultFleetProfile returns the builtin world-fleet tables. Route names
// must match the shipping-lane catalog.
func DefaultFleetProfile() FleetProfile {
	return FleetProfile{
		RouteCounts: map[string]int{
			"trans_pacific_east": 12, "trans_pacific_west": 10,
			"asia_europe": 14, "europe_asia": 12,
			"trans_atlantic_west": 6, "trans_atlantic_east": 6,
			"gulf_asia": 10, "asia_gulf": 8,
			"brazil_china": 5, "australia_china": 7,
			"cape_route": 4, "intra_asia": 15,
			"panama_east": 6, "mediterranean": 10,
			"north_sea_baltic": 8,
		},

		TypeWeights: []WeightedType{
			{models.VesselTypeContainer, 0.35},
			{models.VesselTypeTanker, 0.20},
			{models.VesselTypeBulk, 0.15},
			{models.VesselTypeCargo, 0.15},
			{models.VesselTypeLNG, 0.08},
			{models.VesselTypePassenger, 0.07},
		},

		RouteBiases: []RouteBias{
			{Match: "gulf", Weights: []WeightedType{
				{models.VesselTypeTanker, 0.45},
				{models.VesselTypeLNG, 0.25},
				{models.VesselTypeCargo, 0.15},
				{models.VesselTypeBulk, 0.15},
			}},
			{Match: "brazil", Weights: []WeightedType{
				{models.VesselTypeBulk, 0.6},
				{models.VesselTypeCargo, 0.25},
				{models.VesselTypeTanker, 0.15},
			}},
			{Match: "australia", Weights: []WeightedType{
				{models.VesselTypeBulk, 0.6},
				{models.VesselTypeCargo, 0.25},
				{models.VesselTypeTanker, 0.15},
			}},
			{Match: "mediterranean", Weights: []WeightedType{
				{models.VesselTypeContainer, 0.3},
				{models.VesselTypePassenger, 0.2},
				{models.VesselTypeCargo, 0.25},
				{models.VesselTypeTanker, 0.25},
			}},
		},

		SpeedRanges: map[string]Range{
			models.VesselTypeContainer: {16, 22},
			models.VesselTypeTanker:    {12, 16},
			models.VesselTypeBulk:      {12, 15},
			models.VesselTypeCargo:     {13, 17},
			models.VesselTypeLNG:       {17, 20},
			models.VesselTypePassenger: {18, 24},
		},

		LengthRanges: map[string]Range{
			models.VesselTypeContainer: {280, 400},
			models.VesselTypeTanker:    {200, 350},
			models.VesselTypeBulk:      {200, 340},
			models.VesselTypeCargo:     {120, 250},
			models.VesselTypeLNG:       {260, 345},
			models.VesselTypePassenger: {250, 360},
		},
		DraughtRange: Range{8, 16},

		NamePools: map[string][]string{
			models.VesselTypeContainer: {
				"Ever Given", "MSC Gulsun", "HMM Algeciras", "CMA CGM Jacques Saade",
				"OOCL Hong Kong", "Cosco Shipping Universe", "MOL Triumph",
				"Madrid Maersk", "MSC Isabella", "Ever Ace", "ONE Innovation",
				"Hapag-Lloyd Berlin Express", "Yang Ming Warranty", "ZIM Sammy Ofer",
				"MSC Tessa", "Ever Forward", "MSC Irina", "Evergreen Triton",
			},
			models.VesselTypeTanker: {
				"Knock Nevis", "TI Europe", "Seawise Giant", "Jahre Viking",
				"Nissos Therassia", "Minerva Gloria", "Eagle Vancouver",
				"Maran Tankers Poseidon", "Olympic Lion", "Euronav Carthage",
				"Stena Vision", "Torm Hellerup", "Teekay Cougar", "DHT Hawk",
			},
			models.VesselTypeCargo: {
				"Global Mercy", "Atlantic Star", "Pacific Explorer",
				"Nordic Breeze", "Baltic Phoenix", "Arabian Wind",
				"Oceanic Progress", "Cape Victory", "Coral Enterprise",
				"Golden Horizon", "Silver Bay", "Arctic Pioneer",
			},
			models.VesselTypeBulk: {
				"Valemax Brasil", "Cape Tsubaki", "Mineral New York",
				"Pacific Basin Dalian", "Star Bulk Hercules", "Oldendorff Alster",
				"Golden Ocean Baltic", "Navios Pollux", "Pan Ocean Dignity",
				"Berge Stahl", "Ore Brasil", "CSL Welland",
			},
			models.VesselTypeLNG: {
				"Mozah", "Al Dafna", "Creole Spirit", "British Emerald",
				"Gaslog Salem", "Flex Freedom", "Dynagas Lena River",
				"Mitsui Genesis", "LNG Jurojin", "Cool Discoverer",
			},
			models.VesselTypePassenger: {
				"Symphony of the Seas", "Wonder of the Seas", "MSC World Europa",
				"Celebrity Edge", "Norwegian Prima", "AIDAnova", "Costa Smeralda",
			},
		},

		Flags: []string{
			"PAN", "LBR", "MHL", "HKG", "SGP", "BHS", "MLT", "GRC",
			"CHN", "NOR", "JPN", "GBR", "DEU", "CYP", "DNK", "KOR",
			"USA", "ITA", "TUR", "IND", "BEL", "NLD", "FRA",
		},

		Ports: []NamedPoint{
			{"Shanghai", 31.2, 121.5}, {"Singapore", 1.3, 103.8},
			{"Rotterdam", 51.9, 4.1}, {"Los Angeles", 33.7, -118.3},
			{"New York", 40.5, -74.0}, {"Dubai", 25.3, 55.3},
			{"Hong Kong", 22.3, 114.2}, {"Tokyo", 35.4, 139.8},
			{"Busan", 35.1, 129.0}, {"Santos", -23.9, -46.3},
			{"Port Hedland", -20.3, 118.6}, {"Ras Tanura", 26.5, 50.2},
			{"Hamburg", 53.5, 8.0}, {"Antwerp", 51.3, 4.3},
			{"Piraeus", 37.9, 23.6}, {"Suez", 30.0, 32.6},
			{"Panama", 9.0, -79.5}, {"Gothenburg", 57.7, 12.0},
		},

		SpeedJitterKnots:   0.5,
		PositionJitterDeg:  0.02,
		PlacementJitterDeg: 0.3,
	}
}
