package aisstream

import (
	"testing"

	"fleet-observer/src/logger"
	"fleet-observer/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIngestor() *Ingestor {
	cfg := &models.MConfig{
		Tracker: models.MTrackerConfig{
			AISStreamAPIKey: "test-key",
			MaxVesselsLive:  200,
		},
	}
	return NewIngestor(cfg, logger.NewLogger("ERROR", "ais-test"), nil)
}

// -----------------------------------------------------------------------------
// Ship Type Classification
// -----------------------------------------------------------------------------

func TestClassifyShipType(t *testing.T) {
	cases := []struct {
		code int
		name string
		want string
	}{
		{70, "SOME SHIP", models.VesselTypeCargo},
		{79, "SOME SHIP", models.VesselTypeCargo},
		{80, "CRUDE CARRIER", models.VesselTypeTanker},
		{89, "CRUDE CARRIER", models.VesselTypeTanker},
		{60, "ISLAND QUEEN", models.VesselTypePassenger},
		{69, "ISLAND QUEEN", models.VesselTypePassenger},
		{30, "LITTLE TRAWLER", models.VesselTypeFishing},
		{35, "GRAY HULL", models.VesselTypeMilitary},
		{0, "MYSTERY", models.VesselTypeOther},
		{52, "TUG ONE", models.VesselTypeOther},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, classifyShipType(c.code, c.name), "code %d", c.code)
	}
}

func TestClassifyShipTypeRefinesCargoByName(t *testing.T) {
	assert.Equal(t, models.VesselTypeContainer, classifyShipType(71, "MSC OSCAR"))
	assert.Equal(t, models.VesselTypeContainer, classifyShipType(70, "EVER GIVEN"))
	assert.Equal(t, models.VesselTypeBulk, classifyShipType(70, "PACIFIC BULK TRADER"))
	assert.Equal(t, models.VesselTypeLNG, classifyShipType(70, "ARCTIC LNG CARRIER"))

	// Name refinement never applies outside the cargo block
	assert.Equal(t, models.VesselTypeTanker, classifyShipType(80, "GAS PRINCESS"))
}

// -----------------------------------------------------------------------------
// Heading
// -----------------------------------------------------------------------------

func TestResolveHeadingFallsBackToCourse(t *testing.T) {
	assert.Equal(t, 123.0, resolveHeading(123, 45))
	assert.Equal(t, 45.0, resolveHeading(511, 45), "511 means no heading sensor")
	assert.Equal(t, 45.0, resolveHeading(400, 45), "malformed heading treated as unavailable")
	assert.Equal(t, 45.0, resolveHeading(360, 45))
	assert.Equal(t, 0.0, resolveHeading(511, 400), "bad course falls back to zero")
	assert.Equal(t, 0.0, resolveHeading(-1, -1))
}

// -----------------------------------------------------------------------------
// Flag State
// -----------------------------------------------------------------------------

func TestFlagFromMMSI(t *testing.T) {
	assert.Equal(t, "PA", flagFromMMSI("351000123"))
	assert.Equal(t, "US", flagFromMMSI("366999999"))
	assert.Equal(t, "SG", flagFromMMSI("563001234"))
	assert.Equal(t, "", flagFromMMSI("999123456"), "unknown prefix")
	assert.Equal(t, "", flagFromMMSI("12"), "malformed")
}

// -----------------------------------------------------------------------------

func TestCleanName(t *testing.T) {
	assert.Equal(t, "EVER GIVEN", cleanName("EVER GIVEN@@@@@"))
	assert.Equal(t, "MAERSK ALTAIR", cleanName("  MAERSK ALTAIR  "))
	assert.Equal(t, "", cleanName("@@@@"))
}

// -----------------------------------------------------------------------------
// Frame Normalization
// -----------------------------------------------------------------------------

func TestNormalizePositionReport(t *testing.T) {
	g := testIngestor()
	frame := []byte(`{
		"MessageType": "PositionReport",
		"MetaData": {"MMSI": 366123456, "ShipName": "PACIFIC STAR@@"},
		"Message": {"PositionReport": {
			"Latitude": 33.7, "Longitude": -118.3,
			"Sog": 14.2, "Cog": 87.5, "TrueHeading": 511
		}}
	}`)

	u, ok := g.normalize(frame)
	require.True(t, ok)
	assert.Equal(t, models.UpdatePosition, u.Kind)
	assert.Equal(t, "366123456", u.Vessel.MMSI)
	assert.Equal(t, "PACIFIC STAR", u.Vessel.Name)
	assert.Equal(t, models.VesselTypeCargo, u.Vessel.VesselType, "provisional category until static data")
	assert.Equal(t, 33.7, u.Vessel.Lat)
	assert.Equal(t, -118.3, u.Vessel.Lon)
	assert.Equal(t, 14.2, u.Vessel.SpeedKnots)
	assert.Equal(t, 87.5, u.Vessel.Heading, "511 heading resolves to course")
	assert.Equal(t, "US", u.Vessel.FlagISO)
	assert.NotZero(t, u.Vessel.LastUpdate)
}

func TestNormalizeShipStaticData(t *testing.T) {
	g := testIngestor()
	frame := []byte(`{
		"MessageType": "ShipStaticData",
		"MetaData": {"MMSI": 563001234, "ShipName": "FALLBACK NAME"},
		"Message": {"ShipStaticData": {
			"Name": "EVER GIVEN@@",
			"Type": 71,
			"Destination": "ROTTERDAM",
			"MaximumStaticDraught": 145,
			"Dimension": {"A": 200, "B": 199.9}
		}}
	}`)

	u, ok := g.normalize(frame)
	require.True(t, ok)
	assert.Equal(t, models.UpdateStatic, u.Kind)
	assert.Equal(t, "EVER GIVEN", u.Vessel.Name)
	assert.Equal(t, models.VesselTypeContainer, u.Vessel.VesselType)
	assert.Equal(t, "ROTTERDAM", u.Vessel.Destination)
	assert.InDelta(t, 399.9, u.Vessel.LengthM, 1e-9)
	assert.Equal(t, 14.5, u.Vessel.DraughtM)
	assert.Equal(t, "SG", u.Vessel.FlagISO)
}

func TestNormalizeDropsBadFrames(t *testing.T) {
	g := testIngestor()

	_, ok := g.normalize([]byte(`{not json`))
	assert.False(t, ok, "malformed JSON")

	_, ok = g.normalize([]byte(`{"MessageType":"PositionReport","MetaData":{"MMSI":0},"Message":{"PositionReport":{"Latitude":1,"Longitude":1}}}`))
	assert.False(t, ok, "missing MMSI")

	_, ok = g.normalize([]byte(`{"MessageType":"PositionReport","MetaData":{"MMSI":366123456},"Message":{"PositionReport":{"Latitude":95,"Longitude":10}}}`))
	assert.False(t, ok, "latitude out of range")

	_, ok = g.normalize([]byte(`{"MessageType":"PositionReport","MetaData":{"MMSI":366123456},"Message":{"PositionReport":{"Latitude":0,"Longitude":0}}}`))
	assert.False(t, ok, "null-island position")

	_, ok = g.normalize([]byte(`{"MessageType":"PositionReport","MetaData":{"MMSI":366123456},"Message":{"PositionReport":{"Sog":12.0}}}`))
	assert.False(t, ok, "frame without coordinates decodes to (0,0)")

	_, ok = g.normalize([]byte(`{"MessageType":"AidsToNavigationReport","MetaData":{"MMSI":366123456}}`))
	assert.False(t, ok, "unhandled message type")
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

func TestStartRequiresCredential(t *testing.T) {
	cfg := &models.MConfig{}
	g := NewIngestor(cfg, logger.NewLogger("ERROR", "ais-test"), nil)

	assert.False(t, g.IsLive())
	err := g.Start(nil, nil, nil)
	assert.Error(t, err)
}
