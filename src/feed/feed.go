package feed

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"fleet-observer/src/interfaces"
	"fleet-observer/src/logger"
	"fleet-observer/src/models"
)

// -----------------------------------------------------------------------------
// Reference Data
// -----------------------------------------------------------------------------

type centroid struct {
	Lat float64
	Lon float64
}

var countryCentroids = map[string]centroid{
	"USA": {39.8, -98.5}, "CHN": {35.86, 104.19}, "DEU": {51.16, 10.45},
	"JPN": {36.20, 138.25}, "GBR": {55.37, -3.44}, "FRA": {46.23, 2.21},
	"IND": {20.59, 78.96}, "BRA": {-14.23, -51.92}, "KOR": {35.91, 127.77},
	"RUS": {61.52, 105.32}, "AUS": {-25.27, 133.78}, "SAU": {23.89, 45.08},
	"SGP": {1.35, 103.82}, "ARE": {23.42, 53.85}, "NGA": {9.08, 8.68},
	"ZAF": {-30.56, 22.94}, "EGY": {26.82, 30.80}, "MEX": {23.63, -102.55},
	"IDN": {-0.79, 113.92}, "NLD": {52.13, 5.29}, "TUR": {38.96, 35.24},
	"CAN": {56.13, -106.35}, "NOR": {60.47, 8.47}, "CHE": {46.82, 8.23},
}

type portEntry struct {
	Name string
	ISO  string
	Lat  float64
	Lon  float64
}

var portsList = []portEntry{
	{"Shanghai", "CHN", 31.23, 121.47},
	{"Singapore", "SGP", 1.26, 103.84},
	{"Ningbo-Zhoushan", "CHN", 29.87, 121.56},
	{"Rotterdam", "NLD", 51.95, 4.13},
	{"Dubai", "ARE", 25.01, 55.06},
	{"Los Angeles", "USA", 33.74, -118.26},
	{"Hamburg", "DEU", 53.55, 9.97},
	{"Busan", "KOR", 35.10, 129.04},
	{"Santos", "BRA", -23.96, -46.33},
	{"Ras Tanura", "SAU", 26.64, 50.17},
}

var riskCountries = []string{"RUS", "IRN", "CHN", "SAU", "BLR", "TUR", "IND", "BRA", "NGA", "EGY"}

type alertTemplate struct {
	Title    string
	Severity string
}

var alertTemplates = []alertTemplate{
	{"Trade surplus spike: %[1]s", "warning"},
	{"Port congestion detected: %[3]s", "critical"},
	{"Sanctions list update: %[1]s", "info"},
	{"Chokepoint disruption risk: %[4]s", "critical"},
	{"Currency volatility: %[1]s", "warning"},
	{"New tariff imposed: %[1]s on %[2]s", "info"},
	{"Shipping delay: %[3]s", "warning"},
	{"Risk score change: %[1]s", "info"},
}

var conflictZones = []string{
	"Ukraine Front", "Red Sea / Houthi", "South China Sea",
	"Gaza Strip", "Sahel Region", "Taiwan Strait", "Strait of Hormuz",
}

// -----------------------------------------------------------------------------
// LiveFeedSimulator
// -----------------------------------------------------------------------------

// LiveFeedSimulator generates synthetic port, alert, and geopolitical
// events on their own cadences, plus a system heartbeat. Every loop
// skips its tick while no clients are connected.
type LiveFeedSimulator struct {
	Config      *models.MConfig
	Logger      *logger.Logger
	Broadcaster interfaces.IBroadcaster

	rng     *rand.Rand
	rngMu   sync.Mutex
	eventID atomic.Int64

	cancelFunc context.CancelFunc
	isRunning  atomic.Bool
	mu         sync.Mutex
}

// -----------------------------------------------------------------------------

func NewLiveFeedSimulator(cfg *models.MConfig, log *logger.Logger, bc interfaces.IBroadcaster) *LiveFeedSimulator {
	return &LiveFeedSimulator{
		Config:      cfg,
		Logger:      log,
		Broadcaster: bc,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

func (f *LiveFeedSimulator) Start(parentCtx context.Context, wg *sync.WaitGroup) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.isRunning.Load() {
		return fmt.Errorf("live feed is already running")
	}

	ctx, cancel := context.WithCancel(parentCtx)
	f.cancelFunc = cancel
	f.isRunning.Store(true)

	wg.Add(4)
	go f.portLoop(ctx, wg)
	go f.alertLoop(ctx, wg)
	go f.geoLoop(ctx, wg)
	go f.heartbeatLoop(ctx, wg)

	f.Logger.Info("Live feed simulator started (4 loops)")
	return nil
}

// -----------------------------------------------------------------------------

func (f *LiveFeedSimulator) Stop() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.isRunning.Load() {
		return fmt.Errorf("live feed is not running")
	}

	if f.cancelFunc != nil {
		f.cancelFunc()
	}
	f.isRunning.Store(false)
	f.Logger.Info("Live feed simulator stopped")
	return nil
}

// -----------------------------------------------------------------------------
// Randomness Helpers
// -----------------------------------------------------------------------------

func (f *LiveFeedSimulator) uniform(lo, hi float64) float64 {
	f.rngMu.Lock()
	defer f.rngMu.Unlock()
	return lo + f.rng.Float64()*(hi-lo)
}

func (f *LiveFeedSimulator) intn(n int) int {
	f.rngMu.Lock()
	defer f.rngMu.Unlock()
	return f.rng.Intn(n)
}

func (f *LiveFeedSimulator) nextID() string {
	return fmt.Sprintf("evt-%d", f.eventID.Add(1))
}

// sleep waits for the base interval plus jitter, or the context.
func (f *LiveFeedSimulator) sleep(ctx context.Context, base, jitterLo, jitterHi float64) bool {
	d := base + f.uniform(jitterLo, jitterHi)
	if d < 0.5 {
		d = 0.5
	}
	select {
	case <-ctx.Done():
		return false
	case <-time.After(time.Duration(d * float64(time.Second))):
		return true
	}
}

// -----------------------------------------------------------------------------
// Port Activity Events
// -----------------------------------------------------------------------------

func (f *LiveFeedSimulator) portLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for f.sleep(ctx, f.Config.Feed.PortIntervalSeconds, -1, 2) {
		if f.Broadcaster.ClientCount() == 0 {
			continue
		}

		port := portsList[f.intn(len(portsList))]
		events := []string{"vessel_arrival", "vessel_departure", "congestion_update", "throughput_update"}
		event := events[f.intn(len(events))]

		data := map[string]interface{}{
			"event":       event,
			"id":          f.nextID(),
			"port_name":   port.Name,
			"country_iso": port.ISO,
			"lat":         port.Lat,
			"lon":         port.Lon,
		}

		switch event {
		case "vessel_arrival", "vessel_departure":
			vesselTypes := []string{"Container", "Bulk Carrier", "Tanker", "LNG Carrier", "RoRo"}
			prefixes := []string{"Pacific", "Atlantic", "Global", "Orient", "Nordic", "Eagle", "Star"}
			suffixes := []string{"Horizon", "Pioneer", "Spirit", "Venture", "Express", "Dawn"}
			vtype := vesselTypes[f.intn(len(vesselTypes))]
			vname := fmt.Sprintf("MV %s %s", prefixes[f.intn(len(prefixes))], suffixes[f.intn(len(suffixes))])
			verb := "Arrived"
			if event == "vessel_departure" {
				verb = "Departed"
			}
			data["vessel_type"] = vtype
			data["vessel_name"] = vname
			data["description"] = fmt.Sprintf("%s: %s (%s) at %s", verb, vname, vtype, port.Name)

		case "congestion_update":
			waitDays := round1(f.uniform(0.5, 14))
			waiting := 2 + f.intn(44)
			data["wait_days"] = waitDays
			data["vessels_waiting"] = waiting
			data["description"] = fmt.Sprintf("%s: %d vessels waiting (%.1fd avg)", port.Name, waiting, waitDays)

		default:
			delta := round1(f.uniform(-5, 8))
			data["throughput_change_pct"] = delta
			data["description"] = fmt.Sprintf("%s throughput %+.1f%%", port.Name, delta)
		}

		f.Broadcaster.Broadcast("ports", data)
	}
}

// -----------------------------------------------------------------------------
// Alert Events
// -----------------------------------------------------------------------------

func (f *LiveFeedSimulator) alertLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for f.sleep(ctx, f.Config.Feed.AlertIntervalSeconds, -3, 5) {
		if f.Broadcaster.ClientCount() == 0 {
			continue
		}

		tpl := alertTemplates[f.intn(len(alertTemplates))]
		iso := riskCountries[f.intn(len(riskCountries))]
		iso2 := iso
		for iso2 == iso {
			iso2 = riskCountries[f.intn(len(riskCountries))]
		}
		port := portsList[f.intn(len(portsList))]
		zone := conflictZones[f.intn(len(conflictZones))]

		title := fmt.Sprintf(tpl.Title, iso, iso2, port.Name, zone)

		f.Broadcaster.Broadcast("alerts", map[string]interface{}{
			"event":       "alert_triggered",
			"id":          f.nextID(),
			"title":       title,
			"severity":    tpl.Severity,
			"description": title,
		})
	}
}

// -----------------------------------------------------------------------------
// Geopolitical Events
// -----------------------------------------------------------------------------

func (f *LiveFeedSimulator) geoLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for f.sleep(ctx, f.Config.Feed.GeoIntervalSeconds, -2, 3) {
		if f.Broadcaster.ClientCount() == 0 {
			continue
		}

		events := []string{"risk_score_change", "conflict_update", "sanctions_update"}
		event := events[f.intn(len(events))]
		iso := riskCountries[f.intn(len(riskCountries))]
		c := countryCentroids[iso]

		data := map[string]interface{}{
			"event":       event,
			"id":          f.nextID(),
			"country_iso": iso,
			"lat":         c.Lat,
			"lon":         c.Lon,
		}

		switch event {
		case "risk_score_change":
			old := round1(f.uniform(20, 70))
			delta := round1(f.uniform(-8, 12))
			data["old_score"] = old
			data["new_score"] = round1(old + delta)
			data["delta"] = delta
			data["description"] = fmt.Sprintf("Risk change %s: %.1f to %.1f (%+.1f)", iso, old, old+delta, delta)

		case "conflict_update":
			zone := conflictZones[f.intn(len(conflictZones))]
			severities := []string{"critical", "high", "moderate"}
			severity := severities[f.intn(len(severities))]
			data["zone_name"] = zone
			data["severity"] = severity
			data["description"] = fmt.Sprintf("Conflict update: %s, severity %s", zone, severity)

		default:
			actions := []string{"entity_added", "entity_removed", "list_updated"}
			action := actions[f.intn(len(actions))]
			data["action"] = action
			data["description"] = fmt.Sprintf("Sanctions %s: %s", action, iso)
		}

		f.Broadcaster.Broadcast("geopolitical", data)
	}
}

// -----------------------------------------------------------------------------
// Heartbeat
// -----------------------------------------------------------------------------

func (f *LiveFeedSimulator) heartbeatLoop(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for f.sleep(ctx, f.Config.Feed.HeartbeatIntervalSeconds, 0, 0) {
		f.Broadcaster.Broadcast("system", map[string]interface{}{
			"event":   "heartbeat",
			"clients": f.Broadcaster.ClientCount(),
			"stats":   f.Broadcaster.Stats(),
		})
	}
}

// -----------------------------------------------------------------------------

func round1(v float64) float64 {
	if v < 0 {
		return float64(int(v*10-0.5)) / 10
	}
	return float64(int(v*10+0.5)) / 10
}
