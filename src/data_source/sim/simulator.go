package sim

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"fleet-observer/src/geo"
	"fleet-observer/src/logger"
	"fleet-observer/src/models"
)

// firstMMSI seeds the synthetic identity counter. Simulated identities
// live in a block that can never collide with real 9-digit MMSIs below it.
const firstMMSI = 200000000

// minSegmentNM floors degenerate segments so progress math stays finite.
const minSegmentNM = 0.1

// -----------------------------------------------------------------------------
// simVessel
// -----------------------------------------------------------------------------

// simVessel ties a vessel state to its lane cursor: the segment index and
// the fractional progress (0..1) along it. Progress only moves forward;
// exhausting the final segment wraps the cursor back to segment zero, so
// the fleet population never churns.
type simVessel struct {
	state     models.MVesselPosition
	route     models.MRoute
	segment   int
	progress  float64
	baseSpeed float64
}

// -----------------------------------------------------------------------------
// Simulator
// -----------------------------------------------------------------------------

// Simulator advances a synthetic fleet along the shipping-lane catalog.
// It is a closed system: deterministic for a fixed seed and profile (with
// jitter amplitudes zeroed), needing no upstream connectivity, which makes
// it the default data source.
type Simulator struct {
	Config  *models.MConfig
	Logger  *logger.Logger
	profile FleetProfile

	rng     *rand.Rand
	vessels []*simVessel

	cancelFunc context.CancelFunc
	isRunning  atomic.Bool
	mu         sync.Mutex
}

// -----------------------------------------------------------------------------

func NewSimulator(cfg *models.MConfig, log *logger.Logger, routes []models.MRoute, profile FleetProfile) *Simulator {
	s := &Simulator{
		Config:  cfg,
		Logger:  log,
		profile: profile,
		rng:     rand.New(rand.NewSource(seedOrNow(cfg.Tracker.SimSeed))),
	}
	s.initFleet(routes)
	return s
}

func seedOrNow(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

// -----------------------------------------------------------------------------

func (s *Simulator) Name() string { return "MotionSimulator" }

// IsLive returns false: the simulator needs no upstream feed.
func (s *Simulator) IsLive() bool { return false }

// FleetSize returns the number of simulated vessels.
func (s *Simulator) FleetSize() int { return len(s.vessels) }

// -----------------------------------------------------------------------------
// Fleet Initialization
// -----------------------------------------------------------------------------

// initFleet distributes vessels across routes per the profile, capped by
// the simulated-mode vessel limit. Each vessel starts at a random point
// along a random segment of its route so the fleet doesn't cluster at
// route origins on the first broadcast.
func (s *Simulator) initFleet(routes []models.MRoute) {
	byName := make(map[string]models.MRoute, len(routes))
	names := make([]string, 0, len(routes))
	for _, r := range routes {
		byName[r.Name] = r
		names = append(names, r.Name)
	}

	limit := s.Config.Tracker.MaxVesselsSim
	mmsi := int64(firstMMSI)

	for _, name := range names {
		route := byName[name]
		count := s.profile.RouteCounts[name]
		if len(route.Waypoints) < 2 || count == 0 {
			continue
		}

		for i := 0; i < count; i++ {
			if len(s.vessels) >= limit {
				s.Logger.Warning("Simulated fleet capped at %d vessels", limit)
				return
			}
			mmsi++
			s.vessels = append(s.vessels, s.spawnVessel(strconv.FormatInt(mmsi, 10), route, i))
		}
	}

	s.Logger.Info("Initialized %d simulated vessels across %d routes", len(s.vessels), len(names))
}

// -----------------------------------------------------------------------------

func (s *Simulator) spawnVessel(mmsi string, route models.MRoute, ordinal int) *simVessel {
	vtype := s.pickType(route.Name)

	name := s.pickName(vtype)
	if ordinal > 0 {
		suffixes := []string{"I", "II", "III", "IV", "V", "VI"}
		name = fmt.Sprintf("%s %s", name, suffixes[s.rng.Intn(len(suffixes))])
	}

	baseSpeed := s.sample(s.profile.SpeedRanges[vtype], 14)
	length := s.sample(s.profile.LengthRanges[vtype], 180)

	// Random starting cursor
	seg := s.rng.Intn(route.Segments())
	prog := s.rng.Float64()

	a := route.Waypoints[seg]
	b := route.Waypoints[seg+1]
	lat := a.Lat + (b.Lat-a.Lat)*prog + s.jitter(s.profile.PlacementJitterDeg)
	lon := a.Lon + (b.Lon-a.Lon)*prog + s.jitter(s.profile.PlacementJitterDeg)

	dest := route.Waypoints[len(route.Waypoints)-1]

	sv := &simVessel{
		state: models.MVesselPosition{
			MMSI:        mmsi,
			Name:        name,
			VesselType:  vtype,
			Lat:         lat,
			Lon:         lon,
			SpeedKnots:  baseSpeed + s.jitter(2),
			Heading:     geo.InitialBearing(a.Lat, a.Lon, b.Lat, b.Lon),
			Destination: s.nearestPort(dest.Lat, dest.Lon),
			FlagISO:     s.pickFlag(),
			LengthM:     float64(int(length)),
			DraughtM:    float64(int(s.sample(s.profile.DraughtRange, 10)*10)) / 10,
			LastUpdate:  float64(time.Now().UnixNano()) / float64(time.Second),
		},
		route:     route,
		segment:   seg,
		progress:  prog,
		baseSpeed: baseSpeed,
	}
	return sv
}

// -----------------------------------------------------------------------------

// pickType draws a category from the route-biased weight table.
func (s *Simulator) pickType(routeName string) string {
	weights := s.profile.TypeWeights
	for _, bias := range s.profile.RouteBiases {
		if strings.Contains(routeName, bias.Match) {
			weights = bias.Weights
			break
		}
	}
	if len(weights) == 0 {
		return models.VesselTypeCargo
	}

	total := 0.0
	for _, w := range weights {
		total += w.Weight
	}
	pick := s.rng.Float64() * total
	for _, w := range weights {
		pick -= w.Weight
		if pick <= 0 {
			return w.Type
		}
	}
	return weights[len(weights)-1].Type
}

func (s *Simulator) pickName(vtype string) string {
	pool, ok := s.profile.NamePools[vtype]
	if !ok || len(pool) == 0 {
		pool = s.profile.NamePools[models.VesselTypeCargo]
	}
	if len(pool) == 0 {
		return "Unnamed"
	}
	return pool[s.rng.Intn(len(pool))]
}

func (s *Simulator) pickFlag() string {
	if len(s.profile.Flags) == 0 {
		return ""
	}
	return s.profile.Flags[s.rng.Intn(len(s.profile.Flags))]
}

func (s *Simulator) sample(r Range, fallback float64) float64 {
	if r.Max <= r.Min {
		return fallback
	}
	return r.Min + s.rng.Float64()*(r.Max-r.Min)
}

// jitter returns a uniform value in [-amplitude, amplitude].
func (s *Simulator) jitter(amplitude float64) float64 {
	if amplitude == 0 {
		return 0
	}
	return (s.rng.Float64()*2 - 1) * amplitude
}

func (s *Simulator) nearestPort(lat, lon float64) string {
	best := "Unknown"
	bestDist := -1.0
	for _, p := range s.profile.Ports {
		d := (lat-p.Lat)*(lat-p.Lat) + (lon-p.Lon)*(lon-p.Lon)
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = p.Name
		}
	}
	return best
}

// -----------------------------------------------------------------------------
// Tick Advancement
// -----------------------------------------------------------------------------

// advance moves one vessel along its lane by dt seconds of travel.
//
// Carried-over progress across a segment boundary is rescaled by the
// ratio of the old segment's length to the new one's, so one tick covers
// the same physical distance regardless of how unevenly the lane is
// segmented. A cursor that has exhausted the final segment wraps back to
// segment zero on the following call.
func (s *Simulator) advance(sv *simVessel, dt float64) {
	wps := sv.route.Waypoints
	if len(wps) < 2 {
		return
	}
	lastSegment := len(wps) - 2

	// Closed-loop wrap: the lane has no terminus.
	if sv.progress >= 1.0 && sv.segment >= lastSegment {
		sv.segment = 0
		sv.progress = 0.0
		a, b := wps[0], wps[1]
		sv.state.Lat = a.Lat + s.jitter(s.profile.PositionJitterDeg)
		sv.state.Lon = a.Lon + s.jitter(s.profile.PositionJitterDeg)
		sv.state.Heading = geo.InitialBearing(a.Lat, a.Lon, b.Lat, b.Lon)
		return
	}

	a := wps[sv.segment]
	b := wps[sv.segment+1]
	segDist := geo.HaversineNM(a.Lat, a.Lon, b.Lat, b.Lon)
	if segDist < minSegmentNM {
		segDist = minSegmentNM
	}

	speed := sv.baseSpeed + s.jitter(s.profile.SpeedJitterKnots)
	if speed < 2.0 {
		speed = 2.0
	}

	distNM := speed / 3600.0 * dt
	sv.progress += distNM / segDist

	for sv.progress >= 1.0 && sv.segment < lastSegment {
		sv.progress -= 1.0
		sv.segment++
		a = wps[sv.segment]
		b = wps[sv.segment+1]
		newDist := geo.HaversineNM(a.Lat, a.Lon, b.Lat, b.Lon)
		if newDist > minSegmentNM {
			sv.progress = sv.progress * segDist / newDist
			segDist = newDist
		}
	}

	t := sv.progress
	if t > 1.0 {
		t = 1.0
	} else if t < 0.0 {
		t = 0.0
	}

	sv.state.Lat = a.Lat + (b.Lat-a.Lat)*t + s.jitter(s.profile.PositionJitterDeg)
	sv.state.Lon = a.Lon + (b.Lon-a.Lon)*t + s.jitter(s.profile.PositionJitterDeg)
	sv.state.Heading = geo.InitialBearing(a.Lat, a.Lon, b.Lat, b.Lon)
	sv.state.SpeedKnots = speed
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start begins the tick loop.
func (s *Simulator) Start(parentCtx context.Context, updates chan<- []models.MVesselUpdate, wg *sync.WaitGroup) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning.Load() {
		return fmt.Errorf("source %s is already running", s.Name())
	}

	ctx, cancel := context.WithCancel(parentCtx)
	s.cancelFunc = cancel
	s.isRunning.Store(true)

	wg.Add(1)
	go s.runLoop(ctx, updates, wg)
	s.Logger.Info("Started %s: %d vessels, tick %ds", s.Name(), len(s.vessels), s.Config.Tracker.SimTickSeconds)
	return nil
}

// -----------------------------------------------------------------------------

// Stop signals the tick loop to exit.
func (s *Simulator) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning.Load() {
		return fmt.Errorf("source %s is not running", s.Name())
	}

	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.isRunning.Store(false)
	s.Logger.Info("Stopped %s", s.Name())
	return nil
}

// -----------------------------------------------------------------------------

func (s *Simulator) runLoop(ctx context.Context, updates chan<- []models.MVesselUpdate, wg *sync.WaitGroup) {
	defer wg.Done()

	tick := time.Duration(s.Config.Tracker.SimTickSeconds) * time.Second
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	dt := tick.Seconds()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			now := float64(time.Now().UnixNano()) / float64(time.Second)

			batch := make([]models.MVesselUpdate, 0, len(s.vessels))
			for _, sv := range s.vessels {
				s.advance(sv, dt)
				sv.state.LastUpdate = now
				batch = append(batch, models.MVesselUpdate{
					Kind:   models.UpdateFull,
					Vessel: sv.state,
				})
			}

			select {
			case updates <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}
