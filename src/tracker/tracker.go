package tracker

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fleet-observer/src/interfaces"
	"fleet-observer/src/logger"
	"fleet-observer/src/models"
)

// updateChannelSize buffers source batches so a slow broadcast tick
// never backpressures the ingest socket.
const updateChannelSize = 256

const (
	ModeLive      = "live"
	ModeSimulated = "simulated"
)

// -----------------------------------------------------------------------------
// VesselTracker
// -----------------------------------------------------------------------------

// VesselTracker owns the canonical vessel registry. Exactly one data
// source feeds it; it merges updates under a single lock, periodically
// pushes a display snapshot to the vessels channel, and evicts entries
// whose reports have gone quiet.
type VesselTracker struct {
	Config      *models.MConfig
	Logger      *logger.Logger
	Source      interfaces.IVesselSource
	Broadcaster interfaces.IBroadcaster

	mu          sync.RWMutex
	vessels     map[string]*models.MVesselPosition
	routesAlive int

	updates    chan []models.MVesselUpdate
	cancelFunc context.CancelFunc
	isRunning  atomic.Bool
	lifeMu     sync.Mutex
	wg         sync.WaitGroup
}

// -----------------------------------------------------------------------------

func NewVesselTracker(cfg *models.MConfig, log *logger.Logger, source interfaces.IVesselSource, bc interfaces.IBroadcaster, routesAlive int) *VesselTracker {
	return &VesselTracker{
		Config:      cfg,
		Logger:      log,
		Source:      source,
		Broadcaster: bc,
		vessels:     make(map[string]*models.MVesselPosition),
		routesAlive: routesAlive,
		updates:     make(chan []models.MVesselUpdate, updateChannelSize),
	}
}

// -----------------------------------------------------------------------------

// Mode names which side of the live/simulated split the tracker runs on.
func (t *VesselTracker) Mode() string {
	if t.Source.IsLive() {
		return ModeLive
	}
	return ModeSimulated
}

// maxVessels returns the registry cap for the active mode.
func (t *VesselTracker) maxVessels() int {
	if t.Source.IsLive() {
		return t.Config.Tracker.MaxVesselsLive
	}
	return t.Config.Tracker.MaxVesselsSim
}

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

// Start launches the source and the merge, broadcast, and eviction loops.
func (t *VesselTracker) Start(parentCtx context.Context) error {
	t.lifeMu.Lock()
	defer t.lifeMu.Unlock()

	if t.isRunning.Load() {
		return fmt.Errorf("tracker is already running")
	}

	ctx, cancel := context.WithCancel(parentCtx)
	t.cancelFunc = cancel

	if err := t.Source.Start(ctx, t.updates, &t.wg); err != nil {
		cancel()
		return fmt.Errorf("failed to start data source: %w", err)
	}

	t.isRunning.Store(true)

	t.wg.Add(3)
	go t.mergeLoop(ctx)
	go t.broadcastLoop(ctx)
	go t.evictionLoop(ctx)

	t.Logger.Info("Tracker started in %s mode (source: %s)", t.Mode(), t.Source.Name())
	return nil
}

// -----------------------------------------------------------------------------

// Stop tears down the source and waits for all loops to exit.
func (t *VesselTracker) Stop() error {
	t.lifeMu.Lock()
	defer t.lifeMu.Unlock()

	if !t.isRunning.Load() {
		return fmt.Errorf("tracker is not running")
	}

	if err := t.Source.Stop(); err != nil {
		t.Logger.Warning("Data source stop returned: %v", err)
	}
	if t.cancelFunc != nil {
		t.cancelFunc()
	}
	t.wg.Wait()
	t.isRunning.Store(false)

	t.Logger.Info("Tracker stopped")
	return nil
}

// -----------------------------------------------------------------------------
// Merge Loop
// -----------------------------------------------------------------------------

func (t *VesselTracker) mergeLoop(ctx context.Context) {
	defer t.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-t.updates:
			t.MergeBatch(batch)
		}
	}
}

// -----------------------------------------------------------------------------

// MergeBatch folds a batch of source updates into the registry.
func (t *VesselTracker) MergeBatch(batch []models.MVesselUpdate) {
	t.mu.Lock()
	defer t.mu.Unlock()

	limit := t.maxVessels()
	for i := range batch {
		t.mergeOne(&batch[i], limit)
	}
}

// mergeOne applies a single update. New identities are admitted only
// while the registry is under its cap; updates for known identities
// always land. The flag state is written once and never overwritten,
// since the MMSI prefix it derives from is immutable.
func (t *VesselTracker) mergeOne(u *models.MVesselUpdate, limit int) {
	v := u.Vessel
	existing, known := t.vessels[v.MMSI]

	if !known {
		if len(t.vessels) >= limit {
			return
		}
		fresh := v
		t.vessels[v.MMSI] = &fresh
		return
	}

	switch u.Kind {
	case models.UpdateFull:
		flag := existing.FlagISO
		*existing = v
		if flag != "" {
			existing.FlagISO = flag
		}

	case models.UpdatePosition:
		existing.Lat = v.Lat
		existing.Lon = v.Lon
		existing.SpeedKnots = v.SpeedKnots
		existing.Heading = v.Heading
		existing.LastUpdate = v.LastUpdate
		if existing.Name == "" && v.Name != "" {
			existing.Name = v.Name
		}
		if existing.FlagISO == "" {
			existing.FlagISO = v.FlagISO
		}

	case models.UpdateStatic:
		if v.Name != "" {
			existing.Name = v.Name
		}
		if v.VesselType != "" {
			existing.VesselType = v.VesselType
		}
		if v.Destination != "" {
			existing.Destination = v.Destination
		}
		if v.LengthM > 0 {
			existing.LengthM = v.LengthM
		}
		if v.DraughtM > 0 {
			existing.DraughtM = v.DraughtM
		}
		if existing.FlagISO == "" {
			existing.FlagISO = v.FlagISO
		}
		existing.LastUpdate = v.LastUpdate
	}
}

// -----------------------------------------------------------------------------
// Broadcast Loop
// -----------------------------------------------------------------------------

func (t *VesselTracker) broadcastLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(time.Duration(t.Config.Tracker.BroadcastIntervalSecs) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// No listeners, no work.
			if t.Broadcaster.ClientCount() == 0 {
				continue
			}
			snapshot := t.Vessels()
			t.Broadcaster.Broadcast("vessels", map[string]interface{}{
				"type":    "vessel_positions",
				"vessels": snapshot,
				"count":   len(snapshot),
				"mode":    t.Mode(),
			})
		}
	}
}

// -----------------------------------------------------------------------------
// Eviction Loop
// -----------------------------------------------------------------------------

func (t *VesselTracker) evictionLoop(ctx context.Context) {
	defer t.wg.Done()

	ticker := time.NewTicker(time.Duration(t.Config.Tracker.EvictSweepSeconds) * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := t.EvictStale(time.Now()); n > 0 {
				t.Logger.Info("Evicted %d stale vessels", n)
			}
		}
	}
}

// -----------------------------------------------------------------------------

// EvictStale removes every vessel whose last report is older than the
// eviction cutoff, freeing registry capacity for fresh identities.
func (t *VesselTracker) EvictStale(now time.Time) int {
	cutoff := float64(now.UnixNano())/float64(time.Second) - float64(t.Config.Tracker.EvictStaleSeconds)

	t.mu.Lock()
	defer t.mu.Unlock()

	evicted := 0
	for mmsi, v := range t.vessels {
		if v.LastUpdate < cutoff {
			delete(t.vessels, mmsi)
			evicted++
		}
	}
	return evicted
}

// -----------------------------------------------------------------------------
// Snapshots
// -----------------------------------------------------------------------------

// Vessels returns the display snapshot: rounded copies of every vessel
// heard from within the display-stale window. Quiet vessels stay in the
// registry until eviction but drop out of the view immediately.
func (t *VesselTracker) Vessels() []models.MVesselPosition {
	cutoff := float64(time.Now().UnixNano())/float64(time.Second) - float64(t.Config.Tracker.DisplayStaleSeconds)

	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.MVesselPosition, 0, len(t.vessels))
	for _, v := range t.vessels {
		if v.LastUpdate < cutoff {
			continue
		}
		out = append(out, v.Snapshot())
	}
	return out
}

// -----------------------------------------------------------------------------

// VesselCount returns the registry size before stale filtering.
func (t *VesselTracker) VesselCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.vessels)
}

// -----------------------------------------------------------------------------

// TrackerStats summarizes the registry for the stats endpoints.
func (t *VesselTracker) TrackerStats() models.MTrackerStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	byType := make(map[string]int)
	for _, v := range t.vessels {
		key := v.VesselType
		if key == "" {
			key = models.VesselTypeOther
		}
		byType[key]++
	}

	routes := 0
	if !t.Source.IsLive() {
		routes = t.routesAlive
	}

	return models.MTrackerStats{
		Mode:         t.Mode(),
		TotalVessels: len(t.vessels),
		ByType:       byType,
		RoutesActive: routes,
	}
}
