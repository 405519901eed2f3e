package aisstream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"fleet-observer/src/geo"
	"fleet-observer/src/helpers"
	"fleet-observer/src/interfaces"
	"fleet-observer/src/logger"
	"fleet-observer/src/models"
)

// -----------------------------------------------------------------------------
// Wire Frames
// -----------------------------------------------------------------------------

// subscribeFrame is the first message on every new connection. The
// bounding box covers the whole globe; filtering happens downstream.
type subscribeFrame struct {
	APIKey             string        `json:"APIKey"`
	BoundingBoxes      [][][]float64 `json:"BoundingBoxes"`
	FilterMessageTypes []string      `json:"FilterMessageTypes"`
}

type streamMessage struct {
	MessageType string `json:"MessageType"`
	MetaData    struct {
		MMSI     json.Number `json:"MMSI"`
		ShipName string      `json:"ShipName"`
	} `json:"MetaData"`
	Message struct {
		PositionReport struct {
			Latitude    float64 `json:"Latitude"`
			Longitude   float64 `json:"Longitude"`
			Sog         float64 `json:"Sog"`
			Cog         float64 `json:"Cog"`
			TrueHeading float64 `json:"TrueHeading"`
		} `json:"PositionReport"`
		ShipStaticData struct {
			Name                 string  `json:"Name"`
			Type                 int     `json:"Type"`
			Destination          string  `json:"Destination"`
			MaximumStaticDraught float64 `json:"MaximumStaticDraught"`
			Dimension            struct {
				A float64 `json:"A"`
				B float64 `json:"B"`
			} `json:"Dimension"`
		} `json:"ShipStaticData"`
	} `json:"Message"`
}

// -----------------------------------------------------------------------------
// Ingestor
// -----------------------------------------------------------------------------

// Ingestor consumes the aisstream.io firehose and normalizes each frame
// into a vessel update. It owns only transport and normalization; the
// canonical vessel registry merges and caps downstream.
//
// Reconnects use a fixed delay rather than backoff: the upstream drops
// idle connections routinely and the subscription must be replayed on
// every new socket, so hammering avoidance matters less than a steady
// return to service.
type Ingestor struct {
	Config *models.MConfig
	Logger *logger.Logger
	Dialer interfaces.IStreamDialer

	cancelFunc context.CancelFunc
	isRunning  atomic.Bool
	mu         sync.Mutex
}

// -----------------------------------------------------------------------------

func NewIngestor(cfg *models.MConfig, log *logger.Logger, dialer interfaces.IStreamDialer) *Ingestor {
	return &Ingestor{
		Config: cfg,
		Logger: log,
		Dialer: dialer,
	}
}

// -----------------------------------------------------------------------------

func (g *Ingestor) Name() string { return "LiveTelemetryIngestor" }

// IsLive reports whether upstream credentials are configured.
func (g *Ingestor) IsLive() bool { return g.Config.Tracker.AISStreamAPIKey != "" }

// -----------------------------------------------------------------------------
// Lifecycle
// -----------------------------------------------------------------------------

func (g *Ingestor) Start(parentCtx context.Context, updates chan<- []models.MVesselUpdate, wg *sync.WaitGroup) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.isRunning.Load() {
		return fmt.Errorf("source %s is already running", g.Name())
	}
	if !g.IsLive() {
		return fmt.Errorf("source %s requires an API key", g.Name())
	}

	ctx, cancel := context.WithCancel(parentCtx)
	g.cancelFunc = cancel
	g.isRunning.Store(true)

	wg.Add(1)
	go g.runLoop(ctx, updates, wg)
	g.Logger.Info("Started %s against %s", g.Name(), g.Config.Tracker.AISStreamURL)
	return nil
}

// -----------------------------------------------------------------------------

func (g *Ingestor) Stop() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if !g.isRunning.Load() {
		return fmt.Errorf("source %s is not running", g.Name())
	}

	if g.cancelFunc != nil {
		g.cancelFunc()
	}
	g.isRunning.Store(false)
	g.Logger.Info("Stopped %s", g.Name())
	return nil
}

// -----------------------------------------------------------------------------
// Connection Loop
// -----------------------------------------------------------------------------

func (g *Ingestor) runLoop(ctx context.Context, updates chan<- []models.MVesselUpdate, wg *sync.WaitGroup) {
	defer wg.Done()

	delay := time.Duration(g.Config.Tracker.ReconnectDelaySeconds) * time.Second

	for {
		if ctx.Err() != nil {
			return
		}

		err := g.runConnection(ctx, updates)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			g.Logger.Warning("Stream connection lost: %v, reconnecting in %s", err, delay)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// -----------------------------------------------------------------------------

// runConnection dials, subscribes, and pumps frames until the socket
// dies or the context is cancelled.
func (g *Ingestor) runConnection(ctx context.Context, updates chan<- []models.MVesselUpdate) error {
	conn, err := g.Dialer.Dial(ctx, g.Config.Tracker.AISStreamURL)
	if err != nil {
		return helpers.NewStreamError("dial failed", err)
	}
	defer conn.Close()

	sub := subscribeFrame{
		APIKey:             g.Config.Tracker.AISStreamAPIKey,
		BoundingBoxes:      [][][]float64{{{-90, -180}, {90, 180}}},
		FilterMessageTypes: []string{"PositionReport", "ShipStaticData"},
	}
	if err := conn.WriteJSON(sub); err != nil {
		return fmt.Errorf("subscribe failed: %w", err)
	}
	g.Logger.Info("Subscribed to live AIS stream")

	// Close the socket when the context ends so ReadMessage unblocks.
	connCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-connCtx.Done()
		conn.Close()
	}()

	for {
		payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read failed: %w", err)
		}

		update, ok := g.normalize(payload)
		if !ok {
			continue
		}

		select {
		case updates <- []models.MVesselUpdate{update}:
		case <-ctx.Done():
			return nil
		}
	}
}

// -----------------------------------------------------------------------------
// Frame Normalization
// -----------------------------------------------------------------------------

// normalize turns one raw stream frame into a vessel update. Frames
// with no MMSI or out-of-range coordinates are dropped.
func (g *Ingestor) normalize(payload []byte) (models.MVesselUpdate, bool) {
	var msg streamMessage
	if err := json.Unmarshal(payload, &msg); err != nil {
		g.Logger.Debug("Dropped malformed frame: %v", err)
		return models.MVesselUpdate{}, false
	}

	mmsi := msg.MetaData.MMSI.String()
	if mmsi == "" || mmsi == "0" {
		return models.MVesselUpdate{}, false
	}

	now := float64(time.Now().UnixNano()) / float64(time.Second)

	switch msg.MessageType {
	case "PositionReport":
		pr := msg.Message.PositionReport
		if !geo.ValidCoordinates(pr.Latitude, pr.Longitude) {
			return models.MVesselUpdate{}, false
		}
		// Transponders without a GPS fix report (0, 0); real vessels
		// don't sit on null island.
		if pr.Latitude == 0 && pr.Longitude == 0 {
			return models.MVesselUpdate{}, false
		}
		return models.MVesselUpdate{
			Kind: models.UpdatePosition,
			Vessel: models.MVesselPosition{
				MMSI: mmsi,
				Name: cleanName(msg.MetaData.ShipName),
				// Provisional until a static report classifies it.
				VesselType: models.VesselTypeCargo,
				Lat:        pr.Latitude,
				Lon:        pr.Longitude,
				SpeedKnots: pr.Sog,
				Heading:    resolveHeading(pr.TrueHeading, pr.Cog),
				FlagISO:    flagFromMMSI(mmsi),
				LastUpdate: now,
			},
		}, true

	case "ShipStaticData":
		sd := msg.Message.ShipStaticData
		name := cleanName(sd.Name)
		if name == "" {
			name = cleanName(msg.MetaData.ShipName)
		}
		return models.MVesselUpdate{
			Kind: models.UpdateStatic,
			Vessel: models.MVesselPosition{
				MMSI:        mmsi,
				Name:        name,
				VesselType:  classifyShipType(sd.Type, name),
				Destination: cleanName(sd.Destination),
				LengthM:     sd.Dimension.A + sd.Dimension.B,
				DraughtM:    sd.MaximumStaticDraught / 10, // wire value is decimetres
				FlagISO:     flagFromMMSI(mmsi),
				LastUpdate:  now,
			},
		}, true
	}

	return models.MVesselUpdate{}, false
}
