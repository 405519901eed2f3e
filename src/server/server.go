package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"fleet-observer/src/logger"
	"fleet-observer/src/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// -----------------------------------------------------------------------------
// VesselProvider
// -----------------------------------------------------------------------------

// VesselProvider hands the HTTP surface a read-only view of the tracker.
type VesselProvider interface {
	Vessels() []models.MVesselPosition
	TrackerStats() models.MTrackerStats
}

// -----------------------------------------------------------------------------
// Server
// -----------------------------------------------------------------------------

type Server struct {
	Config *models.MConfig
	Logger *logger.Logger
	Hub    *Hub
	engine *gin.Engine

	vessels VesselProvider
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewServer(cfg *models.MConfig, log *logger.Logger) *Server {
	if cfg.LogLevel != "DEBUG" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		Config: cfg,
		Logger: log,
		Hub:    NewHub(log),
		engine: gin.Default(),
	}

	// CORS for local frontends
	s.engine.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if strings.HasPrefix(origin, "http://127.0.0.1:") || strings.HasPrefix(origin, "http://localhost:") {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	s.setupRoutes()
	return s
}

// -----------------------------------------------------------------------------

// SetVesselProvider wires the tracker into the HTTP surface. Must be
// called before Start.
func (s *Server) SetVesselProvider(p VesselProvider) {
	s.vessels = p
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *Server) setupRoutes() {
	s.engine.GET("/api/health", s.getHealth)
	s.engine.GET("/api/ws/stats", s.getWsStats)
	s.engine.GET("/api/vessels", s.getVessels)
	s.engine.GET("/api/vessels/stats", s.getVesselStats)
	s.engine.GET("/api/events/recent", s.getRecentEvents)

	// WebSocket endpoint
	s.engine.GET("/ws/live", s.handleWebSocket)
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.Config.Host, s.Config.Port)
	s.Logger.Info("Starting server on %s", addr)
	return s.engine.Run(addr)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

func (s *Server) getHealth(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"clients": s.Hub.ClientCount(),
	})
}

// -----------------------------------------------------------------------------

func (s *Server) getWsStats(c *gin.Context) {
	c.JSON(200, s.Hub.Stats())
}

// -----------------------------------------------------------------------------

func (s *Server) getVessels(c *gin.Context) {
	if s.vessels == nil {
		c.JSON(503, gin.H{"error": "tracker not running"})
		return
	}
	snapshot := s.vessels.Vessels()
	c.JSON(200, gin.H{
		"count":   len(snapshot),
		"vessels": snapshot,
	})
}

// -----------------------------------------------------------------------------

func (s *Server) getVesselStats(c *gin.Context) {
	if s.vessels == nil {
		c.JSON(503, gin.H{"error": "tracker not running"})
		return
	}
	c.JSON(200, s.vessels.TrackerStats())
}

// -----------------------------------------------------------------------------

// getRecentEvents replays the tail of the event history, so clients
// that just connected can backfill their feed panels.
func (s *Server) getRecentEvents(c *gin.Context) {
	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}
	events := s.Hub.History.GetLatest(limit)
	c.JSON(200, gin.H{
		"count":  len(events),
		"events": events,
	})
}

// -----------------------------------------------------------------------------
// WebSocket Handler
// -----------------------------------------------------------------------------

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (s *Server) handleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.Logger.Info("Failed to upgrade websocket: %v", err)
		return
	}
	s.Hub.Connect(conn)
}
