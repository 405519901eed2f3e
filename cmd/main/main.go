package main

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"fleet-observer/src/config"
	"fleet-observer/src/data_source/aisstream"
	"fleet-observer/src/data_source/sim"
	"fleet-observer/src/feed"
	"fleet-observer/src/grpc_control"
	"fleet-observer/src/interfaces"
	"fleet-observer/src/logger"
	"fleet-observer/src/network"
	"fleet-observer/src/server"
	"fleet-observer/src/storage"
	"fleet-observer/src/tracker"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"
)

// -----------------------------------------------------------------------------

func main() {

	// Parse command line flags
	configPath := flag.String("config", "../../config/default.yaml", "path to config file")
	flag.Parse()

	// .env carries the AIS credential in development
	_ = godotenv.Load()

	// Load config from YAML file
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	appLogger := logger.NewLogger(cfg.LogLevel, cfg.Name)

	// Route store (seeds the built-in catalog on first run)
	store, err := storage.NewRouteStore(cfg.MConfig, appLogger)
	if err != nil {
		appLogger.Critical("Failed to init route store: %v", err)
	}
	if err := store.Initialize(); err != nil {
		appLogger.Critical("Failed to initialize route store: %v", err)
	}
	defer store.Close()

	routes, err := store.LoadRoutes()
	if err != nil {
		appLogger.Critical("Failed to load routes: %v", err)
	}
	appLogger.Info("Loaded %d shipping routes", len(routes))

	// HTTP server and WebSocket hub
	srv := server.NewServer(cfg.MConfig, appLogger)

	// Data source: live stream when a credential is present, otherwise
	// the motion simulator.
	var source interfaces.IVesselSource
	if cfg.IsLive() {
		dialer := network.NewStreamDialer(appLogger)
		source = aisstream.NewIngestor(cfg.MConfig, appLogger, dialer)
	} else {
		source = sim.NewSimulator(cfg.MConfig, appLogger, routes, sim.DefaultFleetProfile())
	}

	vesselTracker := tracker.NewVesselTracker(cfg.MConfig, appLogger, source, srv.Hub, len(routes))
	srv.SetVesselProvider(vesselTracker)

	// Start HTTP server
	go func() {
		if err := srv.Start(); err != nil {
			appLogger.Error("Server failed: %v", err)
		}
	}()

	// gRPC control plane
	grpcServer := grpc.NewServer()
	controlSvc := grpc_control.NewControlService(cfg, appLogger, vesselTracker, routes)
	grpc_control.RegisterControlService(grpcServer, controlSvc)

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.GrpcHost, cfg.GrpcPort)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			appLogger.Error("gRPC listen failed on %s: %v", addr, err)
			return
		}
		appLogger.Info("gRPC control listening on %s", addr)
		if err := grpcServer.Serve(lis); err != nil {
			appLogger.Error("gRPC server failed: %v", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start tracker (launches the data source and its loops)
	if err := vesselTracker.Start(ctx); err != nil {
		appLogger.Critical("Failed to start tracker: %v", err)
	}

	// Ambient event feed
	feedWg := &sync.WaitGroup{}
	var liveFeed *feed.LiveFeedSimulator
	if cfg.Feed.Enabled {
		liveFeed = feed.NewLiveFeedSimulator(cfg.MConfig, appLogger, srv.Hub)
		if err := liveFeed.Start(ctx, feedWg); err != nil {
			appLogger.Error("Failed to start live feed: %v", err)
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down...")
	if liveFeed != nil {
		liveFeed.Stop()
	}
	if err := vesselTracker.Stop(); err != nil {
		appLogger.Error("Tracker stop failed: %v", err)
	}
	grpcServer.GracefulStop()
	cancel()
	feedWg.Wait()
}
