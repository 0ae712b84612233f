package main

import (
	"context"
	"log"
	"time"

	"nav-guidance/internal/core/cache"
	"nav-guidance/internal/core/config"
	"nav-guidance/internal/core/logger"
	"nav-guidance/internal/core/server"
	camerahandler "nav-guidance/internal/features/camera/handler"
	cameraservice "nav-guidance/internal/features/camera/service"
	guidanceadapter "nav-guidance/internal/features/guidance/adapters"
	guidancedomain "nav-guidance/internal/features/guidance/domain"
	guidancehandler "nav-guidance/internal/features/guidance/handler"
	guidanceservice "nav-guidance/internal/features/guidance/service"
	routeadapter "nav-guidance/internal/features/routes/adapters"
	routehandler "nav-guidance/internal/features/routes/handler"
	routeservice "nav-guidance/internal/features/routes/service"

	"go.uber.org/zap"
)

// arrivalDistanceMeters is the step distance remaining under which the
// built-in arrival milestone fires on the final step.
const arrivalDistanceMeters = 40.0

// @title Nav Guidance API
// @version 1.0
// @description Turn-by-turn navigation guidance: milestone evaluation and camera parameter derivation per session.
// @contact.name API Support
// @contact.email support@navguidance.dev
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize session storage and verify connectivity
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	if err := redisCache.Ping(context.Background()); err != nil {
		l.Fatal("Redis connection check failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	// Initialize routes feature
	directionsAdapter := routeadapter.NewDirectionsAdapter(cfg.Directions)
	routeRepo := routeadapter.NewRedisRouteRepository(redisCache, sessionTTL)
	sessionSvc := routeservice.NewSessionService(routeRepo, directionsAdapter)
	sessionHdl := routehandler.NewSessionHandler(sessionSvc)

	// Initialize milestone engine with the default milestones
	evaluator := guidanceservice.NewEvaluator()
	evaluator.Register(guidancedomain.NewStepMilestone())
	evaluator.Register(guidancedomain.NewBannerMilestone())
	evaluator.Register(guidancedomain.NewArrivalMilestone(arrivalDistanceMeters))

	snapshotStore := guidanceadapter.NewRedisSnapshotStore(redisCache, sessionTTL)

	// Initialize camera feature
	cameraSvc := cameraservice.NewCameraService()
	cameraHdl := camerahandler.NewCameraHandler(cameraSvc, routeRepo)

	progressHdl := guidancehandler.NewProgressHandler(evaluator, snapshotStore, routeRepo, cameraSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/sessions", sessionHdl.CreateSession)
	srv.App.Get("/sessions/:id/route", sessionHdl.GetRoute)
	srv.App.Delete("/sessions/:id", sessionHdl.EndSession)
	srv.App.Post("/sessions/:id/progress", progressHdl.UpdateProgress)
	srv.App.Get("/sessions/:id/camera/overview", cameraHdl.GetOverview)
	srv.App.Put("/camera/tracking", cameraHdl.SetTracking)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
