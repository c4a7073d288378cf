package main

import (
	"log"
	"time"

	"shipment-dashboard/internal/core/cache"
	"shipment-dashboard/internal/core/config"
	"shipment-dashboard/internal/core/logger"
	"shipment-dashboard/internal/core/server"
	"shipment-dashboard/internal/features/shipments/adapters"
	"shipment-dashboard/internal/features/shipments/handler"
	"shipment-dashboard/internal/features/shipments/service"

	"go.uber.org/zap"
)

// @title Shipment Dashboard API
// @version 1.0
// @description Backend-for-frontend for the shipment tracking dashboard: draft editing, validation gating and submission to the upstream shipment API.
// @contact.name API Support
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

	// Initialize Redis cache
	redisCache, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	// Initialize upstream shipment API adapter
	apiAdapter := adapters.NewShipmentAPIAdapter(cfg.API)

	// Initialize draft store, services and handlers
	draftStore := adapters.NewRedisDraftStore(redisCache, time.Duration(cfg.Redis.DraftTTLSeconds)*time.Second)
	draftSvc := service.NewDraftService(draftStore, apiAdapter)
	listingSvc := service.NewListingService(apiAdapter, redisCache, time.Duration(cfg.Redis.ListCacheTTLSeconds)*time.Second)

	draftHdl := handler.NewDraftHandler(draftSvc, listingSvc)
	shipmentHdl := handler.NewShipmentHandler(listingSvc)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Post("/drafts", draftHdl.CreateDraft)
	srv.App.Get("/drafts/:id", draftHdl.GetDraft)
	srv.App.Delete("/drafts/:id", draftHdl.DiscardDraft)
	srv.App.Patch("/drafts/:id/fields", draftHdl.ChangeField)
	srv.App.Post("/drafts/:id/tracking-id", draftHdl.RegenerateTrackingID)
	srv.App.Post("/drafts/:id/event", draftHdl.OpenEvent)
	srv.App.Patch("/drafts/:id/event/fields", draftHdl.ChangeEventField)
	srv.App.Put("/drafts/:id/event", draftHdl.SaveEvent)
	srv.App.Delete("/drafts/:id/event", draftHdl.CloseEvent)
	srv.App.Delete("/drafts/:id/events/:eventId", draftHdl.DeleteEvent)
	srv.App.Post("/drafts/:id/submit", draftHdl.Submit)
	srv.App.Get("/shipments", shipmentHdl.ListShipments)
	srv.App.Get("/shipments/:id", shipmentHdl.GetShipment)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
