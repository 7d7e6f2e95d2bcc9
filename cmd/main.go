package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/fleetops/fleet-command/internal/auth"
	"github.com/fleetops/fleet-command/internal/db"
	"github.com/fleetops/fleet-command/internal/fleet"
	"github.com/fleetops/fleet-command/internal/handlers"
	"github.com/fleetops/fleet-command/internal/middleware"
	"github.com/fleetops/fleet-command/internal/telemetry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment")
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_JSON") == "true" {
		log.SetFormatter(&log.JSONFormatter{})
	}

	// Mongo is a best-effort snapshot archive: the fleet lives in
	// memory and the server runs fine without a database.
	var archive db.FleetArchive
	var userCollection db.UserCollection
	if client, err := db.ConnectMongo(); err != nil {
		log.WithError(err).Warn("MongoDB unavailable, running without snapshot archive")
	} else {
		database := client.Database(db.DatabaseName())
		archive = &db.MongoArchive{Database: database}
		userCollection = &db.MongoUserCollection{Collection: database.Collection("users")}
		defer client.Disconnect(context.Background())
		log.Info("connected to MongoDB")
	}

	store := fleet.NewStore()
	restored := false
	if archive != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		snap, err := archive.Load(ctx)
		cancel()
		switch {
		case err != nil:
			log.WithError(err).Warn("failed to load fleet snapshot, starting empty")
		case len(snap.Vehicles) > 0:
			store = fleet.NewStoreFromSnapshot(snap)
			restored = true
			log.WithField("vehicles", len(snap.Vehicles)).Info("fleet restored from snapshot")
		}
	}
	if !restored && os.Getenv("FLEET_SEED") != "false" {
		fleet.Seed(store, time.Now())
		log.Info("seeded demo fleet")
	}

	coord := fleet.NewCoordinator(store, nil)

	authService, err := auth.NewService()
	if err != nil {
		log.WithError(err).Fatal("failed to initialize auth service")
	}
	authMW := middleware.NewAuthMiddleware(authService)
	rateLimiter := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()

	fleetHandler := handlers.NewFleetHandler(coord)
	fleetHandler.Register(mux, func(action string, next http.Handler) http.Handler {
		return authMW.RequirePermission(action)(next)
	})

	if userCollection != nil {
		authHandler := handlers.NewAuthHandler(authService, userCollection)
		mux.HandleFunc("POST /api/auth/login", authHandler.Login)
		mux.HandleFunc("POST /api/auth/register", authHandler.Register)
		mux.HandleFunc("GET /api/auth/me", authHandler.Me)
	} else {
		log.Warn("auth endpoints disabled without MongoDB")
	}

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	var handler http.Handler = mux
	handler = authMW.Authenticate(handler)
	handler = rateLimiter.RateLimit(300, 60)(handler)

	if ing, err := telemetry.NewIngestor(coord); err != nil {
		log.WithError(err).Warn("telemetry ingest unavailable")
	} else {
		defer ing.Close()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	server := &http.Server{Addr: ":" + port, Handler: handler}

	go func() {
		log.WithField("port", port).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("HTTP shutdown failed")
	}
	if archive != nil {
		if err := archive.Save(ctx, coord.Snapshot()); err != nil {
			log.WithError(err).Error("failed to save fleet snapshot")
		} else {
			log.Info("fleet snapshot saved")
		}
	}
}
