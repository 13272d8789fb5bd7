package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"brightsteps/backend/internal/backend"
	"brightsteps/backend/internal/config"
	httpapi "brightsteps/backend/internal/http"
	"brightsteps/backend/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var svc backend.Service
	switch cfg.BackendMode {
	case "memory":
		svc = backend.NewMemory()
	case "firebase":
		firebaseSvc, err := backend.NewFirebase(ctx, cfg.FirebaseCredentialsFile, cfg.FirebaseWebAPIKey)
		if err != nil {
			log.Fatalf("failed to initialize firebase backend: %v", err)
		}
		svc = firebaseSvc
	default:
		log.Fatalf("unsupported BACKEND_MODE: %s", cfg.BackendMode)
	}

	appStore := store.New(svc)
	if err := appStore.Start(ctx); err != nil {
		log.Fatalf("failed to start store: %v", err)
	}
	defer appStore.Stop()

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.API{Store: appStore, CORSAllowList: cfg.CORSAllowList}.Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	log.Printf("brightsteps api listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}
