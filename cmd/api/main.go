package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/punchamoorthee/chainrelay/internal/api"
	"github.com/punchamoorthee/chainrelay/internal/config"
	"github.com/punchamoorthee/chainrelay/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logStore, err := store.NewLogStore(cfg.DBSource)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v", err)
	}
	defer logStore.Close()

	ctx := context.Background()
	if err := logStore.EnsureSchema(ctx); err != nil {
		log.Fatalf("Schema migration failed: %v", err)
	}
	if err := logStore.EnsureGenesis(ctx); err != nil {
		log.Fatalf("Genesis bootstrap failed: %v", err)
	}

	limiter := rate.NewLimiter(rate.Every(cfg.SubmitInterval), 1)
	handler := api.NewHandler(logStore, limiter)

	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")
	r.HandleFunc("/", handler.SubmitMessage).Methods("POST")
	r.HandleFunc("/{offset:[0-9]+}", handler.ReadMessages).Methods("GET")

	log.Printf("Relay starting on :%s (%s)", cfg.Port, cfg.Env)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
