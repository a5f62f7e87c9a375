package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"mirrorstore/internal/collection"
	"mirrorstore/internal/config"
	"mirrorstore/internal/domain"
	"mirrorstore/internal/event"
	"mirrorstore/internal/handler"
	"mirrorstore/internal/hub"
	"mirrorstore/internal/loader"
	"mirrorstore/internal/repository/sqlite"
	"mirrorstore/internal/schema"
	"mirrorstore/internal/service"
	"mirrorstore/internal/viewmodel"
	"mirrorstore/internal/watcher"
)

func main() {
	// Command line flags override the config file
	addr := flag.String("addr", "", "HTTP listen address")
	dbPath := flag.String("db", "", "SQLite database path")
	seedPath := flag.String("seed", "", "YAML seed catalog path")
	flag.Parse()

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("Starting mirrorstore server...")

	cfg, cfgPath, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfgPath != "" {
		log.Printf("Config loaded: %s", cfgPath)
	}
	if *addr != "" {
		cfg.HTTP.Addr = *addr
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}
	if *seedPath != "" {
		cfg.Seed.Path = *seedPath
	}

	// Schema registry and view-model factory
	registry, err := schema.DefaultRegistry()
	if err != nil {
		log.Fatalf("Failed to build schema registry: %v", err)
	}
	factory := viewmodel.NewFactory(registry)

	// Change-notification bus, owned here and injected into the store
	bus := event.NewBus()

	// SQLite store
	store, err := sqlite.Open(cfg.Database.Path, registry, factory, bus)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()
	log.Printf("Database opened: %s", cfg.Database.Path)

	// SSE hub relaying change notifications to browsers
	sseHub := hub.New()
	go sseHub.Run()
	bus.Subscribe(sseHub.Broadcast)

	// Collections and services
	products := collection.New(domain.KindProduct, store)
	orders := collection.New(domain.KindOrder, store)
	summarySvc := service.NewSummaryService(store)
	catalogSvc := service.NewCatalogService(store, factory)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// One mutex serializes every caller of the core: the HTTP handler and
	// the seed watcher share it, standing in for a single UI thread.
	var coreMu sync.Mutex

	if cfg.Seed.Path != "" {
		// Initial seeding populates an empty database only; it runs
		// before the server accepts traffic.
		seed, err := loader.Load(cfg.Seed.Path)
		if err != nil {
			log.Printf("Failed to load seed catalog: %v", err)
		} else {
			ran, err := catalogSvc.SeedIfEmpty(ctx, seed)
			if err != nil {
				log.Fatalf("Failed to import seed catalog: %v", err)
			}
			if ran {
				log.Printf("Seed catalog imported: %s", cfg.Seed.Path)
			}
		}

		// File changes replace the stored catalog outright, so an edited
		// seed lands even on a populated database.
		if cfg.Seed.Watch {
			reimport := func() {
				coreMu.Lock()
				defer coreMu.Unlock()

				seed, err := loader.Load(cfg.Seed.Path)
				if err != nil {
					log.Printf("Failed to load seed catalog: %v", err)
					return
				}
				if err := catalogSvc.Reimport(ctx, seed); err != nil {
					log.Printf("Failed to reimport seed catalog: %v", err)
					return
				}
				log.Printf("Seed catalog reimported: %s", cfg.Seed.Path)
			}

			w := watcher.New(cfg.Seed.Path, reimport)
			go func() {
				if err := w.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
					log.Printf("Seed watcher stopped: %v", err)
				}
			}()
		}
	}

	// HTTP routes
	mux := http.NewServeMux()

	catalogHandler := handler.NewCatalogHandler(&coreMu, factory, products, orders, summarySvc, catalogSvc)
	catalogHandler.Register(mux)

	mux.Handle("GET /api/events", sseHub)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: mux,
	}

	go func() {
		log.Printf("Listening on %s", cfg.HTTP.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
