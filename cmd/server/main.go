package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/xtding233/atbat-sim/internal/cache"
	"github.com/xtding233/atbat-sim/internal/config"
	"github.com/xtding233/atbat-sim/internal/handlers"
	"github.com/xtding233/atbat-sim/internal/roster"
	"github.com/xtding233/atbat-sim/internal/rpc"
	"github.com/xtding233/atbat-sim/internal/service"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	loader := roster.NewLoader(cfg.Roster.Dir)
	r, err := loader.Load()
	if err != nil {
		log.Fatalf("roster: %v", err)
	}
	store := roster.NewStore(r)
	log.Printf("loaded %d batters and %d pitchers from %s", r.Len(roster.Batter), r.Len(roster.Pitcher), cfg.Roster.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Roster.ReloadInterval > 0 {
		go roster.NewReloader(loader, store, nil).Watch(ctx, cfg.Roster.ReloadInterval)
	}

	var results cache.Cache = cache.Nop{}
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		rc := cache.NewRedisCache(client, cfg.Redis.TTL)
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := rc.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Printf("redis %s unavailable, caching disabled: %v", cfg.Redis.Addr, err)
		} else {
			log.Printf("caching seeded runs in redis %s (ttl %s)", cfg.Redis.Addr, cfg.Redis.TTL)
			results = rc
		}
	}

	sim := service.New(cfg, store, results, nil)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Timeout(30 * time.Second))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	handlers.NewHandler(sim).Routes(router)

	srv := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 35 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 2)
	go func() {
		log.Printf("http listening on %s", cfg.Server.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	var grpcServer *grpc.Server
	if cfg.Server.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
		if err != nil {
			log.Fatalf("grpc listen: %v", err)
		}
		grpcServer = grpc.NewServer()
		healthServer := health.NewServer()
		healthpb.RegisterHealthServer(grpcServer, healthServer)
		rpc.RegisterSimulatorServer(grpcServer, rpc.NewServer(sim))
		healthServer.SetServingStatus(rpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
		go func() {
			log.Printf("grpc listening on %s", cfg.Server.GRPCAddr)
			if err := grpcServer.Serve(lis); err != nil {
				serverErrors <- err
			}
		}()
	}

	failed := false
	select {
	case err := <-serverErrors:
		log.Printf("server error: %v", err)
		failed = true
		stop()
	case <-ctx.Done():
		log.Println("shutting down ...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
		_ = srv.Close()
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	log.Println("shutdown complete")
	if failed {
		os.Exit(1)
	}
}
