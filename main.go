package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ADat1304/Project-cafe/configs"
	"github.com/ADat1304/Project-cafe/gateway"
	"github.com/ADat1304/Project-cafe/messaging"
	"github.com/ADat1304/Project-cafe/repository"
	"github.com/ADat1304/Project-cafe/routes"
	"github.com/ADat1304/Project-cafe/services"
	"github.com/ADat1304/Project-cafe/ws"

	"github.com/gin-gonic/gin"
)

const sweepEvery = 10 * time.Minute

func main() {
	cfg := configs.LoadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Sessions
	var store services.SessionStore
	switch cfg.SessionStore {
	case "redis":
		rdb, err := configs.ConnectRedis(ctx, cfg)
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		store = repository.NewRedisSessionStore(rdb)
	default:
		db, err := configs.ConnectionDB(cfg)
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		store = repository.NewSessionRepository(db)
	}

	// Order events
	var events services.OrderEventPublisher = services.NoopEventPublisher{}
	if w := configs.NewOrderWriter(cfg); w != nil {
		pub := messaging.NewKafkaOrderPublisher(w)
		defer pub.Close()
		events = pub
		log.Println("publishing order events to", cfg.KafkaOrderTopic)
	}

	gw := gateway.NewClient(gateway.Config{BaseURL: cfg.GatewayURL, Timeout: cfg.GatewayTimeout}, nil)

	hub := ws.NewCartHub()
	go hub.Run(ctx)

	catalog := services.NewCatalogService(gw)
	carts := services.NewCartService(catalog, hub)
	hub.SetCartViewer(carts)
	auth := services.NewAuthService(gw, store, carts, cfg.JWTSecret, cfg.JWTTTL)
	go sweepSessions(ctx, auth)

	// HTTP
	r := gin.Default()
	routes.RegisterRoutes(r, routes.Deps{
		Auth:        auth,
		Catalog:     catalog,
		Carts:       carts,
		Submissions: services.NewSubmissionService(carts, catalog, gw, events),
		Products:    services.NewProductService(gw, catalog),
		Users:       services.NewUserService(gw),
		Tables:      services.NewTableService(gw, catalog, cfg.PublicOrderURL),
		Orders:      services.NewOrderService(gw, catalog, events),
		Reports:     services.NewReportService(gw, catalog),
		CartHub:     hub,
		CORSOrigins: cfg.CORSOrigins,
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{Addr: addr, Handler: r}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Println("🚀 Server running at", addr, "gateway", cfg.GatewayURL)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

func sweepSessions(ctx context.Context, auth *services.AuthService) {
	t := time.NewTicker(sweepEvery)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := auth.Sweep(ctx)
			if err != nil {
				log.Printf("sweep sessions: %v", err)
			} else if n > 0 {
				log.Printf("removed %d expired sessions", n)
			}
		}
	}
}
