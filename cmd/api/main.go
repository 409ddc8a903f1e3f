package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/BruksfildServices01/salon-pos/internal/audit"
	"github.com/BruksfildServices01/salon-pos/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-pos/internal/db"
	"github.com/BruksfildServices01/salon-pos/internal/events"
	"github.com/BruksfildServices01/salon-pos/internal/gateway"
	"github.com/BruksfildServices01/salon-pos/internal/lock"
	"github.com/BruksfildServices01/salon-pos/internal/routes"
	"github.com/BruksfildServices01/salon-pos/internal/storage"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db := dbpkg.NewDB(cfg)

	// ------------------------------
	// Booking lock
	// ------------------------------
	var locker lock.Locker = lock.NewLocalLocker()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatalf("failed to reach redis addr=%s: %v", cfg.RedisAddr, err)
		}
		locker = lock.NewRedisLocker(rdb, cfg.LockTTL)
		log.Printf("booking lock backend=redis addr=%s", cfg.RedisAddr)
	} else {
		log.Println("booking lock backend=local (single instance only)")
	}

	// ------------------------------
	// Payment gateway
	// ------------------------------
	var gw gateway.Gateway = gateway.Offline{}
	if cfg.MercadoPagoToken != "" {
		mp, err := gateway.NewMercadoPago(cfg.MercadoPagoToken)
		if err != nil {
			log.Fatalf("failed to init payment gateway: %v", err)
		}
		gw = mp
	}

	// ------------------------------
	// Events
	// ------------------------------
	var publisher events.Publisher = events.Noop{}
	if cfg.AMQPUrl != "" {
		amqpPub := events.NewAMQPPublisher(cfg.AMQPUrl)
		defer amqpPub.Close()
		publisher = amqpPub
	}

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Locker:  locker,
		Store:   storage.New(cfg),
		Gateway: gw,
		Events:  publisher,
		Audit:   auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("Server running on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
	log.Println("server stopped")
}
