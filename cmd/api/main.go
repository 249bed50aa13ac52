package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ariefcatur/go-marketplace.git/internal/auth"
	"github.com/ariefcatur/go-marketplace.git/internal/cart"
	"github.com/ariefcatur/go-marketplace.git/internal/catalog"
	"github.com/ariefcatur/go-marketplace.git/internal/checkout"
	"github.com/ariefcatur/go-marketplace.git/internal/config"
	"github.com/ariefcatur/go-marketplace.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-marketplace.git/internal/kafka"
	"github.com/ariefcatur/go-marketplace.git/internal/logging"
	"github.com/ariefcatur/go-marketplace.git/internal/orders"
	"github.com/ariefcatur/go-marketplace.git/internal/postgres"
	"github.com/ariefcatur/go-marketplace.git/internal/profile"
	"github.com/ariefcatur/go-marketplace.git/internal/redisx"
	"github.com/ariefcatur/go-marketplace.git/internal/wishlist"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logging.Init(cfg.ServiceName, cfg.LogFile)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// Redis
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	pPlaced := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderPlaced, 1024)
	pPlaced.Start(ctx)
	pStatus := kafkax.NewProducer(cfg.KafkaBrokers, orders.TopicOrderStatusChanged, 1024)
	pStatus.Start(ctx)

	// Repos & engine
	tokens := auth.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	cartRepo := &cart.Repo{DB: db}
	engine := checkout.NewEngine(cartRepo, &checkout.Store{DB: db}, cfg.ServiceFee)

	// Handlers
	router := httpx.NewRouter()
	(&httpx.AuthHandler{Profiles: &profile.Repo{DB: db}, Tokens: tokens}).Register(router)
	(&httpx.ProductsHandler{Repo: &catalog.Repo{DB: db}, Auth: tokens}).Register(router)
	(&httpx.CartHandler{Repo: cartRepo, Redis: rdb, Auth: tokens}).Register(router)
	(&httpx.CheckoutHandler{Engine: engine, Producer: pPlaced, Redis: rdb, Auth: tokens, Service: cfg.ServiceName}).Register(router)
	(&httpx.OrdersHandler{Repo: &orders.Repo{DB: db}, Producer: pStatus, Redis: rdb, Auth: tokens, Service: cfg.ServiceName}).Register(router)
	(&httpx.WishlistHandler{Repo: &wishlist.Repo{DB: db}, Auth: tokens}).Register(router)
	(&httpx.ProfileHandler{Repo: &profile.Repo{DB: db}, Auth: tokens}).Register(router)

	// HTTP server
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	// graceful shutdown
	go func() {
		log.Info("HTTP listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("listen", "err", err)
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Info("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pPlaced.Close() // tutup inbox -> flush & close writer
	pStatus.Close()
	cancel() // stop producer loop
	pPlaced.WaitClosed()
	pStatus.WaitClosed()
}
