package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"flowershop/internal/config"
	"flowershop/internal/db"
	"flowershop/internal/httpserver"
	"flowershop/internal/kv"
	"flowershop/internal/logger"
	cartlinerepo "flowershop/internal/repository/cartline"
	orderrepo "flowershop/internal/repository/order"
	productrepo "flowershop/internal/repository/product"
	tokenrepo "flowershop/internal/repository/token"
	userrepo "flowershop/internal/repository/user"
	authsvc "flowershop/internal/service/auth"
	cartsvc "flowershop/internal/service/cart"
	ordersvc "flowershop/internal/service/order"
	productsvc "flowershop/internal/service/product"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect to db", zap.Error(err))
	}
	defer dbpool.Close()

	rdb, err := kv.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Fatal("connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	userRepo := userrepo.NewPostgres(dbpool, log)
	tokenRepo := tokenrepo.NewPostgres(dbpool)
	productRepo := productrepo.NewPostgres(dbpool, log)
	cartLineRepo := cartlinerepo.NewPostgres(dbpool)
	orderRepo := orderrepo.NewPostgres(dbpool, log)

	authService := authsvc.New(userRepo, tokenRepo)
	productService := productsvc.New(productRepo)
	cartService := cartsvc.New(cartLineRepo, rdb, log)
	orderService := ordersvc.New(orderRepo)

	srv, err := httpserver.New(cfg.HTTPAddr, log, dbpool, httpserver.Deps{
		AuthSvc:    authService,
		ProductSvc: productService,
		CartSvc:    cartService,
		OrderSvc:   orderService,
		UserRepo:   userRepo,
	}, cfg.CORSOrigins)
	if err != nil {
		log.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting http server", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("server stopped")
	}
}
