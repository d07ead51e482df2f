package main

import (
	"context"
	"net/http"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sirupsen/logrus"

	"github.com/colekern/mutuals/internal/auth"
	"github.com/colekern/mutuals/internal/database"
	"github.com/colekern/mutuals/internal/friendship"
	"github.com/colekern/mutuals/internal/handlers"
	"github.com/colekern/mutuals/internal/ratelimit"
)

func main() {
	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)
	if os.Getenv("DEBUG") != "" {
		logger.SetLevel(logrus.DebugLevel)
	}

	var err error
	if priv, pub := os.Getenv("JWT_PRIVATE_KEY"), os.Getenv("JWT_PUBLIC_KEY"); priv != "" && pub != "" {
		err = auth.InitFromPath(priv, pub)
	} else {
		err = auth.Init()
	}
	if err != nil {
		logger.Fatalf("auth init: %v", err)
	}

	ctx := context.Background()
	store, err := database.Connect(ctx)
	if err != nil {
		logger.Fatalf("db connect: %v", err)
	}
	defer store.Close()

	var limiter friendship.Limiter
	if os.Getenv("REDIS_ADDR") != "" {
		rdb, err := ratelimit.Connect(ctx)
		if err != nil {
			logger.Fatalf("redis connect: %v", err)
		}
		limiter = ratelimit.NewRedisWindow(rdb, friendship.SendLimit, friendship.SendWindow)
	} else {
		logger.Warn("REDIS_ADDR not set, rate limiting via store counts")
		limiter = ratelimit.NewStoreCounter(store, friendship.SendLimit, friendship.SendWindow)
	}

	api := &handlers.API{
		Accounts:    store,
		Engine:      friendship.NewEngine(store, store, limiter),
		Queries:     friendship.NewQueryService(store, store),
		Logger:      logger,
		HealthCheck: store.Ping,
	}

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		addr = ":" + port
	}
	logger.Infof("Running on %s", addr)
	if err := http.ListenAndServe(addr, api.Router()); err != nil {
		logger.Fatalf("server exited: %v", err)
	}
}
