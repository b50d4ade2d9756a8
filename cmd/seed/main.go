// Command seed loads demonstration content into the configured store.
//
//	go run ./cmd/seed -entity menu            # replace the menu
//	go run ./cmd/seed -entity menu -if-empty  # only seed an empty menu
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/iliyamo/storefront-api/internal/config"
	"github.com/iliyamo/storefront-api/internal/database"
	"github.com/iliyamo/storefront-api/internal/logging"
	"github.com/iliyamo/storefront-api/internal/seed"
)

func main() {
	entity := flag.String("entity", "menu", "collection to seed (menu)")
	ifEmpty := flag.Bool("if-empty", false, "seed only when the collection is empty")
	flag.Parse()

	_ = godotenv.Load()
	cfg, err := config.LoadStore()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := logging.New(os.Stdout, logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := database.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("store: %v", err)
	}
	defer func() { _ = closeStore(context.Background()) }()

	var n int
	switch *entity {
	case "menu":
		n, err = seed.Menu(ctx, store.Menu, *ifEmpty)
	default:
		err = fmt.Errorf("unknown entity %q", *entity)
	}
	if err != nil {
		logger.Error("seed failed", "entity", *entity, "error", err)
		os.Exit(1)
	}
	logger.Info("seed finished", "entity", *entity, "written", n)
}
