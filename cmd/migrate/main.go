package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"travel-booking-platform/internal/config"
	"travel-booking-platform/internal/database"
	"travel-booking-platform/internal/logging"
	"travel-booking-platform/internal/models"
)

func main() {
	var (
		statusFlag = flag.Bool("status", false, "Show migration status")
		upFlag     = flag.Bool("up", false, "Run pending migrations")
		seedFlag   = flag.Bool("seed", false, "Seed the vacation catalog when the products table is empty")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Log, cfg.Server.Env)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if !*statusFlag && !*upFlag && !*seedFlag {
		fmt.Println("Usage:")
		fmt.Println("  go run ./cmd/migrate -status   # Show migration status")
		fmt.Println("  go run ./cmd/migrate -up       # Run pending migrations")
		fmt.Println("  go run ./cmd/migrate -seed     # Seed the vacation catalog")
		os.Exit(1)
	}

	ctx := context.Background()

	// Connect to database
	db, err := database.NewConnection(ctx, cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if *statusFlag {
		states, err := db.MigrationStatus(ctx)
		if err != nil {
			logger.Fatal("Failed to get migration status", zap.Error(err))
		}
		for _, s := range states {
			status := "pending"
			if s.Applied {
				status = "applied"
			}
			fmt.Printf("%03d_%s: %s\n", s.Version, s.Name, status)
		}
	}

	if *upFlag {
		applied, err := db.RunMigrations(ctx)
		if err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		for _, m := range applied {
			logger.Info("Applied migration", zap.Int("version", m.Version), zap.String("name", m.Name))
		}
		fmt.Printf("All migrations completed successfully! (%d applied)\n", len(applied))
	}

	if *seedFlag {
		seeded, err := database.SeedCatalog(ctx, db.DB, models.DefaultCatalog())
		if err != nil {
			logger.Fatal("Failed to seed catalog", zap.Error(err))
		}
		fmt.Printf("Seeded %d products\n", seeded)
	}
}
