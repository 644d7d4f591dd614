package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"travel-booking-platform/internal/config"
	"travel-booking-platform/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	s3cfg := cfg.Storage.S3
	fmt.Printf("Storage Information:\n")
	fmt.Printf("  S3 Configured: %v\n", s3cfg.Configured())
	fmt.Printf("  Bucket Name: %s\n", s3cfg.BucketName)
	fmt.Printf("  Endpoint: %s\n", s3cfg.Endpoint)
	fmt.Printf("  Public URL: %s\n", s3cfg.PublicURL)
	fmt.Printf("  Fallback Path: %s\n", cfg.Storage.UploadDir)

	if !s3cfg.Configured() {
		fmt.Println("\nS3 credentials are not set; contest photos are stored locally.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	storage, err := services.NewS3StorageService(ctx, s3cfg, zap.NewNop())
	if err != nil {
		log.Fatalf("S3 configuration is invalid: %v", err)
	}
	if err := storage.HealthCheck(ctx); err != nil {
		log.Fatalf("S3 bucket is not reachable: %v", err)
	}

	fmt.Println("\nS3 bucket is reachable")
	fmt.Printf("Photos will be served from %s\n", storage.GetURL("vacation-photo/"))
}
