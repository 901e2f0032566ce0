package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/macksyx1/WhatsAppAPITestings/internal/config"
	"github.com/macksyx1/WhatsAppAPITestings/internal/infrastructure/database"
)

// Connectivity check for the service's two backing stores.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fmt.Printf("postgres: %s\n", cfg.DSN)
	db, err := database.Open(cfg.DSN)
	if err != nil {
		log.Fatalf("postgres connect: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("postgres handle: %v", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatalf("postgres ping: %v", err)
	}
	fmt.Println("postgres: ok")

	fmt.Printf("redis: %s\n", cfg.RedisAddr)
	rdb := database.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err := rdb.Ping(ctx); err != nil {
		log.Fatalf("redis ping: %v", err)
	}
	fmt.Println("redis: ok")
}
