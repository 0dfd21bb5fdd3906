package main

import (
	"context"
	"log"

	"monkid.com/backoffice/internal/bootstrap"
	"monkid.com/backoffice/internal/config"
	"monkid.com/backoffice/internal/server"
	"monkid.com/backoffice/pkg/cache"
	"monkid.com/backoffice/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		log.Fatalf("%v", err)
	}
	if err := bootstrap.Migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.IsDevelopment() {
		if err := bootstrap.SeedAdminUser(db, cfg.DevFallbackEmail, cfg.DevAdminPassword); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
	if err != nil {
		log.Printf("redis unavailable, continuing without cache: %v", err)
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("listening on :%s (env=%s)", cfg.Port, cfg.AppEnv)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}
