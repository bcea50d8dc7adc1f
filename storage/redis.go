package storage

import (
	"log"

	"github.com/go-redis/redis/v8"

	"github.com/sheharyarIshfaq/rest-hunt-backend/config"
)

// NewRedis builds the client used for refresh-token bookkeeping.
func NewRedis(cfg *config.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       0,
	})

	log.Println("Redis initialized with address:", cfg.RedisURL)
	return client
}
