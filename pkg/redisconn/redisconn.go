// Package redisconn создает клиент Redis с проверкой соединения на старте
package redisconn

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config параметры подключения к Redis
type Config struct {
	Addr     string
	Password string
	DB       int
}

// New создает клиент и проверяет соединение ping-ом.
// Сервис не стартует с недоступным Redis: лучше упасть сразу,
// чем потерять блокировки слотов в рантайме.
func New(cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redisconn: ping %s: %w", cfg.Addr, err)
	}

	return client, nil
}
