// Package rediscache implementa o mesmo contrato de espelho de
// snapshots sobre redis, com expiração nativa. Usado quando o agente
// roda em um gateway compartilhado por mais de um dispositivo da
// fazenda.
package rediscache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vacafacil/vacafacil-sync/internal/config"
	"github.com/vacafacil/vacafacil-sync/internal/lib/sl"
)

// Store espelha snapshots JSON em redis.
type Store struct {
	db  *redis.Client
	log *slog.Logger
}

// New conecta ao redis e valida a conexão com um ping.
func New(ctx context.Context, cfg config.RedisConnection, log *slog.Logger) (*Store, error) {
	const op = "rediscache.New"

	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Store{db: db, log: log}, nil
}

// Read lê e desserializa o valor da chave em dest. Chave ausente ou
// payload corrompido retornam false, nunca erro.
func (s *Store) Read(key string, dest any) bool {
	const op = "rediscache.Read"

	val, err := s.db.Get(context.Background(), key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		s.log.Warn("failed to read snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return false
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		s.log.Warn("corrupt snapshot discarded", slog.String("op", op), slog.String("key", key), sl.Err(err))
		s.db.Del(context.Background(), key)
		return false
	}
	return true
}

// Write persiste o valor sob a chave, sem expiração.
func (s *Store) Write(key string, value any) {
	s.write(key, value, 0)
}

// WriteTTL persiste o valor com prazo de expiração.
func (s *Store) WriteTTL(key string, value any, ttl time.Duration) {
	s.write(key, value, ttl)
}

func (s *Store) write(key string, value any, ttl time.Duration) {
	const op = "rediscache.Write"

	jsonData, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("failed to serialize snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
		return
	}
	if err := s.db.Set(context.Background(), key, jsonData, ttl).Err(); err != nil {
		s.log.Warn("failed to persist snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
}

// Remove apaga a chave.
func (s *Store) Remove(key string) {
	const op = "rediscache.Remove"

	if err := s.db.Del(context.Background(), key).Err(); err != nil {
		s.log.Warn("failed to delete snapshot", slog.String("op", op), slog.String("key", key), sl.Err(err))
	}
}

// Close encerra a conexão com o redis.
func (s *Store) Close() error {
	return s.db.Close()
}
