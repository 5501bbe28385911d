package kv

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store обёртка над Redis для разделяемого между инстансами состояния с TTL
// Сюда вынесены счётчики попыток по номеру телефона, которые раньше жили бы
// в process-global map и ломались бы при нескольких инстансах сервиса
type Store struct {
	client *redis.Client
}

// NewStore создает новый Store и проверяет соединение с Redis
func NewStore(ctx context.Context, addr, password string, db int) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("kv: failed to ping redis at %s: %w", addr, err)
	}

	return &Store{client: client}, nil
}

// Incr инкрементирует счётчик по ключу и возвращает новое значение
// TTL выставляется только при создании ключа, чтобы окно не продлевалось
// каждым запросом
func (s *Store) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := s.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("kv: incr %s: %w", key, err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, fmt.Errorf("kv: expire %s: %w", key, err)
		}
	}

	return count, nil
}

// Get возвращает строковое значение по ключу, пустую строку если ключа нет
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("kv: get %s: %w", key, err)
	}
	return val, nil
}

// SetTTL записывает значение с временем жизни
func (s *Store) SetTTL(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("kv: set %s: %w", key, err)
	}
	return nil
}

// Close закрывает соединение с Redis
func (s *Store) Close() error {
	return s.client.Close()
}
