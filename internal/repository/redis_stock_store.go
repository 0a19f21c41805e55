package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"SimMarket/internal/domain/models"
	domrepo "SimMarket/internal/domain/repository"
)

// RedisStockStore persists each stock as a JSON document keyed by symbol.
// Saves run inside WATCH so two sweeps racing on the same record surface as
// ErrConflict instead of silently clobbering each other.
type RedisStockStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStockStore(client *redis.Client, prefix string) *RedisStockStore {
	return &RedisStockStore{client: client, prefix: prefix}
}

func (s *RedisStockStore) FindBySymbol(ctx context.Context, symbol string) (*models.Stock, error) {
	raw, err := s.client.Get(ctx, s.stockKey(symbol)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domrepo.ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var stock models.Stock
	if err := json.Unmarshal(raw, &stock); err != nil {
		return nil, fmt.Errorf("unmarshal stock %s: %w", symbol, err)
	}
	return &stock, nil
}

func (s *RedisStockStore) Save(ctx context.Context, stock *models.Stock) error {
	key := s.stockKey(stock.Symbol)

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return domrepo.ErrNotFound
			}
			return fmt.Errorf("redis get: %w", err)
		}

		var current models.Stock
		if err := json.Unmarshal(raw, &current); err != nil {
			return fmt.Errorf("unmarshal stock %s: %w", stock.Symbol, err)
		}
		if current.Version != stock.Version {
			return domrepo.ErrConflict
		}

		stock.Version++
		b, err := json.Marshal(stock)
		if err != nil {
			return fmt.Errorf("marshal stock %s: %w", stock.Symbol, err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, b, 0)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return domrepo.ErrConflict
	}
	return err
}

func (s *RedisStockStore) ListSymbols(ctx context.Context) ([]string, error) {
	symbols, err := s.client.SMembers(ctx, s.symbolsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("redis smembers: %w", err)
	}
	sort.Strings(symbols)
	return symbols, nil
}

func (s *RedisStockStore) Register(ctx context.Context, stock *models.Stock) error {
	b, err := json.Marshal(stock)
	if err != nil {
		return fmt.Errorf("marshal stock %s: %w", stock.Symbol, err)
	}

	ok, err := s.client.SetNX(ctx, s.stockKey(stock.Symbol), b, 0).Result()
	if err != nil {
		return fmt.Errorf("redis setnx: %w", err)
	}
	if !ok {
		return domrepo.ErrConflict
	}

	if err := s.client.SAdd(ctx, s.symbolsKey(), stock.Symbol).Err(); err != nil {
		return fmt.Errorf("redis sadd: %w", err)
	}
	return nil
}

func (s *RedisStockStore) Close() error { return nil } // client owned by pkg/redis

func (s *RedisStockStore) stockKey(symbol string) string {
	return fmt.Sprintf("%s:stock:%s", s.prefix, symbol)
}

func (s *RedisStockStore) symbolsKey() string {
	return fmt.Sprintf("%s:symbols", s.prefix)
}
