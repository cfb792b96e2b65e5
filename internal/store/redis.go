package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists account documents as JSON strings in redis, one key per
// collection.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Load(ctx context.Context, email string) (Document, error) {
	var doc Document
	if err := s.loadKey(ctx, ProductsKey(email), &doc.Products); err != nil {
		return Document{}, err
	}
	if err := s.loadKey(ctx, SalesKey(email), &doc.Sales); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (s *RedisStore) loadKey(ctx context.Context, key string, dst any) error {
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dst)
}

func (s *RedisStore) Save(ctx context.Context, email string, doc Document) error {
	products, err := json.Marshal(doc.Products)
	if err != nil {
		return err
	}
	sales, err := json.Marshal(doc.Sales)
	if err != nil {
		return err
	}

	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, ProductsKey(email), products, 0)
	pipe.Set(ctx, SalesKey(email), sales, 0)
	_, err = pipe.Exec(ctx)
	return err
}
