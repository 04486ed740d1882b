package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/UkralStul/comment-engagement-service/internal/domain"
	"github.com/UkralStul/comment-engagement-service/internal/storage"
	"github.com/redis/go-redis/v9"
)

// DefaultKey - ключ, под которым лежит документ, если другой не задан.
const DefaultKey = "comments:document"

// Store хранит документ одним JSON-значением в Redis.
type Store struct {
	client *redis.Client
	key    string
}

// New подключается к Redis и проверяет соединение.
func New(ctx context.Context, addr, pass, key string) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: pass,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Store{client: client, key: key}, nil
}

func (s *Store) Load(ctx context.Context) (*domain.Document, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.NewDocument(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", s.key, err)
	}
	return storage.Decode(data)
}

func (s *Store) Save(ctx context.Context, doc *domain.Document) error {
	data, err := storage.Encode(doc)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}
