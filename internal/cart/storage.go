package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"storefront/internal/redisx"
)

// Storage is the opaque key-value collaborator the store persists carts to.
// Load returns (nil, nil) when no cart has been saved for the user.
type Storage interface {
	Load(ctx context.Context, userID int64) ([]byte, error)
	Save(ctx context.Context, userID int64, data []byte) error
	Delete(ctx context.Context, userID int64) error
}

// RedisStorage keeps one JSON blob per user under cart:{user_id}.
type RedisStorage struct {
	rdb *redis.Client
}

func NewRedisStorage(rdb *redis.Client) *RedisStorage {
	return &RedisStorage{rdb: rdb}
}

func (s *RedisStorage) Load(ctx context.Context, userID int64) ([]byte, error) {
	b, err := s.rdb.Get(ctx, fmt.Sprintf(redisx.KeyCart, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	return b, err
}

func (s *RedisStorage) Save(ctx context.Context, userID int64, data []byte) error {
	return s.rdb.Set(ctx, fmt.Sprintf(redisx.KeyCart, userID), data, redisx.TTLCart).Err()
}

func (s *RedisStorage) Delete(ctx context.Context, userID int64) error {
	return s.rdb.Del(ctx, fmt.Sprintf(redisx.KeyCart, userID)).Err()
}

// MemoryStorage is an in-process Storage used in tests and when the service
// runs without Redis.
type MemoryStorage struct {
	mu   sync.Mutex
	data map[int64][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[int64][]byte)}
}

func (s *MemoryStorage) Load(_ context.Context, userID int64) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.data[userID]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out, nil
}

func (s *MemoryStorage) Save(_ context.Context, userID int64, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b := make([]byte, len(data))
	copy(b, data)
	s.data[userID] = b
	return nil
}

func (s *MemoryStorage) Delete(_ context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, userID)
	return nil
}
