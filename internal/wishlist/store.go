package wishlist

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"storefront/internal/redisx"
)

// Store keeps each user's wishlist as a set of product ids in the same
// key-value collaborator the cart persists to.
type Store struct {
	rdb *redis.Client
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb}
}

func (s *Store) List(ctx context.Context, userID int64) ([]int64, error) {
	members, err := s.rdb.SMembers(ctx, key(userID)).Result()
	if err != nil {
		return nil, err
	}
	out := make([]int64, 0, len(members))
	for _, m := range members {
		id, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			continue // skip junk entries rather than failing the whole list
		}
		out = append(out, id)
	}
	return out, nil
}

func (s *Store) Add(ctx context.Context, userID, productID int64) error {
	k := key(userID)
	if err := s.rdb.SAdd(ctx, k, productID).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, k, redisx.TTLWishlist).Err()
}

func (s *Store) Remove(ctx context.Context, userID, productID int64) error {
	return s.rdb.SRem(ctx, key(userID), productID).Err()
}

func key(userID int64) string {
	return fmt.Sprintf(redisx.KeyWishlist, userID)
}
