package inventory

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const reservationKeyPrefix = "inventory:reserved:"

// RedisInventory tracks item reservations as Redis keys.
// SETNX makes a reservation exclusive across concurrent requests.
type RedisInventory struct {
	client redis.Cmdable
	now    func() time.Time
}

func NewRedisInventory(client redis.Cmdable) *RedisInventory {
	return &RedisInventory{
		client: client,
		now:    time.Now,
	}
}

func reservationKey(itemID string) string {
	return reservationKeyPrefix + itemID
}

// ReserveItem returns false when the item is already reserved
func (i *RedisInventory) ReserveItem(ctx context.Context, itemID string) (bool, error) {
	return i.client.SetNX(ctx, reservationKey(itemID), i.now().UTC().Format(time.RFC3339), 0).Result()
}

func (i *RedisInventory) ReleaseItem(ctx context.Context, itemID string) error {
	return i.client.Del(ctx, reservationKey(itemID)).Err()
}

func (i *RedisInventory) CheckAvailability(ctx context.Context, itemID string) (bool, error) {
	n, err := i.client.Exists(ctx, reservationKey(itemID)).Result()
	if err != nil {
		return false, err
	}
	return n == 0, nil
}
