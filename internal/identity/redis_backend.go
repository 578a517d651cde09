package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 2 * time.Second

// RedisBackend persists identity state under a single key. Used by gateway
// deployments where session state must be shared across instances. The seed
// state supplies a session id already established elsewhere (a cookie), so
// a fresh key does not mint a second identity.
type RedisBackend struct {
	client *redis.Client
	key    string
	seed   State
}

// NewRedisBackend builds a redis backend for one session key.
func NewRedisBackend(client *redis.Client, key string, seed State) *RedisBackend {
	return &RedisBackend{client: client, key: key, seed: seed}
}

// Load reads the persisted state, falling back to the seed when the key is
// absent.
func (b *RedisBackend) Load() (State, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return b.seed, nil
		}
		return State{}, fmt.Errorf("loading identity from redis: %w", err)
	}
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return State{}, fmt.Errorf("parsing identity from redis: %w", err)
	}
	return state, nil
}

// Save writes the full state blob in one SET.
func (b *RedisBackend) Save(state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding identity state: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("saving identity to redis: %w", err)
	}
	return nil
}
