package statestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"isiboard/internal/app/view"
	"isiboard/internal/platform/config"

	"github.com/redis/go-redis/v9"
)

var RDB *redis.Client

func ConnectRedis() {
	RDB = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDB,
	})

	ctx := context.Background()
	_, err := RDB.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Could not connect to Redis: %v", err)
	}
	fmt.Println("Successfully connected to Redis!")
}

func CloseRedis() {
	if RDB != nil {
		RDB.Close()
		fmt.Println("Redis connection closed.")
	}
}

const viewStateKeyPrefix = "isiboard:viewstate:"

// RedisStore persists one view.State per admin as JSON, with no expiry: a
// restart resurrects every admin's last view.
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Get(ctx context.Context, adminID string) (view.State, error) {
	raw, err := s.rdb.Get(ctx, viewStateKeyPrefix+adminID).Result()
	if errors.Is(err, redis.Nil) {
		return view.DefaultState(), nil
	}
	if err != nil {
		return view.State{}, fmt.Errorf("statestore.Get: %w", err)
	}
	var state view.State
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		// A corrupt entry falls back to the default instead of locking the
		// admin out of the dashboard.
		return view.DefaultState(), nil
	}
	return state, nil
}

func (s *RedisStore) Save(ctx context.Context, adminID string, state view.State) error {
	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("statestore.Save: marshal: %w", err)
	}
	if err := s.rdb.Set(ctx, viewStateKeyPrefix+adminID, payload, 0).Err(); err != nil {
		return fmt.Errorf("statestore.Save: %w", err)
	}
	return nil
}
