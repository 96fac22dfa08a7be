package timer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const timerKeyPrefix = "timer:"

// RedisStore persists one JSON value per user under "timer:<user_id>".
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func timerKey(userID uint) string {
	return timerKeyPrefix + strconv.FormatUint(uint64(userID), 10)
}

func (s *RedisStore) Load(ctx context.Context, userID uint) (State, bool, error) {
	data, err := s.client.Get(ctx, timerKey(userID)).Result()

	if errors.Is(err, redis.Nil) {
		return State{}, false, nil
	}

	if err != nil {
		return State{}, false, err
	}

	var state State

	if err := json.Unmarshal([]byte(data), &state); err != nil {
		// A corrupt value must not wedge the user; drop it and report Idle.
		logrus.WithError(err).WithField("user_id", userID).Warn("Discarding corrupt timer state")
		s.client.Del(ctx, timerKey(userID))
		return State{}, false, nil
	}

	return state, true, nil
}

func (s *RedisStore) LoadAll(ctx context.Context) (map[uint]State, error) {
	states := make(map[uint]State)

	iter := s.client.Scan(ctx, 0, timerKeyPrefix+"*", 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()

		idStr := strings.TrimPrefix(key, timerKeyPrefix)

		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			continue
		}

		state, ok, err := s.Load(ctx, uint(id))
		if err != nil {
			return nil, err
		}

		if ok {
			states[uint(id)] = state
		}
	}

	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan timer keys: %w", err)
	}

	return states, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uint, state State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	return s.client.Set(ctx, timerKey(userID), data, s.ttl).Err()
}

func (s *RedisStore) Clear(ctx context.Context, userID uint) error {
	return s.client.Del(ctx, timerKey(userID)).Err()
}
