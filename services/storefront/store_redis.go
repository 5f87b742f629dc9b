package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix     = "neonx:session:"
	redisUpdateRetries = 5
)

// ErrUpdateConflict is returned when a session kept changing under a
// read-modify-write and every retry lost the race.
var ErrUpdateConflict = errors.New("session update conflict")

// RedisStore keeps sessions as JSON blobs in Redis. Every write refreshes
// the TTL.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStore(ctx context.Context, rdb *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if rdb == nil {
		return nil, errors.New("redis client must be non-nil")
	}
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, pkgerrors.Wrap(err, "redis ping")
	}
	return &RedisStore{
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func redisKey(id string) string {
	return redisKeyPrefix + id
}

func (r *RedisStore) Get(ctx context.Context, id string) (*State, error) {
	data, err := r.rdb.Get(ctx, redisKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, pkgerrors.Wrapf(err, "get session %s", id)
	}
	return decodeState(id, data)
}

func decodeState(id string, data []byte) (*State, error) {
	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, pkgerrors.Wrapf(err, "decode session %s", id)
	}
	return &state, nil
}

func (r *RedisStore) Put(ctx context.Context, id string, state *State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return pkgerrors.Wrapf(err, "encode session %s", id)
	}
	if err := r.rdb.Set(ctx, redisKey(id), data, r.ttl).Err(); err != nil {
		return pkgerrors.Wrapf(err, "put session %s", id)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, redisKey(id)).Err(); err != nil {
		return pkgerrors.Wrapf(err, "delete session %s", id)
	}
	return nil
}

// Update runs fn on the stored session inside WATCH/MULTI so that writers in
// other processes cannot be overwritten. fn may run more than once.
func (r *RedisStore) Update(ctx context.Context, id string, fn func(*State) error) (*State, error) {
	key := redisKey(id)
	var updated *State
	txf := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return pkgerrors.Wrapf(err, "get session %s", id)
		}
		state, err := decodeState(id, data)
		if err != nil {
			return err
		}
		if err := fn(state); err != nil {
			return err
		}
		encoded, err := json.Marshal(state)
		if err != nil {
			return pkgerrors.Wrapf(err, "encode session %s", id)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		updated = state
		return nil
	}

	for range redisUpdateRetries {
		err := r.rdb.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return updated, nil
	}
	return nil, ErrUpdateConflict
}
