package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"vkyc/internal/verification/models"
	"vkyc/pkg/platform/sentinel"
)

const keyPrefix = "vkyc:session:"

// RedisStore keeps live sessions as JSON documents with a TTL so abandoned
// calls expire on their own. Updates use WATCH for optimistic concurrency.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis constructs a Redis-backed session store. A zero ttl keeps
// sessions until they are submitted.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func sessionKey(id models.SessionID) string {
	return keyPrefix + string(id)
}

func (s *RedisStore) Create(ctx context.Context, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	ok, err := s.client.SetNX(ctx, sessionKey(sess.ID), data, s.ttl).Result()
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if !ok {
		return fmt.Errorf("session %s: %w", sess.ID, sentinel.ErrAlreadyUsed)
	}
	return nil
}

func (s *RedisStore) FindByID(ctx context.Context, id models.SessionID) (models.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Session{}, sentinel.ErrNotFound
		}
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	return decodeSession(data)
}

// Update writes sess if the stored version equals expectedVersion. A
// concurrent write between WATCH and EXEC surfaces as sentinel.ErrConflict.
func (s *RedisStore) Update(ctx context.Context, sess models.Session, expectedVersion int64) error {
	key := sessionKey(sess.ID)
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	err = s.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return sentinel.ErrNotFound
			}
			return fmt.Errorf("get session: %w", err)
		}
		current, err := decodeSession(raw)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return fmt.Errorf("session %s at version %d, expected %d: %w",
				sess.ID, current.Version, expectedVersion, sentinel.ErrConflict)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, redis.KeepTTL)
			return nil
		})
		return err
	}, key)

	if errors.Is(err, redis.TxFailedErr) {
		return fmt.Errorf("session %s modified concurrently: %w", sess.ID, sentinel.ErrConflict)
	}
	return err
}

func (s *RedisStore) Delete(ctx context.Context, id models.SessionID) error {
	n, err := s.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func decodeSession(data []byte) (models.Session, error) {
	var sess models.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return models.Session{}, fmt.Errorf("decode session: %w", err)
	}
	return sess, nil
}
