package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("session not found")

// Store keeps sessions in redis, keyed by the opaque cookie token. TTL is
// enforced by redis and double-checked on read.
type Store struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewStore(client redis.UniversalClient, ttl time.Duration) *Store {
	return &Store{
		client: client,
		prefix: "session:",
		ttl:    ttl,
	}
}

// TTL returns the fixed session lifetime.
func (s *Store) TTL() time.Duration { return s.ttl }

func (s *Store) Save(ctx context.Context, sess Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return errors.New("session is expired")
	}

	return s.client.Set(ctx, s.prefix+sess.ID, data, ttl).Err()
}

func (s *Store) Get(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrNotFound
	}

	data, err := s.client.Get(ctx, s.prefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("redis get: %w", err)
	}

	var sess Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	sess.ID = id

	// Redis TTL should have removed it already; check anyway.
	if time.Now().After(sess.ExpiresAt) {
		if err := s.Delete(ctx, id); err != nil {
			return Session{}, fmt.Errorf("cleanup expired session: %w", err)
		}
		return Session{}, ErrNotFound
	}

	return sess, nil
}

// Delete is idempotent; deleting a missing session is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	if err := s.client.Del(ctx, s.prefix+id, s.dataKey(id, "counter"), s.dataKey(id, "styles")).Err(); err != nil {
		return err
	}
	return nil
}
