package session

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// Per-session scratch state for the counter demo and the style settings.
// Keys ride the same token as the session but live independently, so an
// anonymous visitor can use the counter without being authenticated.

type Styles struct {
	Color string
	Bg    string
}

func (s *Store) dataKey(id, field string) string {
	return "sessdata:" + id + ":" + field
}

func (s *Store) Counter(ctx context.Context, id string) (int64, error) {
	n, err := s.client.Get(ctx, s.dataKey(id, "counter")).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (s *Store) IncrCounter(ctx context.Context, id string, delta int64) (int64, error) {
	key := s.dataKey(id, "counter")
	n, err := s.client.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, err
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *Store) Styles(ctx context.Context, id string) (Styles, error) {
	vals, err := s.client.HGetAll(ctx, s.dataKey(id, "styles")).Result()
	if err != nil {
		return Styles{}, err
	}
	return Styles{Color: vals["color"], Bg: vals["bg"]}, nil
}

func (s *Store) SaveStyles(ctx context.Context, id string, styles Styles) error {
	key := s.dataKey(id, "styles")
	if err := s.client.HSet(ctx, key, "color", styles.Color, "bg", styles.Bg).Err(); err != nil {
		return err
	}
	return s.client.Expire(ctx, key, s.ttl).Err()
}
