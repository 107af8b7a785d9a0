package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps each session in a hash at session:<token>.
//
// Keys expire after ttl so abandoned sessions do not pile up; the Manager
// still checks IssuedAt itself.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func key(token string) string {
	return keyPrefix + token
}

func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	k := key(sess.Token)

	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, k,
			"login", sess.Login,
			"username", sess.Username,
			"email", sess.Email,
			"issued_at", strconv.FormatInt(sess.IssuedAt.UnixNano(), 10),
		)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, token string) (*Session, error) {
	fields, err := s.client.HGetAll(ctx, key(token)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}
	if len(fields) == 0 {
		return nil, ErrNotFound
	}

	issued, err := strconv.ParseInt(fields["issued_at"], 10, 64)
	if err != nil {
		// unreadable entry, treat as gone
		return nil, ErrNotFound
	}

	return &Session{
		Token:    token,
		Login:    fields["login"],
		Username: fields["username"],
		Email:    fields["email"],
		IssuedAt: time.Unix(0, issued),
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
