// File: services/dialogue/session.go
package dialogue

import (
	"context"
	"encoding/json"
	"time"

	"tablevoice/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "dlg:sess:"

// RedisSessionStore keeps dialogue sessions server-side with a bounded TTL.
// Sessions are optional: clients that carry their own history never touch it.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.DialogueSession, error) {
	key := sessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return &models.DialogueSession{}, nil
	}
	if err != nil {
		return nil, err
	}
	var sess models.DialogueSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, sess *models.DialogueSession) error {
	key := sessionPrefix + sessionID
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	key := sessionPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}
