package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"alfredoptarigan/career-architect/internal/models"
)

const redisKeyPrefix = "career-architect:session:"

// redisSessionRepository relies on key TTLs for expiry, so DeleteExpired
// has nothing to do.
type redisSessionRepository struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisSessionRepository(client *redis.Client) SessionRepository {
	return &redisSessionRepository{client: client, now: time.Now}
}

func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}

func sessionKey(id uuid.UUID) string {
	return redisKeyPrefix + id.String()
}

func (r *redisSessionRepository) ttl(session *models.Session) time.Duration {
	return session.ExpiresAt.Sub(r.now())
}

// Create implements SessionRepository.
func (r *redisSessionRepository) Create(ctx context.Context, session *models.Session) error {
	ttl := r.ttl(session)
	if ttl <= 0 {
		return fmt.Errorf("failed to create session: already expired")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := r.client.SetNX(ctx, sessionKey(session.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if !ok {
		return fmt.Errorf("failed to create session: id %s already exists", session.ID)
	}
	return nil
}

// FindByID implements SessionRepository.
func (r *redisSessionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	data, err := r.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &session, nil
}

// Save implements SessionRepository.
func (r *redisSessionRepository) Save(ctx context.Context, session *models.Session) error {
	ttl := r.ttl(session)
	if ttl <= 0 {
		return r.Delete(ctx, session.ID)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	ok, err := r.client.SetXX(ctx, sessionKey(session.ID), data, ttl).Result()
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	if !ok {
		return ErrSessionNotFound
	}
	return nil
}

// Delete implements SessionRepository.
func (r *redisSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	n, err := r.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteExpired implements SessionRepository.
func (r *redisSessionRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

// FindByState implements SessionRepository. It scans every session key,
// which is acceptable for the janitor's low frequency.
func (r *redisSessionRepository) FindByState(ctx context.Context, state models.SessionState, updatedBefore time.Time, limit int) ([]models.Session, error) {
	var out []models.Session

	iter := r.client.Scan(ctx, 0, redisKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		data, err := r.client.Get(ctx, iter.Val()).Bytes()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read session: %w", err)
		}

		var session models.Session
		if err := json.Unmarshal(data, &session); err != nil {
			continue
		}
		if session.State == state && session.UpdatedAt.Before(updatedBefore) {
			out = append(out, session)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan sessions: %w", err)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.Before(out[j].UpdatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
