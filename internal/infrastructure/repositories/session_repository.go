package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/superhecht1/praxida/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis.
// Each session lives under session:<id> with a TTL matching its absolute
// expiry; user_sessions:<userID> is a set of the user's session ids so
// DeleteByUser does not need a scan.
type SessionRepositoryImpl struct {
	client *redis.Client
	prefix string
	index  string
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client: client,
		prefix: "session:",
		index:  "user_sessions:",
	}
}

func (r *SessionRepositoryImpl) key(sessionID string) string {
	return r.prefix + sessionID
}

func (r *SessionRepositoryImpl) indexKey(userID uint) string {
	return fmt.Sprintf("%s%d", r.index, userID)
}

// Create implements domain.SessionRepository
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(session.ID), data, ttl)
	pipe.SAdd(ctx, r.indexKey(session.UserID), session.ID)
	// The index must outlive the longest session in it. NX sets the initial
	// TTL on a fresh set; GT extends it but never lets a shorter new session
	// cut it under an existing longer one.
	pipe.ExpireNX(ctx, r.indexKey(session.UserID), ttl)
	pipe.ExpireGT(ctx, r.indexKey(session.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, err
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// Save implements domain.SessionRepository. Used for rolling renewal: the
// record is rewritten with a TTL matching its new absolute expiry.
func (r *SessionRepositoryImpl) Save(ctx context.Context, session *domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(session.ID), data, ttl)
	pipe.ExpireNX(ctx, r.indexKey(session.UserID), ttl)
	pipe.ExpireGT(ctx, r.indexKey(session.UserID), ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// Delete implements domain.SessionRepository. Deleting an absent session is
// not an error.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	// Look the session up first so the user index entry can be removed too.
	session, err := r.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(sessionID))
	pipe.SRem(ctx, r.indexKey(session.UserID), sessionID)
	_, err = pipe.Exec(ctx)
	return err
}

// DeleteByUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID uint) (int, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey(userID)).Result()
	if err != nil {
		return 0, err
	}

	pipe := r.client.TxPipeline()
	for _, id := range ids {
		pipe.Del(ctx, r.key(id))
	}
	pipe.Del(ctx, r.indexKey(userID))
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return len(ids), nil
}

// ListByUser implements domain.SessionRepository. The index can lag behind
// expired sessions, so membership is checked against the live keys.
func (r *SessionRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]string, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey(userID)).Result()
	if err != nil {
		return nil, err
	}

	live := make([]string, 0, len(ids))
	for _, id := range ids {
		exists, err := r.client.Exists(ctx, r.key(id)).Result()
		if err != nil {
			return nil, err
		}
		if exists == 1 {
			live = append(live, id)
		} else {
			r.client.SRem(ctx, r.indexKey(userID), id)
		}
	}
	return live, nil
}
