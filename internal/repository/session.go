package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/apperrors"
	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

const sessionKeyPrefix = "session:"

// SessionStore persists the logged-in user's identity fields as a
// Redis hash, one hash per user. Clear wipes every field at once.
type SessionStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewSessionStore creates a Redis-backed session store.
func NewSessionStore(cfg config.RedisConfig, logger *zap.Logger) *SessionStore {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	return &SessionStore{client: client, logger: logger}
}

// Save writes all session fields.
func (s *SessionStore) Save(ctx context.Context, session *models.Session) error {
	key := sessionKeyPrefix + session.UserID

	err := s.client.HSet(ctx, key, map[string]any{
		"user_id":     session.UserID,
		"email":       session.Email,
		"name":        session.Name,
		"is_admin":    strconv.FormatBool(session.IsAdmin),
		"remember_me": strconv.FormatBool(session.RememberMe),
	}).Err()
	if err != nil {
		s.logger.Error("Session save error", zap.String("user_id", session.UserID), zap.Error(err))
		return apperrors.NewExternalError("session store", "failed to save session", err)
	}
	return nil
}

// Get fetches a session. Missing sessions yield ErrNotFound.
func (s *SessionStore) Get(ctx context.Context, userID string) (*models.Session, error) {
	key := sessionKeyPrefix + userID

	fields, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, apperrors.NewExternalError("session store", "failed to load session", err)
	}
	if len(fields) == 0 {
		return nil, apperrors.ErrNotFound
	}

	isAdmin, _ := strconv.ParseBool(fields["is_admin"])
	rememberMe, _ := strconv.ParseBool(fields["remember_me"])

	return &models.Session{
		UserID:     fields["user_id"],
		Email:      fields["email"],
		Name:       fields["name"],
		IsAdmin:    isAdmin,
		RememberMe: rememberMe,
	}, nil
}

// Clear removes every field of the session.
func (s *SessionStore) Clear(ctx context.Context, userID string) error {
	key := sessionKeyPrefix + userID

	if err := s.client.Del(ctx, key).Err(); err != nil {
		return apperrors.NewExternalError("session store", "failed to clear session", err)
	}
	return nil
}
