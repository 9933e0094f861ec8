package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"greenpoints-backend/internal/auth"
	"greenpoints-backend/internal/model"
)

func (s *gormStore) CreateSession(ctx context.Context, userID int64, ttl time.Duration) (*model.Session, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	session := model.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session for user %d: %w", userID, err)
	}
	return &session, nil
}

// ResolveSession returns the user behind a live session token.
func (s *gormStore) ResolveSession(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}

	var session model.Session
	err := s.db.WithContext(ctx).Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}
	if session.Expired(s.now()) {
		return nil, ErrSessionNotFound
	}

	user, err := s.User(ctx, session.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrSessionNotFound
	}
	return user, err
}

func (s *gormStore) DeleteSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("token = ?", token).Delete(&model.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpiredSessions prunes sessions whose expiry is at or before now.
func (s *gormStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("expires_at <= ?", now.UTC()).Delete(&model.Session{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune sessions: %w", res.Error)
	}
	return res.RowsAffected, nil
}
