package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"greenpoints-backend/internal/catalog"
	"greenpoints-backend/internal/model"
)

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB
	Ping(ctx context.Context) error

	Dorms(ctx context.Context) ([]model.Dorm, error)
	Leaderboard(ctx context.Context) ([]model.Dorm, error)
	ActionTypes(ctx context.Context) ([]model.ActionType, error)

	CreateUser(ctx context.Context, email, passwordHash string, dormID *int64) (*model.User, error)
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	User(ctx context.Context, id int64) (*model.User, error)

	Actions(ctx context.Context, userID int64) ([]model.Action, error)
	Action(ctx context.Context, userID, actionID int64) (*model.Action, error)
	LogAction(ctx context.Context, userID, actionTypeID int64) (*model.Action, error)
	UpdateActionPoints(ctx context.Context, userID, actionID, points int64) (*model.Action, error)
	DeleteAction(ctx context.Context, userID, actionID int64) (*model.Action, error)

	CreateSession(ctx context.Context, userID int64, ttl time.Duration) (*model.Session, error)
	ResolveSession(ctx context.Context, token string) (*model.User, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)

	Seed(ctx context.Context, c *catalog.Catalog) (SeedResult, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return NewGormStoreWithClock(db, time.Now)
}

// NewGormStoreWithClock is NewGormStore with an injectable clock.
func NewGormStoreWithClock(db *gorm.DB, now func() time.Time) Store {
	return &gormStore{db: db, now: now}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

func (s *gormStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Dorms lists all dorms alphabetically.
func (s *gormStore) Dorms(ctx context.Context) ([]model.Dorm, error) {
	var dorms []model.Dorm
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&dorms).Error; err != nil {
		return nil, fmt.Errorf("failed to list dorms: %w", err)
	}
	return dorms, nil
}

// Leaderboard lists dorms by total points, highest first.
func (s *gormStore) Leaderboard(ctx context.Context) ([]model.Dorm, error) {
	var dorms []model.Dorm
	if err := s.db.WithContext(ctx).
		Order("total_points DESC").
		Order("name ASC").
		Find(&dorms).Error; err != nil {
		return nil, fmt.Errorf("failed to load leaderboard: %w", err)
	}
	return dorms, nil
}

func (s *gormStore) ActionTypes(ctx context.Context) ([]model.ActionType, error) {
	var types []model.ActionType
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list action types: %w", err)
	}
	return types, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CreateUser registers a user. dormID may be nil.
func (s *gormStore) CreateUser(ctx context.Context, email, passwordHash string, dormID *int64) (*model.User, error) {
	user := model.User{
		Email:        normalizeEmail(email),
		PasswordHash: passwordHash,
		DormID:       dormID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailTaken
		}

		if dormID != nil {
			var dorm model.Dorm
			if err := tx.First(&dorm, *dormID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrDormNotFound
				}
				return err
			}
			user.Dorm = &dorm
		}

		if err := tx.Omit(clause.Associations).Create(&user).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", user.Email, err)
	}
	return &user, nil
}

// isUniqueViolation reports a unique index rejection. gorm translates it for
// postgres; the sqlite driver returns the raw sqlite3 error.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

func (s *gormStore) UserByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Dorm").Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (s *gormStore) User(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Preload("Dorm").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return &user, nil
}
