package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"greenpoints-backend/internal/model"
)

// Actions returns the user's actions, newest first.
func (s *gormStore) Actions(ctx context.Context, userID int64) ([]model.Action, error) {
	var actions []model.Action
	if err := s.db.WithContext(ctx).
		Preload("ActionType").
		Where("user_id = ?", userID).
		Order("logged_at DESC").
		Order("id DESC").
		Find(&actions).Error; err != nil {
		return nil, fmt.Errorf("failed to list actions for user %d: %w", userID, err)
	}
	return actions, nil
}

// Action returns one action if it exists and belongs to userID.
func (s *gormStore) Action(ctx context.Context, userID, actionID int64) (*model.Action, error) {
	action, err := findOwnedAction(s.db.WithContext(ctx), userID, actionID)
	if err != nil {
		return nil, err
	}
	return action, nil
}

// LogAction records a new action from the catalog and credits the ledger.
func (s *gormStore) LogAction(ctx context.Context, userID, actionTypeID int64) (*model.Action, error) {
	var action model.Action

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var actionType model.ActionType
		if err := tx.First(&actionType, actionTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrActionTypeNotFound
			}
			return err
		}

		user, err := loadUser(tx, userID)
		if err != nil {
			return err
		}

		now := s.now()
		action = model.Action{
			UserID:        user.ID,
			ActionTypeID:  actionType.ID,
			PointsEarned:  actionType.BasePoints,
			CarbonSavedKg: actionType.CarbonImpactKg,
			LoggedAt:      now.UTC(),
		}
		if err := tx.Omit(clause.Associations).Create(&action).Error; err != nil {
			return err
		}
		action.ActionType = actionType

		if err := applyPointsDelta(tx, user, action.PointsEarned); err != nil {
			return err
		}
		return recordStreak(tx, user, now)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to log action type %d for user %d: %w", actionTypeID, userID, err)
	}
	return &action, nil
}

// UpdateActionPoints overwrites an owned action's points and moves the
// ledger by the difference.
func (s *gormStore) UpdateActionPoints(ctx context.Context, userID, actionID, points int64) (*model.Action, error) {
	var action *model.Action

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		action, err = findOwnedAction(tx, userID, actionID)
		if err != nil {
			return err
		}
		user, err := loadUser(tx, action.UserID)
		if err != nil {
			return err
		}

		delta := points - action.PointsEarned
		if err := tx.Model(&model.Action{}).
			Where("id = ?", action.ID).
			UpdateColumn("points_earned", points).Error; err != nil {
			return err
		}
		action.PointsEarned = points

		return applyPointsDelta(tx, user, delta)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update action %d: %w", actionID, err)
	}
	return action, nil
}

// DeleteAction removes an owned action and debits the ledger.
func (s *gormStore) DeleteAction(ctx context.Context, userID, actionID int64) (*model.Action, error) {
	var action *model.Action

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		action, err = findOwnedAction(tx, userID, actionID)
		if err != nil {
			return err
		}
		user, err := loadUser(tx, action.UserID)
		if err != nil {
			return err
		}

		if err := tx.Delete(&model.Action{}, action.ID).Error; err != nil {
			return err
		}
		return applyPointsDelta(tx, user, -action.PointsEarned)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete action %d: %w", actionID, err)
	}
	return action, nil
}

func findOwnedAction(tx *gorm.DB, userID, actionID int64) (*model.Action, error) {
	var action model.Action
	err := tx.Preload("ActionType").
		Where("id = ? AND user_id = ?", actionID, userID).
		First(&action).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrActionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &action, nil
}

// loadUser reads the user row the ledger update will touch.
func loadUser(tx *gorm.DB, userID int64) (*model.User, error) {
	var user model.User
	err := tx.First(&user, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}
