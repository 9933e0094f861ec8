package model

import "time"

// ActionType is a catalog entry describing a sustainable behavior.
type ActionType struct {
	ID             int64   `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Description    string  `gorm:"not null" json:"description"`
	BasePoints     int64   `gorm:"not null" json:"base_points"`
	CarbonImpactKg float64 `gorm:"not null" json:"carbon_impact_kg"`
}

// Action is one logged instance of a user performing an ActionType.
// PointsEarned and CarbonSavedKg are copied from the ActionType when logged.
type Action struct {
	ID            int64     `gorm:"primaryKey"`
	UserID        int64     `gorm:"index;not null"`
	ActionTypeID  int64     `gorm:"index;not null"`
	PointsEarned  int64     `gorm:"not null"`
	CarbonSavedKg float64   `gorm:"not null"`
	LoggedAt      time.Time `gorm:"not null;index"`

	// Associations
	ActionType ActionType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}
