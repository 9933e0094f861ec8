package model

import "time"

// Dorm represents a dormitory competing on the leaderboard.
type Dorm struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	TotalPoints int64     `gorm:"not null;default:0;index" json:"total_points"`
	CreatedAt   time.Time `gorm:"not null" json:"-"`
	UpdatedAt   time.Time `gorm:"not null" json:"-"`

	// Associations
	Users []User `gorm:"foreignKey:DormID" json:"-"`
}
