package model

import "time"

// User is a registered participant. DormID is optional.
type User struct {
	ID             int64  `gorm:"primaryKey"`
	Email          string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash   string `gorm:"not null"`
	DormID         *int64 `gorm:"index"`
	TotalPoints    int64  `gorm:"not null;default:0"`
	CurrentStreak  int    `gorm:"not null;default:0"`
	LastActionDate *time.Time
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`

	// Associations
	Dorm     *Dorm     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	Actions  []Action  `gorm:"constraint:OnDelete:CASCADE"`
	Sessions []Session `gorm:"constraint:OnDelete:CASCADE"`
}

// DormName returns the user's dorm name, or an empty string.
func (u *User) DormName() string {
	if u.Dorm == nil {
		return ""
	}
	return u.Dorm.Name
}
