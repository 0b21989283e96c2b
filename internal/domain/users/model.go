package users

import (
	"time"

	"rental-app/internal/domain/access"
)

type User struct {
	ID           uint        `gorm:"primaryKey"`
	Email        string      `gorm:"not null;uniqueIndex:idx_users_email"`
	PasswordHash string      `gorm:"column:password_hash;not null"`
	FullName     string      `gorm:"type:varchar(100)"`
	Role         access.Role `gorm:"type:varchar(20);not null;default:'ADMIN';index"`
	IsActive     bool        `gorm:"not null;default:true;index"`

	LastLoginAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName is the full name, or the email when no name was recorded.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}
