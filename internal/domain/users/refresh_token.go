package users

import "time"

// RefreshToken stores an issued refresh JWT. A token is honored only while it is
// neither revoked nor expired; both are terminal.
type RefreshToken struct {
	ID         uint      `gorm:"primaryKey"`
	Token      string    `gorm:"type:varchar(512);not null;uniqueIndex"`
	UserID     uint      `gorm:"not null;index"`
	User       User      `gorm:"constraint:OnDelete:CASCADE"`
	ExpiresAt  time.Time `gorm:"not null;index"`
	IsRevoked  bool      `gorm:"not null;default:false;index"`
	DeviceInfo string    `gorm:"type:varchar(255)"`
	CreatedAt  time.Time
}

func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

func (t *RefreshToken) IsValid(now time.Time) bool {
	return !t.IsRevoked && !t.IsExpired(now)
}
