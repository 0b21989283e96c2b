package users

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshToken_IsValid(t *testing.T) {
	now := time.Now()

	live := RefreshToken{ExpiresAt: now.Add(time.Hour)}
	assert.True(t, live.IsValid(now))

	expired := RefreshToken{ExpiresAt: now.Add(-time.Second)}
	assert.True(t, expired.IsExpired(now))
	assert.False(t, expired.IsValid(now))

	revoked := RefreshToken{ExpiresAt: now.Add(time.Hour), IsRevoked: true}
	assert.False(t, revoked.IsValid(now))
}

func TestUser_DisplayName(t *testing.T) {
	assert.Equal(t, "Lan Nguyen", (&User{FullName: "Lan Nguyen", Email: "lan@example.com"}).DisplayName())
	assert.Equal(t, "lan@example.com", (&User{Email: "lan@example.com"}).DisplayName())
	var nobody *User
	assert.Equal(t, "", nobody.DisplayName())
}
