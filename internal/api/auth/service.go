package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	usersapi "rental-app/internal/api/users"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/users"
	"rental-app/internal/infra/tokens"
	"rental-app/internal/logger"
	"rental-app/internal/metrics"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxDeviceInfo = 255

var errBadCredentials = apperr.Unauthorized("Invalid email or password")

type Service struct {
	db     *gorm.DB
	issuer *tokens.Issuer
	now    func() time.Time
}

func NewService(db *gorm.DB, issuer *tokens.Issuer) *Service {
	return &Service{db: db, issuer: issuer, now: time.Now}
}

// Login checks the credentials of an active user, then stores a refresh token row
// for the device and stamps the last login time.
func (s *Service) Login(ctx context.Context, req LoginRequest, device string) (*TokenResponse, error) {
	log := logger.FromContext(ctx)
	db := s.db.WithContext(ctx)

	var u users.User
	err := db.Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return nil, errBadCredentials
	}
	if !u.IsActive {
		metrics.LoginAttempts.WithLabelValues("inactive").Inc()
		return nil, apperr.Unauthorized("Account is deactivated")
	}

	sub := tokens.Subject{UserID: u.ID, Email: u.Email, Role: u.Role}
	access, _, err := s.issuer.Issue(tokens.KindAccess, sub)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.issuer.Issue(tokens.KindRefresh, sub)
	if err != nil {
		return nil, err
	}

	if len(device) > maxDeviceInfo {
		device = device[:maxDeviceInfo]
	}
	now := s.now()
	err = db.Transaction(func(tx *gorm.DB) error {
		row := users.RefreshToken{Token: refresh, UserID: u.ID, ExpiresAt: refreshExp, DeviceInfo: device}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		return tx.Model(&u).Update("last_login_at", now).Error
	})
	if err != nil {
		return nil, err
	}
	u.LastLoginAt = &now

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	log.Info("User logged in", zap.Uint("user_id", u.ID))

	dto := usersapi.BuildUserDTO(&u)
	return s.tokenResponse(access, refresh, &dto), nil
}

// Refresh issues a new access token for a stored, unrevoked, unexpired refresh
// token whose user is still active.
func (s *Service) Refresh(ctx context.Context, raw string) (*TokenResponse, error) {
	claims, err := s.issuer.Parse(raw, tokens.KindRefresh)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	db := s.db.WithContext(ctx)
	var row users.RefreshToken
	err = db.Where("token = ?", raw).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("Refresh token not found")
	}
	if err != nil {
		return nil, err
	}
	if !row.IsValid(s.now()) {
		return nil, apperr.Unauthorized("Refresh token is expired or revoked")
	}
	if row.UserID != claims.UserID {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	var u users.User
	err = db.Where("is_active = ?", true).First(&u, row.UserID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("User not found or inactive")
	}
	if err != nil {
		return nil, err
	}

	access, _, err := s.issuer.Issue(tokens.KindAccess, tokens.Subject{UserID: u.ID, Email: u.Email, Role: u.Role})
	if err != nil {
		return nil, err
	}
	return s.tokenResponse(access, raw, nil), nil
}

// Logout revokes the refresh token. Unknown tokens are ignored.
func (s *Service) Logout(ctx context.Context, raw string) error {
	res := s.db.WithContext(ctx).Model(&users.RefreshToken{}).
		Where("token = ? AND is_revoked = ?", raw, false).
		Update("is_revoked", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		logger.FromContext(ctx).Info("Refresh token revoked")
	}
	return nil
}

// PurgeResult counts the rows touched by PurgeTokens.
type PurgeResult struct {
	Revoked int64 `json:"revoked"`
	Deleted int64 `json:"deleted"`
}

// PurgeTokens revokes expired refresh tokens, then deletes revoked ones issued
// before now minus retention.
func (s *Service) PurgeTokens(ctx context.Context, retention time.Duration) (PurgeResult, error) {
	var out PurgeResult
	now := s.now()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&users.RefreshToken{}).
			Where("expires_at <= ? AND is_revoked = ?", now, false).
			Update("is_revoked", true)
		if res.Error != nil {
			return res.Error
		}
		out.Revoked = res.RowsAffected

		res = tx.Where("is_revoked = ? AND created_at < ?", true, now.Add(-retention)).
			Delete(&users.RefreshToken{})
		if res.Error != nil {
			return res.Error
		}
		out.Deleted = res.RowsAffected
		return nil
	})
	if err != nil {
		return out, err
	}

	metrics.RefreshTokensPurged.WithLabelValues("revoked").Add(float64(out.Revoked))
	metrics.RefreshTokensPurged.WithLabelValues("deleted").Add(float64(out.Deleted))
	logger.FromContext(ctx).Info("Refresh tokens purged",
		zap.Int64("revoked", out.Revoked), zap.Int64("deleted", out.Deleted))
	return out, nil
}

func (s *Service) tokenResponse(access, refresh string, u *usersapi.UserDTO) *TokenResponse {
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.issuer.AccessTTL().Seconds()),
		User:         u,
	}
}
