package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/access"
	"rental-app/internal/domain/users"
	"rental-app/internal/logger"
	"rental-app/internal/store"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MinPasswordLength = 6
	MaxPasswordLength = 50
)

type Service struct {
	db   *gorm.DB
	cost int
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, cost: bcrypt.DefaultCost}
}

// Filter narrows the admin user listing. Inactive users only show up in search.
type Filter struct {
	Role  *access.Role
	Query string
}

func (s *Service) List(ctx context.Context, f Filter, page response.PageRequest) ([]users.User, int64, error) {
	base := s.db.WithContext(ctx).Model(&users.User{})
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		like := store.ContainsPattern(q)
		base = base.Where("(LOWER(email) LIKE ?"+store.Escape+" OR LOWER(COALESCE(full_name, '')) LIKE ?"+store.Escape+")", like, like)
	} else {
		base = base.Where("is_active = ?", true)
	}
	if f.Role != nil {
		base = base.Where("role = ?", *f.Role)
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []users.User
	err := base.Order("created_at DESC, id DESC").Offset(page.Offset()).Limit(page.Size).Find(&out).Error
	return out, total, err
}

// Get returns an active user.
func (s *Service) Get(ctx context.Context, id uint) (*users.User, error) {
	return findUser(s.db.WithContext(ctx), id, true)
}

func findUser(db *gorm.DB, id uint, activeOnly bool) (*users.User, error) {
	q := db
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var u users.User
	err := q.First(&u, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*users.User, error) {
	email := normalizeEmail(req.Email)
	role := access.RoleAdmin
	if req.Role != "" {
		r, ok := access.ParseRole(req.Role)
		if !ok {
			return nil, apperr.Field("role", "Invalid role")
		}
		role = r
	}
	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	taken, err := emailTaken(s.db.WithContext(ctx), email, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperr.Duplicate("User", "email", email)
	}

	hash, err := s.hash(req.Password)
	if err != nil {
		return nil, err
	}
	u := users.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		IsActive:     true,
	}
	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Duplicate("User", "email", email)
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("User created", zap.Uint("user_id", u.ID), zap.String("role", string(u.Role)))
	return &u, nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdateUserRequest) (*users.User, error) {
	var out *users.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id, true)
		if err != nil {
			return err
		}

		updates := map[string]any{}
		if req.Email != nil {
			email := normalizeEmail(*req.Email)
			if email != u.Email {
				taken, err := emailTaken(tx, email, &u.ID)
				if err != nil {
					return err
				}
				if taken {
					return apperr.Duplicate("User", "email", email)
				}
			}
			updates["email"] = email
		}
		if req.FullName != nil {
			updates["full_name"] = strings.TrimSpace(*req.FullName)
		}
		if req.Role != nil {
			r, ok := access.ParseRole(*req.Role)
			if !ok {
				return apperr.Field("role", "Invalid role")
			}
			updates["role"] = r
		}
		if req.IsActive != nil {
			updates["is_active"] = *req.IsActive
		}
		if len(updates) > 0 {
			if err := tx.Model(u).Updates(updates).Error; err != nil {
				return err
			}
		}
		out, err = findUser(tx, id, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("User updated", zap.Uint("user_id", id))
	return out, nil
}

func (s *Service) Deactivate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, false)
}

func (s *Service) Activate(ctx context.Context, id uint) error {
	return s.setActive(ctx, id, true)
}

// setActive flips the flag; asking for the current state is an InvalidOperation.
// Deactivation also revokes the user's refresh tokens.
func (s *Service) setActive(ctx context.Context, id uint, active bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx.Clauses(clause.Locking{Strength: "UPDATE"}), id, false)
		if err != nil {
			return err
		}
		if u.IsActive == active {
			if active {
				return apperr.InvalidOperation("User is already active")
			}
			return apperr.InvalidOperation("User is already deactivated")
		}
		if err := tx.Model(u).Update("is_active", active).Error; err != nil {
			return err
		}
		if !active {
			return revokeTokens(tx, id)
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("User active flag changed", zap.Uint("user_id", id), zap.Bool("active", active))
	return nil
}

// ChangePassword is the administrative reset: no current password is needed.
func (s *Service) ChangePassword(ctx context.Context, id uint, req PasswordChangeRequest) error {
	return s.changePassword(ctx, id, req, false)
}

// ChangeOwnPassword requires the current password to match.
func (s *Service) ChangeOwnPassword(ctx context.Context, id uint, req PasswordChangeRequest) error {
	return s.changePassword(ctx, id, req, true)
}

func (s *Service) changePassword(ctx context.Context, id uint, req PasswordChangeRequest, checkCurrent bool) error {
	if err := validatePassword(req.NewPassword); err != nil {
		return err
	}
	if req.NewPassword != req.ConfirmPassword {
		return apperr.Field("confirmPassword", "New password and confirmation password do not match")
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		u, err := findUser(tx, id, true)
		if err != nil {
			return err
		}
		if checkCurrent && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.CurrentPassword)) != nil {
			return apperr.Field("currentPassword", "Current password is incorrect")
		}
		hash, err := s.hash(req.NewPassword)
		if err != nil {
			return err
		}
		if err := tx.Model(u).Update("password_hash", hash).Error; err != nil {
			return err
		}
		return revokeTokens(tx, id)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Info("Password changed", zap.Uint("user_id", id))
	return nil
}

func (s *Service) EmailAvailable(ctx context.Context, email string, excludeID *uint) (bool, error) {
	taken, err := emailTaken(s.db.WithContext(ctx), normalizeEmail(email), excludeID)
	return !taken, err
}

func (s *Service) Stats(ctx context.Context) (StatsResponse, error) {
	out := StatsResponse{ByRole: map[access.Role]int64{
		access.RoleSuperAdmin: 0, access.RoleAdmin: 0, access.RoleEditor: 0,
	}}

	var rows []struct {
		Role access.Role
		N    int64
	}
	err := s.db.WithContext(ctx).Model(&users.User{}).
		Select("role, COUNT(*) AS n").
		Where("is_active = ?", true).
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return out, err
	}
	for _, r := range rows {
		out.ByRole[r.Role] = r.N
		out.TotalActive += r.N
	}
	return out, nil
}

// EnsureSuperAdmin creates the first SUPER_ADMIN when no user with that email
// exists. It reports whether a user was created.
func (s *Service) EnsureSuperAdmin(ctx context.Context, email, password string) (bool, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return false, apperr.Validation("Seed admin email and password are required", nil)
	}
	taken, err := emailTaken(s.db.WithContext(ctx), email, nil)
	if err != nil || taken {
		return false, err
	}
	if _, err := s.Create(ctx, CreateUserRequest{Email: email, Password: password, FullName: "Super Admin", Role: string(access.RoleSuperAdmin)}); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Service) hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func revokeTokens(tx *gorm.DB, userID uint) error {
	return tx.Model(&users.RefreshToken{}).
		Where("user_id = ? AND is_revoked = ?", userID, false).
		Update("is_revoked", true).Error
}

func emailTaken(db *gorm.DB, email string, excludeID *uint) (bool, error) {
	q := db.Model(&users.User{}).Where("LOWER(email) = ?", email)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validatePassword(p string) error {
	switch n := utf8.RuneCountInString(p); {
	case strings.TrimSpace(p) == "":
		return apperr.Field("password", "Password is required")
	case n < MinPasswordLength:
		return apperr.Field("password", fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	case n > MaxPasswordLength:
		return apperr.Field("password", fmt.Sprintf("Password cannot exceed %d characters", MaxPasswordLength))
	}
	return nil
}
