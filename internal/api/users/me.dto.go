package users

import (
	"time"

	"rental-app/internal/domain/access"
)

type MeResponse struct {
	User   UserDTO   `json:"user"`
	Access AccessDTO `json:"access"`
}

/* ---------- USER ---------- */

type UserDTO struct {
	ID          uint        `json:"id"`
	Email       string      `json:"email"`
	FullName    string      `json:"fullName"`
	DisplayName string      `json:"displayName"`
	Role        access.Role `json:"role"`
	IsActive    bool        `json:"isActive"`
	LastLoginAt *time.Time  `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

/* ---------- ACCESS ---------- */

type AccessDTO struct {
	Role         access.Role         `json:"role"`
	Capabilities []access.Permission `json:"capabilities"`
}

/* ---------- REQUESTS ---------- */

type CreateUserRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"fullName" binding:"max=100"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	FullName *string `json:"fullName" binding:"omitempty,max=100"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"isActive"`
}

// PasswordChangeRequest is shared by the admin reset and the self service change;
// CurrentPassword is only checked by the latter.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type StatsResponse struct {
	TotalActive int64                 `json:"totalActive"`
	ByRole      map[access.Role]int64 `json:"byRole"`
}
