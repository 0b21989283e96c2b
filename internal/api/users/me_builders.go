package users

import (
	"rental-app/internal/domain/access"
	"rental-app/internal/domain/users"
)

func BuildUserDTO(u *users.User) UserDTO {
	return UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		FullName:    u.FullName,
		DisplayName: u.DisplayName(),
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func BuildUserDTOs(list []users.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, BuildUserDTO(&list[i]))
	}
	return out
}

func BuildAccessDTO(role access.Role) AccessDTO {
	return AccessDTO{Role: role, Capabilities: access.CapabilitiesFor(role)}
}

func BuildMeResponse(u *users.User) MeResponse {
	return MeResponse{User: BuildUserDTO(u), Access: BuildAccessDTO(u.Role)}
}
