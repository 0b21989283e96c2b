package siteapi

import (
	"time"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/site"
)

// UpsertSettingRequest writes value and/or translations. A nil translations map keeps
// the stored overrides; an empty one clears them.
type UpsertSettingRequest struct {
	Value        *string           `json:"value"`
	Translations map[string]string `json:"translations"`
}

type SettingDTO struct {
	Key          string            `json:"key"`
	Value        string            `json:"value"`
	DisplayValue string            `json:"displayValue"`
	Translations map[string]string `json:"translations"`
	UpdatedAt    *time.Time        `json:"updatedAt,omitempty"`
}

func toDTO(s *site.Setting, l locale.Locale) SettingDTO {
	tr := make(map[string]string, len(s.Translations))
	for _, t := range s.Translations {
		tr[t.Locale.String()] = t.Value
	}
	out := SettingDTO{
		Key:          s.Key,
		Value:        s.Value,
		DisplayValue: s.DisplayValue(l),
		Translations: tr,
	}
	if !s.UpdatedAt.IsZero() {
		at := s.UpdatedAt
		out.UpdatedAt = &at
	}
	return out
}

func toDTOs(list []site.Setting, l locale.Locale) []SettingDTO {
	out := make([]SettingDTO, 0, len(list))
	for i := range list {
		out = append(out, toDTO(&list[i], l))
	}
	return out
}
