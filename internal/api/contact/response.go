package contact

import (
	"time"

	dc "rental-app/internal/domain/contact"
	"rental-app/internal/domain/locale"
)

type PropertyRef struct {
	ID    uint   `json:"id"`
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type HandlerRef struct {
	ID       uint   `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
}

type MessageResponse struct {
	ID            uint          `json:"id"`
	FullName      string        `json:"fullName"`
	Email         string        `json:"email,omitempty"`
	Phone         string        `json:"phone,omitempty"`
	Subject       string        `json:"subject,omitempty"`
	Message       string        `json:"message"`
	PreferredLang locale.Locale `json:"preferredLang"`

	PropertyName string       `json:"propertyName"`
	Property     *PropertyRef `json:"property,omitempty"`

	IsHandled             bool        `json:"isHandled"`
	HandledBy             *HandlerRef `json:"handledBy,omitempty"`
	HandledAt             *time.Time  `json:"handledAt,omitempty"`
	ResponseTimeFormatted string      `json:"responseTimeFormatted,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

func ToResponse(m *dc.Message, l locale.Locale) MessageResponse {
	out := MessageResponse{
		ID:            m.ID,
		FullName:      m.FullName,
		Email:         m.Email,
		Phone:         m.Phone,
		Subject:       m.Subject,
		Message:       m.Message,
		PreferredLang: m.PreferredLang,
		PropertyName:  m.PropertyName(l),
		IsHandled:     m.IsHandled(),
		HandledAt:     m.HandledAt,
		CreatedAt:     m.CreatedAt,
	}
	if m.Property != nil {
		out.Property = &PropertyRef{ID: m.Property.ID, Slug: m.Property.Slug, Title: out.PropertyName}
	}
	if m.HandledBy != nil {
		out.HandledBy = &HandlerRef{ID: m.HandledBy.ID, Email: m.HandledBy.Email, FullName: m.HandledBy.FullName}
	}
	if d, ok := m.ResponseTime(); ok {
		out.ResponseTimeFormatted = dc.FormatDuration(d)
	}
	return out
}

func ToResponses(list []dc.Message, l locale.Locale) []MessageResponse {
	out := make([]MessageResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i], l))
	}
	return out
}
