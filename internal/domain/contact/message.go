package contact

import (
	"fmt"
	"time"

	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/properties"
	"rental-app/internal/domain/users"
)

const GeneralInquiry = "General Inquiry"

// Message is an inbound inquiry from the public contact form. It is not translatable.
type Message struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"type:varchar(100);not null" json:"full_name"`
	Email    string `gorm:"type:varchar(255);index" json:"email,omitempty"`
	Phone    string `gorm:"type:varchar(20)" json:"phone,omitempty"`
	Subject  string `gorm:"type:varchar(200)" json:"subject,omitempty"`
	Message  string `gorm:"type:text;not null" json:"message"`

	PropertyID *uint                 `gorm:"index" json:"property_id,omitempty"`
	Property   *properties.Property `gorm:"constraint:OnDelete:SET NULL;" json:"-"`

	PreferredLang locale.Locale `gorm:"type:varchar(5);not null;default:'vi'" json:"preferred_lang"`

	HandledByID *uint       `json:"-"`
	HandledBy   *users.User `gorm:"foreignKey:HandledByID;constraint:OnDelete:SET NULL;" json:"-"`
	HandledAt   *time.Time  `gorm:"index" json:"handled_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string { return "contact_messages" }

func (m *Message) IsHandled() bool {
	return m.HandledAt != nil
}

// ResponseTime is handledAt - createdAt; ok is false until the message is handled.
func (m *Message) ResponseTime() (time.Duration, bool) {
	if m.HandledAt == nil || m.CreatedAt.IsZero() {
		return 0, false
	}
	return m.HandledAt.Sub(m.CreatedAt), true
}

func (m *Message) PropertyName(l locale.Locale) string {
	if m.Property == nil {
		return GeneralInquiry
	}
	return m.Property.DisplayTitle(l)
}

// FormatDuration renders a response time for the inbox list.
func FormatDuration(d time.Duration) string {
	hours := int64(d.Hours())
	minutes := int64(d.Minutes()) % 60
	switch {
	case hours > 24:
		return fmt.Sprintf("%d days, %d hours", hours/24, hours%24)
	case hours > 0:
		return fmt.Sprintf("%d hours, %d minutes", hours, minutes)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
