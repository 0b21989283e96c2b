package contact

import (
	"context"
	"errors"
	"strings"
	"time"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	dc "rental-app/internal/domain/contact"
	"rental-app/internal/domain/locale"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/domain/users"
	"rental-app/internal/logger"
	"rental-app/internal/metrics"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Filter selects one of the inbox views.
type Filter int

const (
	All Filter = iota
	Unhandled
	Handled
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Submit stores a public inquiry. A property id that does not resolve is dropped,
// the message is kept as a general inquiry.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (*dc.Message, error) {
	log := logger.FromContext(ctx)

	m := dc.Message{
		FullName:      strings.TrimSpace(req.FullName),
		Email:         strings.TrimSpace(req.Email),
		Phone:         strings.TrimSpace(req.Phone),
		Subject:       strings.TrimSpace(req.Subject),
		Message:       strings.TrimSpace(req.Message),
		PreferredLang: locale.ParsePtr(req.PreferredLang, locale.Default),
	}
	errs := map[string]string{}
	if m.FullName == "" {
		errs["fullName"] = "Full name is required"
	}
	if m.Message == "" {
		errs["message"] = "Message is required"
	}
	if len(errs) > 0 {
		return nil, apperr.Validation("Contact message validation failed", errs)
	}

	if req.PropertyID != nil {
		var n int64
		if err := s.db.WithContext(ctx).Model(&dp.Property{}).Where("id = ?", *req.PropertyID).Count(&n).Error; err != nil {
			return nil, err
		}
		if n > 0 {
			id := *req.PropertyID
			m.PropertyID = &id
		} else {
			log.Warn("Contact message references unknown property", zap.Uint("property_id", *req.PropertyID))
		}
	}

	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(&m).Error; err != nil {
		return nil, err
	}

	kind := "general"
	if m.PropertyID != nil {
		kind = "property"
	}
	metrics.ContactMessagesReceived.WithLabelValues(kind).Inc()
	log.Info("Contact message received", zap.Uint("message_id", m.ID), zap.String("kind", kind))
	return &m, nil
}

// List pages through one inbox view. Handled messages are ordered by when they were
// handled, everything else by arrival.
func (s *Service) List(ctx context.Context, f Filter, query string, page response.PageRequest) ([]dc.Message, int64, error) {
	base := messagesQuery(s.db.WithContext(ctx)).Scopes(searchScope(query))
	order := "contact_messages.created_at DESC, contact_messages.id DESC"
	switch f {
	case Unhandled:
		base = base.Scopes(unhandledScope)
	case Handled:
		base = base.Scopes(handledScope)
		order = "contact_messages.handled_at DESC, contact_messages.id DESC"
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []dc.Message
	err := base.Scopes(withRelations).
		Order(order).
		Offset(page.Offset()).Limit(page.Size).
		Find(&out).Error
	return out, total, err
}

func (s *Service) Get(ctx context.Context, id uint) (*dc.Message, error) {
	return load(s.db.WithContext(ctx), id)
}

func load(db *gorm.DB, id uint) (*dc.Message, error) {
	var m dc.Message
	err := withRelations(db).First(&m, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Contact message", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// MarkHandled stamps the message with the acting user. Marking again moves the
// stamp to the latest handler.
func (s *Service) MarkHandled(ctx context.Context, id, userID uint) (*dc.Message, error) {
	var out *dc.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m dc.Message
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Contact message", "id", id)
			}
			return err
		}

		var u users.User
		if err := tx.Select("id").First(&u, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("User", "id", userID)
			}
			return err
		}

		now := s.now()
		if err := tx.Model(&m).Updates(map[string]any{"handled_by_id": userID, "handled_at": now}).Error; err != nil {
			return err
		}
		var err error
		out, err = load(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Contact message handled", zap.Uint("message_id", id), zap.Uint("user_id", userID))
	return out, nil
}
