package admin

import (
	"context"
	"time"

	"rental-app/internal/domain/contact"
	"rental-app/internal/domain/properties"
	"rental-app/internal/domain/publishing"
	"rental-app/internal/domain/users"

	"gorm.io/gorm"
)

type DashboardStats struct {
	TotalProperties     int64 `json:"totalProperties"`
	PublishedProperties int64 `json:"publishedProperties"`
	DraftProperties     int64 `json:"draftProperties"`
	HiddenProperties    int64 `json:"hiddenProperties"`
	FeaturedProperties  int64 `json:"featuredProperties"`

	TotalByType     map[properties.Type]int64 `json:"totalByType"`
	TotalApartments int64                     `json:"totalApartments"`
	TotalRooms      int64                     `json:"totalRooms"`
	TotalStudios    int64                     `json:"totalStudios"`
	TotalHouses     int64                     `json:"totalHouses"`

	TotalContactMessages int64 `json:"totalContactMessages"`
	UnhandledMessages    int64 `json:"unhandledMessages"`
	HandledMessages      int64 `json:"handledMessages"`
	MessagesThisMonth    int64 `json:"messagesThisMonth"`

	// Prices cover published properties; nil when none are published.
	AveragePrice *float64 `json:"averagePrice"`
	MinPrice     *float64 `json:"minPrice"`
	MaxPrice     *float64 `json:"maxPrice"`

	TotalUsers  int64 `json:"totalUsers"`
	ActiveUsers int64 `json:"activeUsers"`

	PropertiesCreatedThisWeek int64 `json:"propertiesCreatedThisWeek"`
	MessagesReceivedThisWeek  int64 `json:"messagesReceivedThisWeek"`
}

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

func (s *Service) Dashboard(ctx context.Context) (*DashboardStats, error) {
	db := s.db.WithContext(ctx)
	now := s.now()
	weekAgo := now.AddDate(0, 0, -7)
	monthAgo := now.AddDate(0, -1, 0)

	out := &DashboardStats{TotalByType: make(map[properties.Type]int64, len(properties.Types))}

	var byStatus []struct {
		Status publishing.Status
		N      int64
	}
	if err := db.Model(&properties.Property{}).Select("status, COUNT(*) AS n").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, r := range byStatus {
		out.TotalProperties += r.N
		switch r.Status {
		case publishing.Published:
			out.PublishedProperties = r.N
		case publishing.Draft:
			out.DraftProperties = r.N
		case publishing.Hidden:
			out.HiddenProperties = r.N
		}
	}

	var byType []struct {
		PropertyType properties.Type
		N            int64
	}
	if err := db.Model(&properties.Property{}).Select("property_type, COUNT(*) AS n").Group("property_type").Scan(&byType).Error; err != nil {
		return nil, err
	}
	for _, t := range properties.Types {
		out.TotalByType[t] = 0
	}
	for _, r := range byType {
		out.TotalByType[r.PropertyType] = r.N
	}
	out.TotalApartments = out.TotalByType[properties.TypeApartment]
	out.TotalRooms = out.TotalByType[properties.TypeRoom]
	out.TotalStudios = out.TotalByType[properties.TypeStudio]
	out.TotalHouses = out.TotalByType[properties.TypeHouse]

	var price struct {
		Avg *float64
		Min *float64
		Max *float64
	}
	err := db.Model(&properties.Property{}).
		Select("AVG(price_month) AS avg, MIN(price_month) AS min, MAX(price_month) AS max").
		Where("status = ?", publishing.Published).
		Scan(&price).Error
	if err != nil {
		return nil, err
	}
	out.AveragePrice, out.MinPrice, out.MaxPrice = price.Avg, price.Min, price.Max

	counts := []struct {
		dst   *int64
		model any
		where string
		args  []any
	}{
		{&out.FeaturedProperties, &properties.Property{}, "is_featured = ?", []any{true}},
		{&out.PropertiesCreatedThisWeek, &properties.Property{}, "created_at >= ?", []any{weekAgo}},
		{&out.TotalContactMessages, &contact.Message{}, "", nil},
		{&out.UnhandledMessages, &contact.Message{}, "handled_at IS NULL", nil},
		{&out.HandledMessages, &contact.Message{}, "handled_at IS NOT NULL", nil},
		{&out.MessagesThisMonth, &contact.Message{}, "created_at >= ?", []any{monthAgo}},
		{&out.MessagesReceivedThisWeek, &contact.Message{}, "created_at >= ?", []any{weekAgo}},
		{&out.TotalUsers, &users.User{}, "", nil},
		{&out.ActiveUsers, &users.User{}, "is_active = ?", []any{true}},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, c.args...)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	return out, nil
}
