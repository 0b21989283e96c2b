package siteapi

import (
	"context"
	"errors"
	"regexp"
	"sort"

	"rental-app/internal/apperr"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/site"
	"rental-app/internal/logger"
	"rental-app/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var validKey = regexp.MustCompile(`^[a-z0-9_]{1,100}$`)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) List(ctx context.Context) ([]site.Setting, error) {
	var out []site.Setting
	err := settingsQuery(s.db.WithContext(ctx)).Order("key ASC").Find(&out).Error
	return out, err
}

func (s *Service) Get(ctx context.Context, key string) (*site.Setting, error) {
	var out site.Setting
	err := settingsQuery(s.db.WithContext(ctx)).Where("key = ?", key).First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Setting", "key", key)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CompanyInfo returns the public company settings in CompanyInfoKeys order. Keys
// never stored yet are filled from the defaults.
func (s *Service) CompanyInfo(ctx context.Context) ([]site.Setting, error) {
	var stored []site.Setting
	if err := companyInfoQuery(s.db.WithContext(ctx)).Find(&stored).Error; err != nil {
		return nil, err
	}
	byKey := make(map[string]site.Setting, len(stored))
	for _, st := range stored {
		byKey[st.Key] = st
	}

	out := make([]site.Setting, 0, len(site.CompanyInfoKeys))
	for _, k := range site.CompanyInfoKeys {
		if st, ok := byKey[k]; ok {
			out = append(out, st)
			continue
		}
		out = append(out, site.Setting{Key: k, Value: site.Defaults[k]})
	}
	return out, nil
}

func (s *Service) CompanyInfoValue(ctx context.Context, key string) (*site.Setting, error) {
	if !site.IsCompanyInfoKey(key) {
		return nil, apperr.NotFound("Company info", "key", key)
	}
	st, err := s.Get(ctx, key)
	if apperr.Is(err, apperr.KindNotFound) {
		return &site.Setting{Key: key, Value: site.Defaults[key]}, nil
	}
	return st, err
}

// Upsert creates the setting or changes the supplied parts of it.
func (s *Service) Upsert(ctx context.Context, key string, req UpsertSettingRequest, actor *uint) (*site.Setting, error) {
	if !validKey.MatchString(key) {
		return nil, apperr.Field("key", "Key must contain only lowercase letters, numbers, and underscores")
	}
	if req.Value == nil && req.Translations == nil {
		return nil, apperr.Validation("Nothing to update", map[string]string{"value": "Value or translations is required"})
	}

	var rows []site.SettingI18n
	if req.Translations != nil {
		for code, v := range req.Translations {
			l, ok := locale.FromCode(code)
			if !ok {
				logger.FromContext(ctx).Warn("Invalid locale in setting translation", zap.String("key", key), zap.String("locale", code))
				continue
			}
			rows = append(rows, site.SettingI18n{SettingKey: key, Locale: l, Value: v})
		}
		sort.Slice(rows, func(i, j int) bool { return rows[i].Locale < rows[j].Locale })
	}

	var out *site.Setting
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var st site.Setting
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("key = ?", key).First(&st).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			st = site.Setting{Key: key, UpdatedByID: actor}
			if req.Value != nil {
				st.Value = *req.Value
			}
			if err := tx.Omit(clause.Associations).Create(&st).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			updates := map[string]any{"updated_by_id": actor}
			if req.Value != nil {
				updates["value"] = *req.Value
			}
			if err := tx.Model(&st).Updates(updates).Error; err != nil {
				return err
			}
		}

		if req.Translations != nil {
			if err := store.ReplaceTranslations(tx, "setting_key", key, rows); err != nil {
				return err
			}
		}

		var loaded site.Setting
		if err := settingsQuery(tx).Where("key = ?", key).First(&loaded).Error; err != nil {
			return err
		}
		out = &loaded
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Setting saved", zap.String("key", key))
	return out, nil
}

// InitializeDefaults inserts the default settings that are missing and reports how
// many were added. Existing values are never touched.
func (s *Service) InitializeDefaults(ctx context.Context) (int, error) {
	keys := make([]string, 0, len(site.Defaults))
	for k := range site.Defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	created := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []string
		if err := tx.Model(&site.Setting{}).Where("key IN ?", keys).Pluck("key", &existing).Error; err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		for _, k := range existing {
			have[k] = true
		}

		for _, k := range keys {
			if have[k] {
				continue
			}
			if err := tx.Omit(clause.Associations).Create(&site.Setting{Key: k, Value: site.Defaults[k]}).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	logger.FromContext(ctx).Info("Default settings initialized", zap.Int("created", created))
	return created, nil
}
