package content

import (
	"context"
	"errors"
	"strings"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/content"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/publishing"
	"rental-app/internal/domain/site"
	"rental-app/internal/logger"
	"rental-app/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) ListPublished(ctx context.Context) ([]content.Page, error) {
	var out []content.Page
	err := publishedPages(s.db.WithContext(ctx)).
		Scopes(withTranslations).
		Order("content_pages.slug ASC").
		Find(&out).Error
	return out, err
}

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*content.Page, error) {
	var p content.Page
	err := publishedPages(s.db.WithContext(ctx)).
		Scopes(withTranslations).
		Where("content_pages.slug = ?", slug).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Content page", "slug", slug)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List is the admin listing, newest first.
func (s *Service) List(ctx context.Context, st *publishing.Status, page response.PageRequest) ([]content.Page, int64, error) {
	base := pagesQuery(s.db.WithContext(ctx)).Scopes(statusScope(st)).Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var out []content.Page
	err := base.Scopes(withTranslations).
		Order("content_pages.updated_at DESC, content_pages.id DESC").
		Offset(page.Offset()).Limit(page.Size).
		Find(&out).Error
	return out, total, err
}

func (s *Service) Get(ctx context.Context, id uint) (*content.Page, error) {
	return load(s.db.WithContext(ctx), id)
}

func load(db *gorm.DB, id uint) (*content.Page, error) {
	var p content.Page
	err := withTranslations(db).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Content page", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Service) SlugAvailable(ctx context.Context, slug string, excludeID *uint) (bool, error) {
	taken, err := slugTaken(s.db.WithContext(ctx), slug, excludeID)
	return !taken, err
}

func slugTaken(db *gorm.DB, slug string, excludeID *uint) (bool, error) {
	q := pagesQuery(db).Where("slug = ?", slug)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

func (s *Service) Create(ctx context.Context, req CreatePageRequest, actor *uint) (*content.Page, error) {
	errs := map[string]string{}
	p := &content.Page{Slug: strings.TrimSpace(req.Slug), Status: publishing.Draft, CreatedByID: actor, UpdatedByID: actor}
	if req.Status != "" {
		st, ok := publishing.ParseStatus(req.Status)
		if !ok {
			errs["status"] = "Invalid status"
		}
		p.Status = st
	}
	checkSlug(p.Slug, errs)
	rows, terrs := translationRows(ctx, req.Translations)
	for k, v := range terrs {
		errs[k] = v
	}
	if len(errs) > 0 {
		return nil, apperr.Validation("Content page validation failed", errs)
	}

	var out *content.Page
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slugTaken(tx, p.Slug, nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Duplicate("Content page", "slug", p.Slug)
		}
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		if err := replaceTranslations(tx, p.ID, rows); err != nil {
			return err
		}
		out, err = load(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, duplicateSlug(err, p.Slug)
	}

	logger.FromContext(ctx).Info("Content page created", zap.Uint("page_id", out.ID), zap.String("slug", out.Slug))
	return out, nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdatePageRequest, actor *uint) (*content.Page, error) {
	errs := map[string]string{}
	var rows []content.PageI18n
	if req.Translations != nil {
		var terrs map[string]string
		rows, terrs = translationRows(ctx, req.Translations)
		for k, v := range terrs {
			errs[k] = v
		}
	}
	if len(errs) > 0 {
		return nil, apperr.Validation("Content page validation failed", errs)
	}

	var out *content.Page
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p content.Page
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Content page", "id", id)
			}
			return err
		}

		if req.Slug != nil {
			p.Slug = strings.TrimSpace(*req.Slug)
			checkSlug(p.Slug, errs)
		}
		if req.Status != nil {
			st, ok := publishing.ParseStatus(*req.Status)
			if !ok {
				errs["status"] = "Invalid status"
			}
			p.Status = st
		}
		if len(errs) > 0 {
			return apperr.Validation("Content page validation failed", errs)
		}
		if req.Slug != nil {
			taken, err := slugTaken(tx, p.Slug, &p.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Duplicate("Content page", "slug", p.Slug)
			}
		}
		p.UpdatedByID = actor

		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return err
		}
		if req.Translations != nil {
			if err := replaceTranslations(tx, p.ID, rows); err != nil {
				return err
			}
		}
		var err error
		out, err = load(tx, p.ID)
		return err
	})
	if err != nil {
		if req.Slug != nil {
			return nil, duplicateSlug(err, strings.TrimSpace(*req.Slug))
		}
		return nil, err
	}

	logger.FromContext(ctx).Info("Content page updated", zap.Uint("page_id", id))
	return out, nil
}

// Delete hides the page; the row and its translations stay.
func (s *Service) Delete(ctx context.Context, id uint, actor *uint) error {
	res := pagesQuery(s.db.WithContext(ctx)).
		Where("id = ?", id).
		Updates(map[string]any{"status": publishing.Hidden, "updated_by_id": actor})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Content page", "id", id)
	}
	logger.FromContext(ctx).Info("Content page hidden", zap.Uint("page_id", id))
	return nil
}

func replaceTranslations(tx *gorm.DB, pageID uint, rows []content.PageI18n) error {
	for i := range rows {
		rows[i].PageID = pageID
	}
	return store.ReplaceTranslations(tx, "page_id", pageID, rows)
}

func checkSlug(slug string, errs map[string]string) {
	switch {
	case slug == "":
		errs["slug"] = "Slug is required"
	case !site.IsValidSlug(slug):
		errs["slug"] = "Slug must contain only lowercase letters, numbers, and hyphens"
	}
}

// translationRows keeps the valid locales, in default-first order.
func translationRows(ctx context.Context, in map[string]TranslationInput) ([]content.PageI18n, map[string]string) {
	errs := map[string]string{}
	byLocale := make(map[locale.Locale]TranslationInput, len(in))
	for code, tr := range in {
		l, ok := locale.FromCode(code)
		if !ok {
			logger.FromContext(ctx).Warn("Invalid locale in translation", zap.String("locale", code))
			continue
		}
		byLocale[l] = tr
	}

	rows := make([]content.PageI18n, 0, len(byLocale))
	for _, l := range locale.All() {
		tr, ok := byLocale[l]
		if !ok {
			continue
		}
		title := strings.TrimSpace(tr.Title)
		if title == "" {
			errs["translations."+l.String()+".title"] = "Title is required"
			continue
		}
		rows = append(rows, content.PageI18n{Locale: l, Title: title, BodyMD: tr.BodyMD})
	}
	if len(rows) == 0 && len(errs) == 0 {
		errs["translations"] = "At least one translation is required"
	}
	return rows, errs
}

func duplicateSlug(err error, slug string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Duplicate("Content page", "slug", slug)
	}
	return err
}
