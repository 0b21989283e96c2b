package properties

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rental-app/internal/api/response"
	"rental-app/internal/apperr"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/media"
	"rental-app/internal/domain/publishing"
	dp "rental-app/internal/domain/properties"
	"rental-app/internal/domain/site"
	"rental-app/internal/logger"
	"rental-app/internal/store"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// propertyAmenity is the bare junction row of the many2many relation.
type propertyAmenity struct {
	PropertyID uint
	AmenityID  uint
}

func (propertyAmenity) TableName() string { return "property_amenities" }

// ------------------------------
// reads
// ------------------------------

// List runs a filtered, paginated query. Public listings are always restricted to
// published rows regardless of c.Status.
func (s *Service) List(ctx context.Context, c Criteria, page response.PageRequest, public bool) ([]dp.Property, int64, error) {
	base := propertiesQuery(s.db.WithContext(ctx))
	fallback := sortDefaultAdmin
	if public {
		base = publishedQuery(s.db.WithContext(ctx))
		c.Status = nil
		fallback = sortDefaultPublic
	}
	if c.SortBy == "" {
		c.SortBy = fallback
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Scopes(filterScope(c)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []dp.Property
	err := base.
		Scopes(filterScope(c), orderScope(c.SortBy, c.SortDir, fallback), summaryPreloads).
		Offset(page.Offset()).Limit(page.Size).
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *Service) Featured(ctx context.Context) ([]dp.Property, error) {
	var list []dp.Property
	err := publishedQuery(s.db.WithContext(ctx)).
		Where("properties.is_featured = ?", true).
		Scopes(summaryPreloads).
		Order("properties.published_at DESC").
		Find(&list).Error
	return list, err
}

func (s *Service) GetPublishedBySlug(ctx context.Context, slug string) (*dp.Property, error) {
	var p dp.Property
	err := publishedQuery(s.db.WithContext(ctx)).
		Scopes(detailPreloads).
		Where("properties.slug = ?", slug).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Property", "slug", slug)
	}
	return &p, err
}

func (s *Service) Get(ctx context.Context, id uint) (*dp.Property, error) {
	return s.load(s.db.WithContext(ctx), id)
}

func (s *Service) load(db *gorm.DB, id uint) (*dp.Property, error) {
	var p dp.Property
	err := detailPreloads(db).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Property", "id", id)
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// InquiryCounts returns the number of contact messages per property id.
func (s *Service) InquiryCounts(ctx context.Context, ids ...uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		PropertyID uint
		N          int64
	}
	err := s.db.WithContext(ctx).Table("contact_messages").
		Select("property_id, COUNT(*) AS n").
		Where("property_id IN ?", ids).
		Group("property_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.PropertyID] = r.N
	}
	return out, nil
}

// SlugAvailable reports whether slug is free, ignoring the property excludeID.
func (s *Service) SlugAvailable(ctx context.Context, slug string, excludeID *uint) (bool, error) {
	taken, err := slugTaken(s.db.WithContext(ctx), slug, excludeID)
	return !taken, err
}

func slugTaken(db *gorm.DB, slug string, excludeID *uint) (bool, error) {
	q := propertiesQuery(db).Where("slug = ?", slug)
	if excludeID != nil {
		q = q.Where("id <> ?", *excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// ------------------------------
// writes
// ------------------------------

func (s *Service) Create(ctx context.Context, req CreatePropertyRequest, actor *uint) (*dp.Property, error) {
	log := logger.FromContext(ctx)

	p, errs := newProperty(req)
	rows, trErrs := translationRows(ctx, req.Translations)
	for k, v := range trErrs {
		errs[k] = v
	}
	if len(errs) > 0 {
		return nil, apperr.Validation("Property validation failed", errs)
	}

	p.CreatedByID = actor
	p.UpdatedByID = actor
	p.PublishedAt = publishing.StampPublished(nil, p.Status, s.now())

	var out *dp.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := slugTaken(tx, p.Slug, nil)
		if err != nil {
			return err
		}
		if taken {
			return apperr.Duplicate("Property", "slug", p.Slug)
		}

		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return err
		}
		for i := range rows {
			rows[i].PropertyID = p.ID
		}
		if err := store.ReplaceTranslations(tx, "property_id", p.ID, rows); err != nil {
			return err
		}
		if err := replaceAmenities(ctx, tx, p.ID, req.AmenityIDs); err != nil {
			return err
		}

		out, err = s.load(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, duplicateSlug(err, p.Slug)
	}

	log.Info("Property created", zap.Uint("property_id", out.ID), zap.String("slug", out.Slug))
	return out, nil
}

func (s *Service) Update(ctx context.Context, id uint, req UpdatePropertyRequest, actor *uint) (*dp.Property, error) {
	log := logger.FromContext(ctx)

	var rows []dp.PropertyI18n
	if req.Translations != nil {
		var trErrs map[string]string
		rows, trErrs = translationRows(ctx, req.Translations)
		if len(trErrs) > 0 {
			return nil, apperr.Validation("Property validation failed", trErrs)
		}
	}

	var out *dp.Property
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p dp.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Property", "id", id)
			}
			return err
		}

		if errs := applyUpdate(&p, req, s.now()); len(errs) > 0 {
			return apperr.Validation("Property validation failed", errs)
		}
		if req.Slug != nil {
			taken, err := slugTaken(tx, p.Slug, &p.ID)
			if err != nil {
				return err
			}
			if taken {
				return apperr.Duplicate("Property", "slug", p.Slug)
			}
		}
		p.UpdatedByID = actor

		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return err
		}
		if req.Translations != nil {
			for i := range rows {
				rows[i].PropertyID = p.ID
			}
			if err := store.ReplaceTranslations(tx, "property_id", p.ID, rows); err != nil {
				return err
			}
		}
		if req.AmenityIDs != nil {
			if err := replaceAmenities(ctx, tx, p.ID, req.AmenityIDs); err != nil {
				return err
			}
		}

		var err error
		out, err = s.load(tx, p.ID)
		return err
	})
	if err != nil {
		if req.Slug != nil {
			return nil, duplicateSlug(err, *req.Slug)
		}
		return nil, err
	}

	log.Info("Property updated", zap.Uint("property_id", id))
	return out, nil
}

// Delete hides the property. Translations, images and links are kept.
func (s *Service) Delete(ctx context.Context, id uint, actor *uint) error {
	res := propertiesQuery(s.db.WithContext(ctx)).
		Where("id = ?", id).
		Updates(map[string]any{"status": publishing.Hidden, "updated_by_id": actor})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("Property", "id", id)
	}
	logger.FromContext(ctx).Info("Property soft deleted", zap.Uint("property_id", id))
	return nil
}

// Purge removes the property and everything hanging off it. The returned paths
// are stored files no other image row references any more.
func (s *Service) Purge(ctx context.Context, id uint) ([]string, error) {
	var orphans []string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p dp.Property
		if err := tx.Select("id").First(&p, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("Property", "id", id)
			}
			return err
		}

		var images []media.PropertyImage
		if err := tx.Where("property_id = ?", id).Find(&images).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&media.PropertyImage{}).Error; err != nil {
			return err
		}
		for _, img := range images {
			shared, err := fileShared(tx, img.FilePath)
			if err != nil {
				return err
			}
			if !shared {
				orphans = append(orphans, img.FilePath)
			}
		}

		if err := tx.Where("property_id = ?", id).Delete(&dp.PropertyI18n{}).Error; err != nil {
			return err
		}
		if err := tx.Where("property_id = ?", id).Delete(&propertyAmenity{}).Error; err != nil {
			return err
		}
		if err := tx.Table("contact_messages").Where("property_id = ?", id).Update("property_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&dp.Property{}, id).Error
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Info("Property purged", zap.Uint("property_id", id), zap.Int("orphaned_files", len(orphans)))
	return orphans, nil
}

// ------------------------------
// helpers
// ------------------------------

func fileShared(tx *gorm.DB, path string) (bool, error) {
	var n int64
	err := tx.Model(&media.PropertyImage{}).Where("file_path = ?", path).Count(&n).Error
	return n > 0, err
}

// replaceAmenities swaps the amenity links. Unknown ids are skipped.
func replaceAmenities(ctx context.Context, tx *gorm.DB, propertyID uint, ids []uint) error {
	if err := tx.Where("property_id = ?", propertyID).Delete(&propertyAmenity{}).Error; err != nil {
		return err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil
	}

	var known []uint
	if err := tx.Model(&dp.Amenity{}).Where("id IN ?", ids).Pluck("id", &known).Error; err != nil {
		return err
	}
	if skipped := len(ids) - len(known); skipped > 0 {
		logger.FromContext(ctx).Warn("Skipping unknown amenity ids",
			zap.Uint("property_id", propertyID), zap.Int("skipped", skipped))
	}
	if len(known) == 0 {
		return nil
	}

	links := make([]propertyAmenity, 0, len(known))
	for _, aid := range known {
		links = append(links, propertyAmenity{PropertyID: propertyID, AmenityID: aid})
	}
	return tx.Create(&links).Error
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// translationRows validates a locale -> text map. Unknown locales are logged and
// skipped; at least one valid translation with a title must remain.
func translationRows(ctx context.Context, in map[string]TranslationInput) ([]dp.PropertyI18n, map[string]string) {
	byLocale := make(map[locale.Locale]TranslationInput, len(in))
	for code, tr := range in {
		l, ok := locale.FromCode(code)
		if !ok {
			logger.FromContext(ctx).Warn("Invalid locale in translation", zap.String("locale", code))
			continue
		}
		byLocale[l] = tr
	}

	errs := map[string]string{}
	rows := make([]dp.PropertyI18n, 0, len(byLocale))
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
		rows = append(rows, dp.PropertyI18n{
			Locale:        l,
			Title:         title,
			DescriptionMD: tr.DescriptionMD,
			AddressText:   strings.TrimSpace(tr.AddressText),
		})
	}
	if len(rows) == 0 && len(errs) == 0 {
		errs["translations"] = "At least one translation is required"
	}
	return rows, errs
}

func newProperty(req CreatePropertyRequest) (*dp.Property, map[string]string) {
	errs := map[string]string{}
	p := &dp.Property{
		Slug:        strings.TrimSpace(req.Slug),
		Code:        trimmedPtr(req.Code),
		AreaSqm:     req.AreaSqm,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		FloorNo:     req.FloorNo,
		PetPolicy:   req.PetPolicy,
		ViewDesc:    req.ViewDesc,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		AddressLine: strings.TrimSpace(req.AddressLine),
		IsFeatured:  req.IsFeatured,
		Status:      publishing.Draft,
	}

	if t, ok := dp.ParseType(req.PropertyType); ok {
		p.PropertyType = t
	} else {
		errs["propertyType"] = "Invalid property type"
	}
	if req.PriceMonth != nil {
		p.PriceMonth = *req.PriceMonth
	}
	if req.Status != "" {
		if st, ok := publishing.ParseStatus(req.Status); ok {
			p.Status = st
		} else {
			errs["status"] = "Invalid status"
		}
	}

	validate(p, errs)
	return p, errs
}

func applyUpdate(p *dp.Property, req UpdatePropertyRequest, now time.Time) map[string]string {
	errs := map[string]string{}

	if req.Slug != nil {
		p.Slug = strings.TrimSpace(*req.Slug)
	}
	if req.Code != nil {
		p.Code = trimmedPtr(req.Code)
	}
	if req.PropertyType != nil {
		if t, ok := dp.ParseType(*req.PropertyType); ok {
			p.PropertyType = t
		} else {
			errs["propertyType"] = "Invalid property type"
		}
	}
	if req.PriceMonth != nil {
		p.PriceMonth = *req.PriceMonth
	}
	if req.AreaSqm != nil {
		p.AreaSqm = req.AreaSqm
	}
	if req.Bedrooms != nil {
		p.Bedrooms = req.Bedrooms
	}
	if req.Bathrooms != nil {
		p.Bathrooms = req.Bathrooms
	}
	if req.FloorNo != nil {
		p.FloorNo = req.FloorNo
	}
	if req.PetPolicy != nil {
		p.PetPolicy = *req.PetPolicy
	}
	if req.ViewDesc != nil {
		p.ViewDesc = *req.ViewDesc
	}
	if req.Latitude != nil {
		p.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = req.Longitude
	}
	if req.AddressLine != nil {
		p.AddressLine = strings.TrimSpace(*req.AddressLine)
	}
	if req.IsFeatured != nil {
		p.IsFeatured = *req.IsFeatured
	}
	if req.Status != nil {
		if st, ok := publishing.ParseStatus(*req.Status); ok {
			p.SetStatus(st, now)
		} else {
			errs["status"] = "Invalid status"
		}
	}

	validate(p, errs)
	return errs
}

// validate checks the business bounds of the base fields.
func validate(p *dp.Property, errs map[string]string) {
	switch {
	case p.Slug == "":
		errs["slug"] = "Slug is required"
	case !site.IsValidSlug(p.Slug):
		errs["slug"] = "Slug must contain only lowercase letters, numbers, and hyphens"
	}
	if p.Code != nil && len(*p.Code) > dp.MaxCodeLength {
		errs["code"] = fmt.Sprintf("Code cannot exceed %d characters", dp.MaxCodeLength)
	}
	if p.PriceMonth <= 0 {
		errs["priceMonth"] = "Price must be greater than 0"
	}
	if p.AreaSqm != nil && (*p.AreaSqm < dp.MinArea || *p.AreaSqm > dp.MaxArea) {
		errs["areaSqm"] = fmt.Sprintf("Area must be between %.0f and %.0f sqm", dp.MinArea, dp.MaxArea)
	}
	if p.Bedrooms != nil && (*p.Bedrooms < dp.MinRooms || *p.Bedrooms > dp.MaxRooms) {
		errs["bedrooms"] = fmt.Sprintf("Bedrooms must be between %d and %d", dp.MinRooms, dp.MaxRooms)
	}
	if p.Bathrooms != nil && (*p.Bathrooms < dp.MinRooms || *p.Bathrooms > dp.MaxRooms) {
		errs["bathrooms"] = fmt.Sprintf("Bathrooms must be between %d and %d", dp.MinRooms, dp.MaxRooms)
	}
	if p.Latitude != nil && (*p.Latitude < -90 || *p.Latitude > 90) {
		errs["latitude"] = "Invalid latitude"
	}
	if p.Longitude != nil && (*p.Longitude < -180 || *p.Longitude > 180) {
		errs["longitude"] = "Invalid longitude"
	}
}

// duplicateSlug turns a unique violation that slipped past the pre-check into the
// typed Duplicate error.
func duplicateSlug(err error, slug string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperr.Duplicate("Property", "slug", slug)
	}
	return err
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
