package content

type TranslationInput struct {
	Title  string `json:"title"`
	BodyMD string `json:"bodyMd"`
}

type CreatePageRequest struct {
	Slug         string                      `json:"slug" binding:"required"`
	Status       string                      `json:"status"`
	Translations map[string]TranslationInput `json:"translations" binding:"required"`
}

// UpdatePageRequest changes what is present; translations replace the stored set.
type UpdatePageRequest struct {
	Slug         *string                     `json:"slug"`
	Status       *string                     `json:"status"`
	Translations map[string]TranslationInput `json:"translations"`
}
