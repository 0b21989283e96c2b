package content

import (
	"time"

	"rental-app/internal/domain/content"
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/publishing"
)

type TranslationResponse struct {
	Title  string `json:"title"`
	BodyMD string `json:"bodyMd,omitempty"`
}

type PageResponse struct {
	ID     uint              `json:"id"`
	Slug   string            `json:"slug"`
	Status publishing.Status `json:"status"`

	Title    string `json:"title"`
	BodyMD   string `json:"bodyMd,omitempty"`
	BodyHTML string `json:"bodyHtml,omitempty"`
	Preview  string `json:"preview,omitempty"`

	Translations map[string]TranslationResponse `json:"translations"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToResponse resolves the display fields for l. withBody=false leaves the HTML out,
// which keeps listings light.
func ToResponse(p *content.Page, l locale.Locale, withBody bool) PageResponse {
	tr := make(map[string]TranslationResponse, len(p.Translations))
	for _, t := range p.Translations {
		tr[t.Locale.String()] = TranslationResponse{Title: t.Title, BodyMD: t.BodyMD}
	}

	body := p.DisplayBody(l)
	out := PageResponse{
		ID:           p.ID,
		Slug:         p.Slug,
		Status:       p.Status,
		Title:        p.DisplayTitle(l),
		Preview:      content.Preview(body, content.PreviewLength),
		Translations: tr,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if withBody {
		out.BodyMD = body
		out.BodyHTML = content.RenderHTML(body)
	}
	return out
}

func ToResponses(list []content.Page, l locale.Locale) []PageResponse {
	out := make([]PageResponse, 0, len(list))
	for i := range list {
		out = append(out, ToResponse(&list[i], l, false))
	}
	return out
}
