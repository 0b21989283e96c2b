package content

import (
	"strings"
	"testing"

	"rental-app/internal/domain/locale"

	"github.com/stretchr/testify/assert"
)

func TestPlainText_StripsMarkup(t *testing.T) {
	body := "# Hướng dẫn thuê nhà\n\nLiên hệ **ngay** để xem *phòng*."

	assert.Equal(t, "Hướng dẫn thuê nhà Liên hệ ngay để xem phòng.", PlainText(body))
}

func TestPreview_Truncates(t *testing.T) {
	body := strings.Repeat("a", 250)

	got := Preview(body, PreviewLength)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, PreviewLength+3, len(got))

	assert.Equal(t, "short", Preview("short", PreviewLength))
}

func TestRenderHTML_Sanitizes(t *testing.T) {
	out := RenderHTML("**bold** <script>alert(1)</script>")

	assert.Contains(t, out, "<strong>bold</strong>")
	assert.NotContains(t, out, "<script>")
}

func TestPage_DisplayTitle(t *testing.T) {
	p := Page{Slug: "about-us", Translations: []PageI18n{{Locale: locale.EN, Title: "About us"}}}

	assert.Equal(t, "About us", p.DisplayTitle(locale.EN))
	assert.Equal(t, "about-us", p.DisplayTitle(locale.VI))
}
