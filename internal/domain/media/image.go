package media

import (
	"fmt"
	"strings"
	"time"
)

const PlaceholderURL = "/images/placeholder.jpg"

type PropertyImage struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	PropertyID uint   `gorm:"not null;index:idx_property_images_sort,priority:1" json:"property_id"`
	FilePath   string `gorm:"not null" json:"file_path"`
	MimeType   string `gorm:"type:varchar(50)" json:"mime_type,omitempty"`
	FileSize   *int64 `json:"file_size,omitempty"`
	SortOrder  int    `gorm:"not null;default:0;index:idx_property_images_sort,priority:2" json:"sort_order"`
	IsCover    bool   `gorm:"not null;default:false" json:"is_cover"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PropertyImage) TableName() string { return "property_images" }

// URLBuilder turns a stored path into a client URL.
type URLBuilder struct {
	// PublicBaseURL prefixes files kept on local disk (served under /uploads/).
	PublicBaseURL string
	// StorageBaseURL prefixes provider-relative paths such as "properties/12/a.jpg".
	StorageBaseURL string
}

// URL handles the three physical states of an image: absent, absolute and stored.
func (b URLBuilder) URL(path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return PlaceholderURL
	case strings.HasPrefix(path, "http"):
		return path
	case strings.Contains(path, "/"):
		return strings.TrimRight(b.StorageBaseURL, "/") + "/" + strings.TrimLeft(path, "/")
	default:
		return strings.TrimRight(b.PublicBaseURL, "/") + "/uploads/" + path
	}
}

// FormatSize renders a byte count the way the admin UI shows it.
func FormatSize(size *int64) string {
	if size == nil {
		return "Unknown size"
	}
	n := *size
	switch {
	case n < 1024:
		return fmt.Sprintf("%d B", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(n)/(1024*1024))
	}
}

// Cover picks the flagged cover with the lowest sort order, or the lowest sort order
// image when none is flagged. Nil for an empty slice.
func Cover(images []PropertyImage) *PropertyImage {
	var flagged, first *PropertyImage
	for i := range images {
		img := &images[i]
		if img.IsCover && (flagged == nil || img.SortOrder < flagged.SortOrder) {
			flagged = img
		}
		if first == nil || img.SortOrder < first.SortOrder {
			first = img
		}
	}
	if flagged != nil {
		return flagged
	}
	return first
}
