package amenities

import (
	"rental-app/internal/domain/locale"
	"rental-app/internal/domain/properties"
)

type AmenityResponse struct {
	ID              uint              `json:"id"`
	Key             string            `json:"key"`
	Label           string            `json:"label"`
	Translations    map[string]string `json:"translations"`
	IsRoomAmenity   bool              `json:"isRoomAmenity"`
	IsCommonAmenity bool              `json:"isCommonAmenity"`
}

// ToResponse resolves the label for l: l, then vi, then the raw key.
func ToResponse(a properties.Amenity, l locale.Locale) AmenityResponse {
	labels := a.Labels()
	tr := make(map[string]string, len(labels))
	for loc, label := range labels {
		if label != "" {
			tr[loc.String()] = label
		}
	}
	return AmenityResponse{
		ID:              a.ID,
		Key:             a.Key,
		Label:           locale.Resolve(labels, l, a.Key),
		Translations:    tr,
		IsRoomAmenity:   a.IsRoomAmenity(),
		IsCommonAmenity: a.IsCommonAmenity(),
	}
}

func ToResponses(list []properties.Amenity, l locale.Locale) []AmenityResponse {
	out := make([]AmenityResponse, 0, len(list))
	for _, a := range list {
		out = append(out, ToResponse(a, l))
	}
	return out
}
