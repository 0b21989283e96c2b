package properties

import "strings"

type Type string

const (
	TypeApartment Type = "APARTMENT"
	TypeRoom      Type = "ROOM"
	TypeStudio    Type = "STUDIO"
	TypeHouse     Type = "HOUSE"
)

var Types = []Type{TypeApartment, TypeRoom, TypeStudio, TypeHouse}

func (t Type) IsValid() bool {
	switch t {
	case TypeApartment, TypeRoom, TypeStudio, TypeHouse:
		return true
	}
	return false
}

func ParseType(raw string) (Type, bool) {
	t := Type(strings.ToUpper(strings.TrimSpace(raw)))
	return t, t.IsValid()
}

// Business bounds for listing attributes.
const (
	MinArea         = 10.0
	MaxArea         = 1000.0
	MinRooms        = 0
	MaxRooms        = 20
	MaxImages       = 20
	MaxBatchCopies  = 50
	MaxCodeLength   = 50
	CopyTitleSuffix = " - Copy"
)
