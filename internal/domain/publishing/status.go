package publishing

import (
	"strings"
	"time"
)

// Status is shared by properties and content pages. HIDDEN doubles as the soft
// delete state: hidden rows keep their translations and can be published again.
type Status string

const (
	Draft     Status = "DRAFT"
	Published Status = "PUBLISHED"
	Hidden    Status = "HIDDEN"
)

func (s Status) IsValid() bool {
	switch s {
	case Draft, Published, Hidden:
		return true
	}
	return false
}

func ParseStatus(raw string) (Status, bool) {
	s := Status(strings.ToUpper(strings.TrimSpace(raw)))
	return s, s.IsValid()
}

// StampPublished returns the published timestamp after a transition to next.
// The first transition into Published sets it to now; it never changes afterwards.
func StampPublished(current *time.Time, next Status, now time.Time) *time.Time {
	if current != nil || next != Published {
		return current
	}
	t := now
	return &t
}
