package validate

import (
	"strings"
	"time"
)

// Accepted textual date layouts. Author birth dates additionally allow the
// ISO form; publication dates are US-style only.
var (
	birthDateLayouts       = []string{"2006-01-02", "01/02/2006", "1/2/2006", "1/02/2006", "01/2/2006"}
	publicationDateLayouts = []string{"01/02/2006", "1/2/2006", "1/02/2006", "01/2/2006"}
)

func parseAny(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseBirthDate parses an author date_of_birth in any accepted layout.
func ParseBirthDate(s string) (time.Time, bool) {
	return parseAny(s, birthDateLayouts)
}

// ParsePublicationDate parses a book publicationDate in any accepted layout.
func ParsePublicationDate(s string) (time.Time, bool) {
	return parseAny(s, publicationDateLayouts)
}

// BirthDate reports whether s is a well-formed author birth date.
func BirthDate(s string) bool {
	_, ok := ParseBirthDate(s)
	return ok
}

// PublicationDate reports whether s is a well-formed publication date.
func PublicationDate(s string) bool {
	_, ok := ParsePublicationDate(s)
	return ok
}
