package cache

import (
	"strconv"
	"strings"
	"time"
)

// TTLs. Listings and derived views expire hourly; single-entity entries
// carry the same bound so a record mutated by another process cannot stay
// stale indefinitely.
const (
	ListingTTL = time.Hour
	EntryTTL   = time.Hour
)

// Entity names the two cached entity types; it doubles as the listing key.
type Entity string

const (
	Authors Entity = "authors"
	Books   Entity = "books"
)

// ListingKey is the "all items" key for an entity type.
func ListingKey(e Entity) string {
	return string(e)
}

// EntryKey is the per-id key, e.g. "author:42".
func EntryKey(e Entity, id string) string {
	return strings.TrimSuffix(string(e), "s") + ":" + id
}

// GenreKey normalizes a genre view key: "genre:<lowercased-trimmed>".
func GenreKey(genre string) string {
	return "genre:" + strings.ToLower(strings.TrimSpace(genre))
}

// PriceKey is the price-range view key: "price:<min>-<max>".
func PriceKey(min, max float64) string {
	return "price:" + strconv.FormatFloat(min, 'f', -1, 64) + "-" + strconv.FormatFloat(max, 'f', -1, 64)
}

// SearchKey normalizes a name-search view key: "search:<lowercased-trimmed>".
func SearchKey(term string) string {
	return "search:" + strings.ToLower(strings.TrimSpace(term))
}
