package search

import (
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"
)

// MinQueryLen is the minimum number of runes a query must have before it is
// worth a network round trip. Shorter input produces a clear intent instead.
const MinQueryLen = 2

// Intent is one settled search request. Intents are immutable; a newer
// keystroke burst supersedes an intent by issuing a new one, never by
// mutating it.
type Intent struct {
	Raw        string
	Normalized string
	PerPage    int
	Filters    map[string]string
	IssuedAt   time.Time
}

// NewIntent builds an intent from raw input. Normalization lowers the text
// and collapses runs of whitespace so that visually identical queries share
// one cache key.
func NewIntent(raw string, perPage int, filters map[string]string, issuedAt time.Time) Intent {
	return Intent{
		Raw:        raw,
		Normalized: Normalize(raw),
		PerPage:    perPage,
		Filters:    filters,
		IssuedAt:   issuedAt,
	}
}

// IsClear reports whether the intent should clear results instead of
// searching.
func (it Intent) IsClear() bool {
	return utf8.RuneCountInString(it.Normalized) < MinQueryLen
}

// Key returns the deterministic cache key for the intent: the normalized
// text plus the serialized parameters. The key never surfaces in the UI.
func (it Intent) Key() string {
	var b strings.Builder
	b.WriteString(it.Normalized)
	b.WriteString("|pp=")
	b.WriteString(strconv.Itoa(it.PerPage))
	if len(it.Filters) > 0 {
		keys := make([]string, 0, len(it.Filters))
		for k := range it.Filters {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			b.WriteString("|")
			b.WriteString(k)
			b.WriteString("=")
			b.WriteString(it.Filters[k])
		}
	}
	return b.String()
}

// Normalize canonicalizes query text: trimmed, lowercased, inner whitespace
// collapsed to single spaces.
func Normalize(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))
	return strings.Join(fields, " ")
}
