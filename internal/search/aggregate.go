package search

import (
	"encoding/json"

	"github.com/spotterhq/spotter/internal/stockd"
)

// Section holds the normalized hits for one entity kind. TotalCount is the
// backend's reported total when it sends one, otherwise the item count; it
// is a display aggregate, not a pagination cursor.
type Section struct {
	Items      []stockd.Hit
	TotalCount int
}

// ResultSet maps every entity kind to its section. Every kind is always
// present, even when empty, so consumers never branch on missing keys.
type ResultSet struct {
	Sections map[stockd.Kind]Section
}

// EmptyResultSet returns a result set with all seven sections present and
// empty.
func EmptyResultSet() ResultSet {
	sections := make(map[stockd.Kind]Section, len(stockd.Kinds()))
	for _, kind := range stockd.Kinds() {
		sections[kind] = Section{}
	}
	return ResultSet{Sections: sections}
}

// Section returns the section for kind. Unknown kinds yield an empty
// section.
func (rs ResultSet) Section(kind stockd.Kind) Section {
	return rs.Sections[kind]
}

// Total returns the sum of section totals across all kinds.
func (rs ResultSet) Total() int {
	total := 0
	for _, section := range rs.Sections {
		total += section.TotalCount
	}
	return total
}

// Rows flattens the result set into the logical cross-section row list in
// fixed kind order. Selection and keyboard navigation operate on this list
// regardless of which rows the renderer has materialized.
func (rs ResultSet) Rows() []stockd.Hit {
	var rows []stockd.Hit
	for _, kind := range stockd.Kinds() {
		rows = append(rows, rs.Sections[kind].Items...)
	}
	return rows
}

// sectionEnvelope matches the wrapped payload shapes: {data: [...]} with an
// optional total.
type sectionEnvelope struct {
	Data  []json.RawMessage `json:"data"`
	Total *int              `json:"total"`
}

// Aggregate normalizes a raw search payload into a ResultSet. Three backend
// shapes are tolerated, matched explicitly per kind:
//
//	(a) {"products": {"data": [...], "total": n}, ...}
//	(b) {"products": [...], ...}
//	(c) {"results": {"products": {"data": [...]}, ...}}
//
// Anything unrecognized degrades to empty sections; a malformed payload must
// never crash the search view.
func Aggregate(raw json.RawMessage) ResultSet {
	rs := EmptyResultSet()

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return rs
	}

	// Shape (c): sections nested one level deeper under "results".
	if nested, ok := envelope["results"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(nested, &inner); err == nil && inner != nil {
			envelope = inner
		}
	}

	for _, kind := range stockd.Kinds() {
		sectionRaw, ok := envelope[string(kind)]
		if !ok {
			continue
		}
		items, total, ok := decodeSection(sectionRaw)
		if !ok {
			continue
		}
		hits := stockd.DecodeHits(kind, items)
		if total < len(hits) {
			total = len(hits)
		}
		rs.Sections[kind] = Section{Items: hits, TotalCount: total}
	}
	return rs
}

func decodeSection(raw json.RawMessage) (items []json.RawMessage, total int, ok bool) {
	// Shape (a)/(c): object wrapping the array under "data".
	var wrapped sectionEnvelope
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Data != nil {
		if wrapped.Total != nil && *wrapped.Total >= 0 {
			return wrapped.Data, *wrapped.Total, true
		}
		return wrapped.Data, len(wrapped.Data), true
	}

	// Shape (b): bare array of entities.
	var bare []json.RawMessage
	if err := json.Unmarshal(raw, &bare); err == nil {
		return bare, len(bare), true
	}

	return nil, 0, false
}
