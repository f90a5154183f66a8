package search

import (
	"strconv"
	"strings"

	"github.com/spotterhq/spotter/internal/stockd"
)

// ParseRowKey splits a "{section}:{id}" row key back into its parts.
func ParseRowKey(key string) (stockd.Kind, int64, bool) {
	idx := strings.LastIndex(key, ":")
	if idx <= 0 || idx == len(key)-1 {
		return "", 0, false
	}
	kind := stockd.Kind(key[:idx])
	if !kind.Valid() {
		return "", 0, false
	}
	id, err := strconv.ParseInt(key[idx+1:], 10, 64)
	if err != nil || id <= 0 {
		return "", 0, false
	}
	return kind, id, true
}

// stepRowKey moves the selection by delta over the full logical row list.
// An empty or vanished current key snaps to the first row (moving down) or
// the last row (moving up). Movement clamps at the ends.
func stepRowKey(rows []stockd.Hit, current string, delta int) string {
	if len(rows) == 0 {
		return ""
	}
	at := -1
	for i, row := range rows {
		if row.RowKey() == current {
			at = i
			break
		}
	}
	if at < 0 {
		if delta >= 0 {
			return rows[0].RowKey()
		}
		return rows[len(rows)-1].RowKey()
	}
	at += delta
	if at < 0 {
		at = 0
	}
	if at >= len(rows) {
		at = len(rows) - 1
	}
	return rows[at].RowKey()
}

// rowIndex returns the logical index of key in rows, or -1.
func rowIndex(rows []stockd.Hit, key string) int {
	for i, row := range rows {
		if row.RowKey() == key {
			return i
		}
	}
	return -1
}
