// Package vlist computes windowed virtualization for long fixed-row lists:
// given a scroll position and viewport, only a bounded slice of rows is
// materialized while the rest is represented as reserved scroll space. The
// math is a pure function so it can be tested without mounting any UI.
// Uniform row height is assumed; variable-height rows are out of scope.
package vlist

// DefaultOverscan is the count of extra rows rendered beyond each visible
// edge to mask blanking during fast scrolls.
const DefaultOverscan = 6

// Threshold is the item count above which a section switches from direct
// rendering to windowed rendering.
const Threshold = 60

// Window is the materialized slice of a virtualized list. Rows in
// [Start, End] (inclusive) are rendered at vertical offset OffsetY inside a
// reserved space of TotalHeight, keeping the scrollbar geometry exact
// regardless of how few rows exist.
type Window struct {
	Start       int
	End         int
	OffsetY     int
	TotalHeight int
}

// Count returns the number of materialized rows.
func (w Window) Count() int {
	if w.End < w.Start {
		return 0
	}
	return w.End - w.Start + 1
}

// Compute derives the window for n rows of rowHeight each, scrolled to
// scrollTop inside a viewport of viewportHeight, with overscan extra rows
// beyond each edge:
//
//	start = max(0, floor(scrollTop/rowHeight) - overscan)
//	count = ceil(viewportHeight/rowHeight) + 2*overscan
//	end   = min(n-1, start+count)
//
// It is synchronous and allocation-free so callers can run it on every
// scroll event.
func Compute(scrollTop, rowHeight, viewportHeight, overscan, n int) Window {
	if rowHeight <= 0 || n <= 0 {
		return Window{End: -1}
	}
	if scrollTop < 0 {
		scrollTop = 0
	}
	if overscan < 0 {
		overscan = 0
	}

	start := scrollTop/rowHeight - overscan
	if start < 0 {
		start = 0
	}
	visible := ceilDiv(viewportHeight, rowHeight) + 2*overscan
	end := start + visible
	if end > n-1 {
		end = n - 1
	}

	return Window{
		Start:       start,
		End:         end,
		OffsetY:     start * rowHeight,
		TotalHeight: n * rowHeight,
	}
}

// Engaged reports whether a list of n rows should be windowed at all; small
// lists render directly for lower overhead.
func Engaged(n int) bool {
	return n > Threshold
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
