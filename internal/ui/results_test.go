package ui

import (
	"fmt"
	"strings"
	"testing"

	"github.com/spotterhq/spotter/internal/search"
	"github.com/spotterhq/spotter/internal/stockd"
)

func resultSetWith(counts map[stockd.Kind]int) search.ResultSet {
	rs := search.EmptyResultSet()
	for kind, n := range counts {
		section := rs.Sections[kind]
		for i := 1; i <= n; i++ {
			section.Items = append(section.Items, stockd.Hit{
				Kind:  kind,
				ID:    int64(i),
				Title: fmt.Sprintf("%s %d", kind.Label(), i),
			})
		}
		section.TotalCount = n
		rs.Sections[kind] = section
	}
	return rs
}

func TestBuildLines_FlattensInKindOrderWithHeaders(t *testing.T) {
	rs := resultSetWith(map[stockd.Kind]int{
		stockd.KindSales:    2,
		stockd.KindProducts: 1,
	})

	lines := buildLines(rs)
	if len(lines) != 5 {
		t.Fatalf("len(lines) = %d, want 5 (2 headers + 3 hits)", len(lines))
	}
	if !lines[0].header || lines[0].kind != stockd.KindProducts {
		t.Fatalf("lines[0] = %+v, want products header", lines[0])
	}
	if lines[1].header || lines[1].hit.RowKey() != "products:1" {
		t.Fatalf("lines[1] = %+v, want products:1", lines[1])
	}
	if !lines[2].header || lines[2].kind != stockd.KindSales {
		t.Fatalf("lines[2] = %+v, want sales header", lines[2])
	}
}

func TestBuildLines_SkipsEmptySections(t *testing.T) {
	lines := buildLines(search.EmptyResultSet())
	if len(lines) != 0 {
		t.Fatalf("len(lines) = %d, want 0 for an empty result set", len(lines))
	}
}

func TestSelectedLine(t *testing.T) {
	rs := resultSetWith(map[stockd.Kind]int{stockd.KindProducts: 3})
	lines := buildLines(rs)

	if got := selectedLine(lines, "products:2"); got != 2 {
		t.Fatalf("selectedLine = %d, want 2 (header at 0)", got)
	}
	if got := selectedLine(lines, ""); got != -1 {
		t.Fatalf("selectedLine with no key = %d, want -1", got)
	}
	if got := selectedLine(lines, "sales:9"); got != -1 {
		t.Fatalf("selectedLine with vanished key = %d, want -1", got)
	}
}

func TestEnsureSelectionVisible_ScrollsToSelection(t *testing.T) {
	m := New(Options{})
	m.width, m.height, m.ready = 80, 13, true // results area of 10 lines

	m.snap.Results = resultSetWith(map[stockd.Kind]int{stockd.KindProducts: 100})
	m.snap.SelectedKey = "products:50" // line index 50 (header at 0)

	m.ensureSelectionVisible()
	if m.scrollTop != 50-10+1 {
		t.Fatalf("scrollTop = %d, want %d", m.scrollTop, 50-10+1)
	}

	// Moving back above the window scrolls up to the selection.
	m.snap.SelectedKey = "products:5"
	m.ensureSelectionVisible()
	if m.scrollTop != 5 {
		t.Fatalf("scrollTop = %d, want 5", m.scrollTop)
	}
}

func TestRenderResults_WindowsLongLists(t *testing.T) {
	m := New(Options{})
	m.width, m.height, m.ready = 80, 13, true
	m.snap.Results = resultSetWith(map[stockd.Kind]int{stockd.KindProducts: 500})
	m.snap.SelectedKey = "products:250"
	m.ensureSelectionVisible()

	out := m.renderResults(80, m.resultsHeight())
	lineCount := strings.Count(out, "\n") + 1
	if lineCount != m.resultsHeight() {
		t.Fatalf("rendered %d lines, want %d", lineCount, m.resultsHeight())
	}
	if !strings.Contains(out, "Products 250") {
		t.Fatalf("selected row missing from viewport:\n%s", out)
	}
	if strings.Contains(out, "Products 1 ") || strings.Contains(out, "Products 500") {
		t.Fatalf("rows far outside the window leaked into the viewport")
	}
}

func TestRenderResults_EmptyStates(t *testing.T) {
	m := New(Options{})
	m.width, m.height, m.ready = 80, 13, true

	out := m.renderResults(80, m.resultsHeight())
	if !strings.Contains(out, "at least 2 characters") {
		t.Fatalf("blank query hint missing:\n%s", out)
	}

	m.snap.Query = "zz plomp"
	out = m.renderResults(80, m.resultsHeight())
	if !strings.Contains(out, "No matches") {
		t.Fatalf("no-matches hint missing:\n%s", out)
	}

	m.snap.Err = "api /api/search returned status 500"
	out = m.renderResults(80, m.resultsHeight())
	if !strings.Contains(out, "retry") {
		t.Fatalf("error hint missing:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello", 10); got != "hello" {
		t.Fatalf("truncate short = %q", got)
	}
	if got := truncate("hello world", 8); got != "hello w…" {
		t.Fatalf("truncate long = %q", got)
	}
	if got := truncate("hello", 0); got != "" {
		t.Fatalf("truncate zero = %q", got)
	}
}

func TestClassifyConnectionError(t *testing.T) {
	cases := map[string]string{
		"dial tcp: connection refused":      "OFFLINE",
		"dial tcp: no such host":            "HOST NOT FOUND",
		"context deadline exceeded":         "TIMEOUT",
		"api returned status 500":           "ERROR",
		"net/http: timeout awaiting header": "TIMEOUT",
	}
	for msg, want := range cases {
		if got := classifyConnectionError(msg); got != want {
			t.Fatalf("classifyConnectionError(%q) = %q, want %q", msg, got, want)
		}
	}
}
