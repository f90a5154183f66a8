package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spotterhq/spotter/internal/search"
	"github.com/spotterhq/spotter/internal/stockd"
	"github.com/spotterhq/spotter/internal/vlist"
)

// line is one display row of the result list: either a section header or a
// hit. The flattened line list is what the window math operates on.
type line struct {
	header bool
	kind   stockd.Kind
	hit    stockd.Hit
	shown  int
	total  int
}

// buildLines flattens a result set into display lines in canonical kind
// order. Empty sections contribute nothing; the section summaries in the
// header already account for them.
func buildLines(rs search.ResultSet) []line {
	var lines []line
	for _, kind := range stockd.Kinds() {
		section := rs.Section(kind)
		if len(section.Items) == 0 {
			continue
		}
		lines = append(lines, line{
			header: true,
			kind:   kind,
			shown:  len(section.Items),
			total:  section.TotalCount,
		})
		for _, hit := range section.Items {
			lines = append(lines, line{kind: kind, hit: hit})
		}
	}
	return lines
}

// selectedLine returns the index of the selected hit in the line list, or -1.
func selectedLine(lines []line, selectedKey string) int {
	if selectedKey == "" {
		return -1
	}
	for i, l := range lines {
		if !l.header && l.hit.RowKey() == selectedKey {
			return i
		}
	}
	return -1
}

// ensureSelectionVisible adjusts scrollTop so the selected line stays inside
// the results area.
func (m *Model) ensureSelectionVisible() {
	lines := buildLines(m.snap.Results)
	idx := selectedLine(lines, m.snap.SelectedKey)
	if idx < 0 {
		m.scrollTop = 0
		return
	}
	height := m.resultsHeight()
	if idx < m.scrollTop {
		m.scrollTop = idx
	}
	if idx >= m.scrollTop+height {
		m.scrollTop = idx - height + 1
	}
	m.clampScrollTo(len(lines))
}

func (m *Model) clampScroll() {
	m.clampScrollTo(len(buildLines(m.snap.Results)))
}

func (m *Model) clampScrollTo(n int) {
	max := n - m.resultsHeight()
	if max < 0 {
		max = 0
	}
	if m.scrollTop > max {
		m.scrollTop = max
	}
	if m.scrollTop < 0 {
		m.scrollTop = 0
	}
}

// renderContent renders the results area, with the detail pane alongside on
// wide terminals.
func (m Model) renderContent() string {
	height := m.resultsHeight()

	listWidth := m.width
	showDetail := m.width >= detailPaneMinWidth
	var detailWidth int
	if showDetail {
		detailWidth = m.width * 2 / 5
		listWidth = m.width - detailWidth
	}

	list := m.renderResults(listWidth, height)
	if !showDetail {
		return list
	}
	detail := m.renderDetail(detailWidth, height)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, detail)
}

// renderResults renders the visible slice of the flattened line list. Above
// the windowing threshold only the computed window of lines is styled and
// materialized; the viewport slice is then cut out of that window.
func (m Model) renderResults(width, height int) string {
	styles := m.theme.Styles()
	lines := buildLines(m.snap.Results)

	if len(lines) == 0 {
		return m.renderEmptyState(width, height, styles)
	}

	selected := selectedLine(lines, m.snap.SelectedKey)

	start, end := 0, len(lines)-1
	if vlist.Engaged(len(lines)) {
		w := vlist.Compute(m.scrollTop, 1, height, vlist.DefaultOverscan, len(lines))
		start, end = w.Start, w.End
	}

	rendered := make([]string, 0, end-start+1)
	for i := start; i <= end; i++ {
		rendered = append(rendered, m.renderLine(lines[i], i == selected, width, styles))
	}

	// Cut the viewport slice out of the materialized window.
	lo := m.scrollTop - start
	if lo < 0 {
		lo = 0
	}
	hi := lo + height
	if hi > len(rendered) {
		hi = len(rendered)
	}
	visible := rendered[lo:hi]

	out := strings.Join(visible, "\n")
	if len(visible) < height {
		out += strings.Repeat("\n", height-len(visible))
	}
	return out
}

// renderLine renders one section header or hit row.
func (m Model) renderLine(l line, selected bool, width int, styles Styles) string {
	if l.header {
		label := fmt.Sprintf("%s (%d of %d)", l.kind.Label(), l.shown, l.total)
		return styles.KindStyle(l.kind).Render(label)
	}

	title := l.hit.Title
	detail := l.hit.Detail

	text := "  " + title
	if detail != "" {
		text += "  " + detail
	}
	text = truncate(text, width-1)

	if selected {
		return styles.Selected.Width(width).Render(text)
	}

	// Title bright, detail muted.
	row := styles.Text.Render("  " + truncate(title, width-3))
	if detail != "" {
		remaining := width - 1 - lipgloss.Width(row)
		if remaining > 4 {
			row += styles.MutedText.Render("  " + truncate(detail, remaining-2))
		}
	}
	return row
}

// renderEmptyState fills the results area with a hint appropriate to the
// current engine state.
func (m Model) renderEmptyState(width, height int, styles Styles) string {
	var hint string
	switch {
	case m.snap.Loading:
		hint = m.spin.View() + " searching..."
	case m.snap.Err != "":
		hint = styles.DangerText.Render("search failed") + styles.MutedText.Render("  press r to retry")
	case strings.TrimSpace(m.snap.Query) == "":
		hint = styles.FaintText.Render("Type at least 2 characters to search")
	default:
		hint = styles.MutedText.Render("No matches for ") + styles.Text.Render(strings.TrimSpace(m.snap.Query))
	}

	out := "\n " + hint
	pad := height - 2
	if pad > 0 {
		out += strings.Repeat("\n", pad)
	}
	return lipgloss.NewStyle().Width(width).Render(out)
}

// truncate truncates a string to max display runes with ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
