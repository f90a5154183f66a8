package ui

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderDetail renders the detail pane for the selected row from the
// prefetched entity payload.
func (m Model) renderDetail(width, height int) string {
	styles := m.theme.Styles()

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		Padding(0, 1).
		Width(width - 2).
		Height(height - 2)

	key := m.snap.SelectedKey
	if key == "" {
		return border.Render(styles.FaintText.Render("Select a row to inspect it"))
	}

	kind, id, ok := m.engine.Selected()
	if !ok {
		return border.Render(styles.FaintText.Render("Select a row to inspect it"))
	}

	title := styles.KindStyle(kind).Render(kind.Label()) +
		styles.MutedText.Render(fmt.Sprintf("  #%d", id))

	raw, have := m.details[key]
	if !have {
		body := styles.MutedText.Render("fetching detail...")
		if m.prefetcher == nil {
			body = styles.FaintText.Render("detail unavailable")
		}
		return border.Render(title + "\n\n" + body)
	}

	body := formatEntity(raw, width-6, height-6, styles)
	return border.Render(title + "\n\n" + body)
}

// formatEntity renders an entity payload as aligned field lines. Payloads
// are treated generically; nested values collapse to compact JSON.
func formatEntity(raw json.RawMessage, width, maxLines int, styles Styles) string {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || len(fields) == 0 {
		return styles.FaintText.Render("detail unavailable")
	}

	keys := make([]string, 0, len(fields))
	keyWidth := 0
	for k := range fields {
		keys = append(keys, k)
		if len(k) > keyWidth {
			keyWidth = len(k)
		}
	}
	sort.Strings(keys)
	if keyWidth > 20 {
		keyWidth = 20
	}

	var b strings.Builder
	count := 0
	for _, k := range keys {
		if maxLines > 0 && count >= maxLines {
			b.WriteString(styles.FaintText.Render(fmt.Sprintf("… %d more", len(keys)-count)))
			break
		}
		label := truncate(k, keyWidth)
		value := formatValue(fields[k])
		b.WriteString(styles.MutedText.Render(fmt.Sprintf("%-*s ", keyWidth, label)))
		b.WriteString(styles.Text.Render(truncate(value, width-keyWidth-1)))
		b.WriteString("\n")
		count++
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatValue renders one JSON value for display.
func formatValue(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
