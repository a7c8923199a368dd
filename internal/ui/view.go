package ui

import (
	"fmt"
	"strings"
	"time"

	uistate "github.com/atomicstack/tmux-popup-select/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const footerHint = "↑/↓ move  tab switch  enter select  esc clear/quit  ctrl+c quit"

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]styledLine, 0, 16)
	if header := m.header(); header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, m.selectLines(m.filter, m.focus == focusFilter)...)
	lines = append(lines, styledLine{})
	lines = append(lines, m.selectLines(m.filtered, m.focus == focusFiltered)...)
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerHint, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottom := applyWidth([]styledLine{statusLine}, m.width)
	out := renderLines(append(lines, bottom...))
	prompt := m.queryPrompt()
	if m.width > 0 && lipgloss.Width(prompt) > m.width {
		prompt = truncate.StringWithTail(prompt, uint(m.width-1), "…")
	}
	return out + "\n" + prompt
}

func (m *Model) header() string {
	parts := []string{m.filter.Title, m.filtered.Title}
	if opt, ok := m.filter.Current(); ok && opt.Value != "" {
		parts[0] = m.filter.Title + ": " + opt.Label
	}
	return strings.Join(parts, headerSeparator)
}

func (m *Model) selectLines(s *uistate.Select, focused bool) []styledLine {
	titleStyle := styles.Title
	if focused {
		titleStyle = styles.FocusedTitle
	}
	lines := []styledLine{{text: s.Title, style: titleStyle}}
	m.syncViewport(s)
	if len(s.Items) == 0 {
		msg := "(no options)"
		if s.Query != "" {
			msg = fmt.Sprintf("No matches for %q", s.Query)
		}
		return append(lines, styledLine{text: msg, style: styles.Info})
	}
	start, end := 0, len(s.Items)
	if maxItems := m.maxVisibleFor(s); maxItems > 0 && len(s.Items) > maxItems {
		start = s.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(s.Items) {
			start = len(s.Items) - maxItems
		}
		end = start + maxItems
	}
	for idx := start; idx < end; idx++ {
		lines = append(lines, m.buildItemLine(s.Items[idx].Label, idx, s, focused))
	}
	return lines
}

// buildItemLine renders one option. The current option of the focused select
// is highlighted across the full width.
func (m *Model) buildItemLine(label string, idx int, s *uistate.Select, focused bool) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == s.Cursor {
		if focused {
			indicatorStyle = styles.SelectedItemIndicator
			lineStyle = styles.SelectedItem
		} else {
			indicatorStyle = styles.CurrentItemIndicator
			lineStyle = styles.CurrentItem
		}
	}
	fullText := indicator + " " + label
	if m.width > 0 && idx == s.Cursor && focused {
		if pad := m.width - runewidth.StringWidth(fullText); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewports()
	return nil
}

// maxVisibleFor returns how many options of s fit on screen, or -1 when the
// height is unknown. The filter gets up to half of the rows and the filtered
// select takes the rest.
func (m *Model) maxVisibleFor(s *uistate.Select) int {
	if m.height <= 0 {
		return -1
	}
	used := 2 // status line + query prompt
	used += 1 // header
	used += 3 // two titles and the separator between the selects
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 2 {
		return 1
	}
	filterRows := remain / 2
	if n := len(m.filter.Items); n > 0 && n < filterRows {
		filterRows = n
	}
	if filterRows < 1 {
		filterRows = 1
	}
	if s == m.filter {
		return filterRows
	}
	if rows := remain - filterRows; rows > 0 {
		return rows
	}
	return 1
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		line.text = truncateText(line.text, width)
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 || runewidth.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return runewidth.Truncate(text, 1, "")
	}
	return runewidth.Truncate(text, width, "…")
}
