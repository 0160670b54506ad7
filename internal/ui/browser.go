// Package ui provides the interactive diagnostics browser.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ceresdoc/cereslint/internal/document"
)

// sevFilter selects which severities the browser shows
type sevFilter int

const (
	showAll sevFilter = iota
	showErrors
	showNotices
)

func (f sevFilter) label() string {
	switch f {
	case showErrors:
		return "errors"
	case showNotices:
		return "notices"
	default:
		return "all"
	}
}

func (f sevFilter) match(sev document.Severity) bool {
	switch f {
	case showErrors:
		return sev == document.Error
	case showNotices:
		return sev == document.Notice
	default:
		return true
	}
}

// browserModel is the Bubble Tea model for browsing a finished run's
// findings: type to filter, tab to cycle severities
type browserModel struct {
	width  int
	height int

	textInput textinput.Model
	findings  []document.Finding
	filtered  []document.Finding
	filter    sevFilter
	cursor    int
	offset    int // viewport scroll offset
	lastQuery string
}

func newBrowserModel(findings []document.Finding) browserModel {
	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = 50

	m := browserModel{
		textInput: ti,
		findings:  findings,
		height:    24,
		width:     80,
	}
	m.applyFilter()
	return m
}

// applyFilter recomputes the visible findings from the query and the
// severity filter
func (m *browserModel) applyFilter() {
	query := strings.ToLower(m.textInput.Value())
	words := strings.Fields(query)

	m.filtered = m.filtered[:0]
	for _, f := range m.findings {
		if !m.filter.match(f.Diagnostic.Severity) {
			continue
		}
		if matchesQuery(f, words) {
			m.filtered = append(m.filtered, f)
		}
	}

	if m.cursor >= len(m.filtered) {
		m.cursor = len(m.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.offset = 0
}

// matchesQuery checks if the finding matches all search words.
// Case-insensitive substring matching, smaller fields first.
func matchesQuery(f document.Finding, words []string) bool {
	for _, word := range words {
		if strings.Contains(strings.ToLower(f.File), word) {
			continue
		}
		if strings.Contains(strings.ToLower(string(f.Diagnostic.Severity)), word) {
			continue
		}
		if strings.Contains(strings.ToLower(f.Diagnostic.Message), word) {
			continue
		}
		return false
	}
	return true
}

func (m browserModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc", "enter", "q":
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.listHeight() {
					m.offset = m.cursor - m.listHeight() + 1
				}
			}
			return m, nil
		case "tab":
			m.filter = (m.filter + 1) % 3
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	if m.textInput.Value() != m.lastQuery {
		m.lastQuery = m.textInput.Value()
		m.applyFilter()
	}
	return m, cmd
}

// listHeight is the number of finding rows that fit in the viewport
func (m browserModel) listHeight() int {
	h := m.height - 4 // input, header, footer, spacing
	if h < 1 {
		h = 1
	}
	return h
}

func (m browserModel) View() string {
	var b strings.Builder

	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(styles.Header.Render(fmt.Sprintf("%d findings (%s)", len(m.filtered), m.filter.label())))
	b.WriteString("\n")

	end := m.offset + m.listHeight()
	if end > len(m.filtered) {
		end = len(m.filtered)
	}

	for i := m.offset; i < end; i++ {
		f := m.filtered[i]
		row := fmt.Sprintf("%s:%d %s %s",
			styles.File.Render(f.File),
			f.Diagnostic.Line,
			styles.severity(f.Diagnostic.Severity).Render(string(f.Diagnostic.Severity)),
			f.Diagnostic.Message)
		if i == m.cursor {
			b.WriteString(styles.Cursor.Render("> "))
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString("  ")
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.Dim.Render("tab: severity filter  enter/esc: quit"))
	return b.String()
}

// Browse opens the interactive browser over a finished run's findings
func Browse(findings []document.Finding) error {
	if len(findings) == 0 {
		fmt.Println("no findings to browse")
		return nil
	}
	p := tea.NewProgram(newBrowserModel(findings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
