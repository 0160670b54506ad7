package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/ceresdoc/cereslint/internal/document"
)

// StyleManager encapsulates the browser and batch-output styles
type StyleManager struct {
	ErrorSev  lipgloss.Style
	NoticeSev lipgloss.Style
	File      lipgloss.Style
	LineNo    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Dim       lipgloss.Style
	Header    lipgloss.Style
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		ErrorSev:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
		NoticeSev: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		File:      lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		LineNo:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Cursor:    lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Selected:  lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Dim:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Header:    lipgloss.NewStyle().Bold(true),
	}
}

// severity returns the style for a severity
func (s *StyleManager) severity(sev document.Severity) lipgloss.Style {
	if sev == document.Error {
		return s.ErrorSev
	}
	return s.NoticeSev
}

// RenderDiagnostic formats one diagnostic line with severity coloring
func (s *StyleManager) RenderDiagnostic(d document.Diagnostic) string {
	return fmt.Sprintf("%s: %s - %s",
		s.LineNo.Render(fmt.Sprintf("%d", d.Line)),
		s.severity(d.Severity).Render(string(d.Severity)),
		d.Message)
}

// Global style manager instance
var styles = DefaultStyles()

// RenderDiagnostic formats a diagnostic with the global styles
func RenderDiagnostic(d document.Diagnostic) string {
	return styles.RenderDiagnostic(d)
}
