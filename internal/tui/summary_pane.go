package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ListCounts summarizes the reconciler's state for the summary pane.
type ListCounts struct {
	Tracked  int // everything in the order
	Settled  int // visible, not animating
	Entering int
	Exiting  int
	Hidden   int // tracked but failing the filter
}

// SummaryPaneModel shows backlog counts and animation activity.
type SummaryPaneModel struct {
	counts  ListCounts
	width   int
	height  int
	focused bool
}

// NewSummaryPaneModel creates a new summary pane model.
func NewSummaryPaneModel() SummaryPaneModel {
	return SummaryPaneModel{}
}

// SetCounts updates the displayed counts. The root model derives them from
// the reconciler after every snapshot, filter change, and animation tick.
func (m *SummaryPaneModel) SetCounts(c ListCounts) {
	m.counts = c
}

// Update handles messages for the summary pane.
func (m SummaryPaneModel) Update(msg tea.Msg) (SummaryPaneModel, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
	}
	return m, nil
}

// View renders the summary pane.
func (m SummaryPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := StyleTitle.Render("Backlog")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)))
	b.WriteString("\n\n")

	c := m.counts
	b.WriteString(fmt.Sprintf("Tracked:  %d\n", c.Tracked))
	b.WriteString(fmt.Sprintf("Settled:  %s\n", StyleStatusComplete.Render(fmt.Sprintf("%d", c.Settled))))
	b.WriteString(fmt.Sprintf("Entering: %s\n", StyleRowEntering.Render(fmt.Sprintf("%d", c.Entering))))
	b.WriteString(fmt.Sprintf("Exiting:  %s\n", StyleStatusFailed.Render(fmt.Sprintf("%d", c.Exiting))))
	b.WriteString(fmt.Sprintf("Hidden:   %s\n", StyleStatusPending.Render(fmt.Sprintf("%d", c.Hidden))))

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(b.String())
}

// SetSize updates the pane dimensions.
func (m *SummaryPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused updates the focus state.
func (m *SummaryPaneModel) SetFocused(focused bool) {
	m.focused = focused
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
