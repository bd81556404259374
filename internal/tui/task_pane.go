package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/agentboard/internal/tasklist"
)

// TaskPaneModel renders the open-tasks list from the reconciler, plus a
// detail viewport for the selected row. The reconciler is owned by the root
// model; this pane only reads it.
type TaskPaneModel struct {
	rec         *tasklist.Reconciler
	showHeader  bool
	selectedIdx int
	viewport    viewport.Model
	width       int
	height      int
	focused     bool
}

// NewTaskPaneModel creates a task pane bound to a reconciler.
func NewTaskPaneModel(rec *tasklist.Reconciler, showHeader bool) TaskPaneModel {
	vp := viewport.New(0, 0)
	return TaskPaneModel{
		rec:        rec,
		showHeader: showHeader,
		viewport:   vp,
	}
}

// Update handles messages for the task pane.
func (m TaskPaneModel) Update(msg tea.Msg) (TaskPaneModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeViewport()

	case tea.KeyMsg:
		if !m.focused {
			break
		}

		visible := m.rec.Visible()
		switch msg.String() {
		case KeyJ, KeyDown:
			if m.selectedIdx < len(visible)-1 {
				m.selectedIdx++
				m.updateViewportContent()
			}
		case KeyK, KeyUp:
			if m.selectedIdx > 0 {
				m.selectedIdx--
				m.updateViewportContent()
			}
		default:
			m.viewport, cmd = m.viewport.Update(msg)
		}
	}

	// The visible list shrinks as exits complete; keep the cursor on it.
	if n := len(m.rec.Visible()); m.selectedIdx >= n && n > 0 {
		m.selectedIdx = n - 1
		m.updateViewportContent()
	}

	return m, cmd
}

// Refresh re-renders the detail viewport after external state changes
// (snapshot applied, filter changed, animation settled).
func (m *TaskPaneModel) Refresh() {
	m.updateViewportContent()
}

// View renders the task pane.
func (m TaskPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	listWidth := 32
	viewportWidth := m.width - listWidth - 4 // borders and padding

	listContent := m.renderTaskList(listWidth)
	detail := lipgloss.NewStyle().
		Width(viewportWidth).
		Height(m.height - 2).
		Render(m.viewport.View())

	content := lipgloss.JoinHorizontal(lipgloss.Top, listContent, detail)

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(content)
}

// renderTaskList renders the list column: one row per visible task with its
// animation state.
func (m TaskPaneModel) renderTaskList(width int) string {
	var b strings.Builder

	title := StyleTitle.Render("Open Tasks")
	b.WriteString(title)
	b.WriteString("\n")
	if m.showHeader {
		filter := m.rec.Filter()
		if filter == "" {
			b.WriteString(StyleHelp.Render("all projects"))
		} else {
			b.WriteString(StyleFilterBadge.Render("project: " + filter))
		}
		b.WriteString("\n")
	}
	b.WriteString(strings.Repeat("=", minInt(width, lipgloss.Width(title))))
	b.WriteString("\n\n")

	visible := m.rec.Visible()
	if len(visible) == 0 {
		b.WriteString(StyleStatusPending.Render("Backlog clear."))
	} else {
		for i, id := range visible {
			b.WriteString(m.renderRow(id, i == m.selectedIdx, width))
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(m.height - 2).
		Render(b.String())
}

// renderRow paints one task row with its entrance/exit treatment.
func (m TaskPaneModel) renderRow(id string, selected bool, width int) string {
	name := id
	if rec, ok := m.rec.Record(id); ok && rec.Title != "" {
		name = rec.Title
	}
	if len(name) > width-6 {
		name = name[:width-9] + "..."
	}

	marker := " "
	switch {
	case m.rec.IsExiting(id):
		marker = "-"
	case m.rec.IsEntering(id):
		marker = "+"
	}

	line := fmt.Sprintf("%s %s", marker, name)
	switch {
	case selected:
		return StyleRowSelected.Render(line)
	case m.rec.IsExiting(id):
		return StyleRowExiting.Render(line)
	case m.rec.IsEntering(id):
		return StyleRowEntering.Render(line)
	default:
		return line
	}
}

// selectedTaskID returns the ID of the currently selected row.
func (m TaskPaneModel) selectedTaskID() string {
	visible := m.rec.Visible()
	if m.selectedIdx >= 0 && m.selectedIdx < len(visible) {
		return visible[m.selectedIdx]
	}
	return ""
}

// updateViewportContent fills the detail viewport for the selected task.
func (m *TaskPaneModel) updateViewportContent() {
	id := m.selectedTaskID()
	if id == "" {
		m.viewport.SetContent("No task selected.")
		return
	}

	rec, ok := m.rec.Record(id)
	if !ok {
		m.viewport.SetContent("No task selected.")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", StyleTitle.Render(rec.Title))
	fmt.Fprintf(&b, "ID:       %s\n", rec.ID)
	fmt.Fprintf(&b, "Project:  %s\n", rec.Project)
	fmt.Fprintf(&b, "Priority: %d\n", rec.Priority)
	if m.rec.IsExiting(id) {
		fmt.Fprintf(&b, "\n%s\n", StyleRowExiting.Render("closing..."))
	} else if m.rec.IsEntering(id) {
		fmt.Fprintf(&b, "\n%s\n", StyleRowEntering.Render("new"))
	}

	m.viewport.SetContent(b.String())
}

// resizeViewport resizes the viewport based on pane dimensions.
func (m *TaskPaneModel) resizeViewport() {
	listWidth := 32
	viewportWidth := m.width - listWidth - 4
	viewportHeight := m.height - 4

	if viewportWidth < 10 {
		viewportWidth = 10
	}
	if viewportHeight < 5 {
		viewportHeight = 5
	}

	m.viewport.Width = viewportWidth
	m.viewport.Height = viewportHeight
}

// SetSize updates the pane dimensions.
func (m *TaskPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.resizeViewport()
}

// SetFocused updates the focus state.
func (m *TaskPaneModel) SetFocused(focused bool) {
	m.focused = focused
}
