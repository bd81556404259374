package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/agentboard/internal/events"
	"github.com/aristath/agentboard/internal/tasklist"
)

// PaneID identifies which pane is focused.
type PaneID int

const (
	PaneTasks PaneID = iota
	PaneAgents
	PaneSummary
)

// animTickMsg drives repaints while entrance/exit animations are live.
type animTickMsg struct{}

// Model is the root Bubble Tea model for the dashboard.
type Model struct {
	rec         *tasklist.Reconciler
	taskPane    TaskPaneModel
	agentPane   AgentPaneModel
	summaryPane SummaryPaneModel
	focusedPane PaneID
	eventSub    <-chan events.Event
	showHeader  bool
	animTicking bool
	width       int
	height      int
	quitting    bool
}

// New creates the root model. The reconciler is owned by the caller so it
// can be torn down (timers cancelled) after the program exits; apply the
// default filter before handing it in.
func New(bus *events.Bus, rec *tasklist.Reconciler, showHeader bool) Model {
	return Model{
		rec:         rec,
		taskPane:    NewTaskPaneModel(rec, showHeader),
		agentPane:   NewAgentPaneModel(),
		summaryPane: NewSummaryPaneModel(),
		focusedPane: PaneTasks,
		eventSub:    bus.SubscribeAll(256),
		showHeader:  showHeader,
	}
}

// Init initializes the model and returns the initial command.
func (m Model) Init() tea.Cmd {
	return waitForEvent(m.eventSub)
}

// waitForEvent returns a command that waits for the next bus event.
func waitForEvent(sub <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-sub
		if !ok {
			return nil // bus closed
		}
		return event
	}
}

// animTick schedules the next repaint while the list is animating.
func animTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return animTickMsg{}
	})
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case KeyQuit, KeyCtrlC:
			m.quitting = true
			return m, tea.Quit

		case KeyTab:
			m.focusedPane = (m.focusedPane + 1) % 3
			m.updateFocusStates()

		case KeyShiftTab:
			m.focusedPane = (m.focusedPane + 2) % 3
			m.updateFocusStates()

		case KeyPane1:
			m.focusedPane = PaneTasks
			m.updateFocusStates()

		case KeyPane2:
			m.focusedPane = PaneAgents
			m.updateFocusStates()

		case KeyPane3:
			m.focusedPane = PaneSummary
			m.updateFocusStates()

		case KeyFilter:
			if m.showHeader {
				m.rec.SetFilter(m.nextFilter())
				m.afterListChange(&cmds)
			}

		case KeyUnfilter:
			if m.showHeader {
				m.rec.SetFilter("")
				m.afterListChange(&cmds)
			}

		default:
			if m.focusedPane == PaneTasks {
				var cmd tea.Cmd
				m.taskPane, cmd = m.taskPane.Update(msg)
				cmds = append(cmds, cmd)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.computeLayout()

	case events.TasksSnapshotEvent:
		// Data diff first; any pending filter change was already applied
		// synchronously by the keypress that caused it.
		m.rec.ApplySnapshot(msg.Records)
		m.afterListChange(&cmds)
		cmds = append(cmds, waitForEvent(m.eventSub))

	case events.AgentStartedEvent, events.AgentOutputEvent, events.AgentDoneEvent:
		var cmd tea.Cmd
		m.agentPane, cmd = m.agentPane.Update(msg)
		cmds = append(cmds, cmd)
		cmds = append(cmds, waitForEvent(m.eventSub))

	case animTickMsg:
		m.taskPane.Refresh()
		m.summaryPane.SetCounts(m.deriveCounts())
		if m.rec.Animating() {
			cmds = append(cmds, animTick())
		} else {
			m.animTicking = false
		}
	}

	return m, tea.Batch(cmds...)
}

// afterListChange refreshes derived views and keeps the animation repaint
// loop running while flags are live.
func (m *Model) afterListChange(cmds *[]tea.Cmd) {
	m.taskPane.Refresh()
	m.summaryPane.SetCounts(m.deriveCounts())
	if m.rec.Animating() && !m.animTicking {
		m.animTicking = true
		*cmds = append(*cmds, animTick())
	}
}

// nextFilter cycles all -> first project -> ... -> last project -> all.
func (m Model) nextFilter() string {
	projects := m.rec.Projects()
	if len(projects) == 0 {
		return ""
	}

	current := m.rec.Filter()
	if current == "" {
		return projects[0]
	}
	for i, p := range projects {
		if p == current {
			if i+1 < len(projects) {
				return projects[i+1]
			}
			return ""
		}
	}
	return projects[0]
}

// deriveCounts summarizes the reconciler for the summary pane.
func (m Model) deriveCounts() ListCounts {
	visible := make(map[string]bool)
	for _, id := range m.rec.Visible() {
		visible[id] = true
	}

	var c ListCounts
	for _, id := range m.rec.Order() {
		c.Tracked++
		switch {
		case m.rec.IsExiting(id):
			c.Exiting++
		case m.rec.IsEntering(id):
			c.Entering++
		case !visible[id]:
			c.Hidden++
		default:
			c.Settled++
		}
	}
	return c
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	leftPane := m.taskPane.View()
	rightTop := m.agentPane.View()
	rightBottom := m.summaryPane.View()

	rightPane := lipgloss.JoinVertical(lipgloss.Left, rightTop, rightBottom)
	mainContent := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	return lipgloss.JoinVertical(lipgloss.Left, mainContent, HelpView())
}

// computeLayout calculates pane dimensions and updates all child models.
func (m *Model) computeLayout() {
	leftWidth := (m.width * 60) / 100
	rightWidth := m.width - leftWidth
	availableHeight := m.height - 1 // reserve 1 line for help bar
	rightTopHeight := (availableHeight * 60) / 100
	rightBottomHeight := availableHeight - rightTopHeight

	m.taskPane.SetSize(leftWidth, availableHeight)
	m.agentPane.SetSize(rightWidth, rightTopHeight)
	m.summaryPane.SetSize(rightWidth, rightBottomHeight)

	m.updateFocusStates()
}

// updateFocusStates updates the focus state of all panes.
func (m *Model) updateFocusStates() {
	m.taskPane.SetFocused(m.focusedPane == PaneTasks)
	m.agentPane.SetFocused(m.focusedPane == PaneAgents)
	m.summaryPane.SetFocused(m.focusedPane == PaneSummary)
}
