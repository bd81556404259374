package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aristath/agentboard/internal/events"
)

// AgentState tracks one agent seen on the bus.
type AgentState struct {
	AgentID   string
	TaskID    string
	Role      string
	Status    string // "running", "completed", "failed"
	LastLine  string
	StartTime time.Time
	Duration  time.Duration
}

// AgentPaneModel shows live agent activity: which agent holds which task and
// what it said last.
type AgentPaneModel struct {
	agents     map[string]*AgentState // agentID -> state
	agentOrder []string               // insertion order for display
	width      int
	height     int
	focused    bool
}

// NewAgentPaneModel creates a new agent pane model.
func NewAgentPaneModel() AgentPaneModel {
	return AgentPaneModel{
		agents: make(map[string]*AgentState),
	}
}

// Update handles messages for the agent pane.
func (m AgentPaneModel) Update(msg tea.Msg) (AgentPaneModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case events.AgentStartedEvent:
		if _, exists := m.agents[msg.AgentID]; !exists {
			m.agents[msg.AgentID] = &AgentState{
				AgentID:   msg.AgentID,
				TaskID:    msg.TaskID,
				Role:      msg.Role,
				Status:    "running",
				StartTime: msg.Timestamp,
			}
			m.agentOrder = append(m.agentOrder, msg.AgentID)
		}

	case events.AgentOutputEvent:
		if agent, exists := m.agents[msg.AgentID]; exists {
			agent.LastLine = msg.Line
		}

	case events.AgentDoneEvent:
		if agent, exists := m.agents[msg.AgentID]; exists {
			agent.Duration = msg.Duration
			if msg.Err != nil {
				agent.Status = "failed"
				agent.LastLine = msg.Err.Error()
			} else {
				agent.Status = "completed"
			}
		}
	}

	return m, nil
}

// View renders the agent pane.
func (m AgentPaneModel) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	var b strings.Builder

	title := StyleTitle.Render("Agents")
	b.WriteString(title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", lipgloss.Width(title)))
	b.WriteString("\n\n")

	if len(m.agentOrder) == 0 {
		b.WriteString(StyleStatusPending.Render("No agents active."))
	} else {
		for _, agentID := range m.agentOrder {
			agent := m.agents[agentID]
			line := fmt.Sprintf("%s %s  %s", m.statusIcon(agent.Status), agent.AgentID, agent.TaskID)
			b.WriteString(line)
			b.WriteString("\n")
			if agent.LastLine != "" {
				detail := agent.LastLine
				// Narrow panes skip truncation instead of slicing
				// with a negative bound.
				if limit := m.width - 11; limit > 0 && len(detail) > limit+3 {
					detail = detail[:limit] + "..."
				}
				b.WriteString(StyleHelp.Render("  " + detail))
				b.WriteString("\n")
			}
		}
	}

	style := StyleUnfocusedBorder
	if m.focused {
		style = StyleFocusedBorder
	}

	return style.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(b.String())
}

// statusIcon returns a styled status indicator.
func (m AgentPaneModel) statusIcon(status string) string {
	switch status {
	case "running":
		return StyleStatusRunning.Render("●")
	case "completed":
		return StyleStatusComplete.Render("✓")
	case "failed":
		return StyleStatusFailed.Render("✗")
	default:
		return StyleStatusPending.Render("○")
	}
}

// SetSize updates the pane dimensions.
func (m *AgentPaneModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetFocused updates the focus state.
func (m *AgentPaneModel) SetFocused(focused bool) {
	m.focused = focused
}
