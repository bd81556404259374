package source

import (
	"context"

	"github.com/aristath/agentboard/internal/backlog"
)

// AgentActivity describes one agent currently holding a task.
type AgentActivity struct {
	AgentID  string
	TaskID   string
	Role     string
	LastLine string
}

// ActivityReporter is implemented by sources that can also report live agent
// activity. The poller diffs successive reports into started/output/done
// events for the agents pane.
type ActivityReporter interface {
	ActiveAgents(ctx context.Context) ([]AgentActivity, error)
}

// ActiveAgents derives agent activity from claimed backlog tasks.
func (s *StoreSource) ActiveAgents(ctx context.Context) ([]AgentActivity, error) {
	tasks, err := s.store.OpenTasks(ctx)
	if err != nil {
		return nil, err
	}

	var active []AgentActivity
	for _, task := range tasks {
		if task.Status != backlog.TaskClaimed {
			continue
		}
		active = append(active, AgentActivity{
			AgentID: agentID(task.AgentRole, task.ID),
			TaskID:  task.ID,
			Role:    task.AgentRole,
		})
	}
	return active, nil
}

// agentPayload is the wire shape of one active agent.
type agentPayload struct {
	AgentID  string `json:"agent_id"`
	TaskID   string `json:"task_id"`
	Role     string `json:"role,omitempty"`
	LastLine string `json:"last_line,omitempty"`
}

// ActiveAgents fetches live agent activity from the remote backlog API.
func (s *HTTPSource) ActiveAgents(ctx context.Context) ([]AgentActivity, error) {
	var payload []agentPayload
	if err := s.getJSON(ctx, "/api/agents/active", &payload); err != nil {
		return nil, err
	}

	active := make([]AgentActivity, 0, len(payload))
	for _, p := range payload {
		id := p.AgentID
		if id == "" {
			id = agentID(p.Role, p.TaskID)
		}
		active = append(active, AgentActivity{
			AgentID:  id,
			TaskID:   p.TaskID,
			Role:     p.Role,
			LastLine: p.LastLine,
		})
	}
	return active, nil
}

// agentID names the claim, not the process: one agent per claimed task.
func agentID(role, taskID string) string {
	if role == "" {
		role = "agent"
	}
	return role + ":" + taskID
}
