package events

import (
	"time"

	"github.com/aristath/agentboard/internal/tasklist"
)

// Event is the base interface for all events.
type Event interface {
	EventType() string
}

// Topic constants
const (
	TopicTasks  = "tasks"
	TopicAgents = "agents"
)

// Event type constants
const (
	EventTypeTasksSnapshot = "tasks.snapshot"
	EventTypeAgentStarted  = "agent.started"
	EventTypeAgentOutput   = "agent.output"
	EventTypeAgentDone     = "agent.done"
)

// TasksSnapshotEvent carries a full refresh of the open-task set. The
// dashboard's reconciler diffs it against its current order.
type TasksSnapshotEvent struct {
	Records   []tasklist.Record
	Timestamp time.Time
}

func (e TasksSnapshotEvent) EventType() string { return EventTypeTasksSnapshot }

// AgentStartedEvent is published when an agent picks up a task.
type AgentStartedEvent struct {
	AgentID   string
	TaskID    string
	Role      string
	Timestamp time.Time
}

func (e AgentStartedEvent) EventType() string { return EventTypeAgentStarted }

// AgentOutputEvent is published when an agent emits a line of output.
type AgentOutputEvent struct {
	AgentID   string
	Line      string
	Timestamp time.Time
}

func (e AgentOutputEvent) EventType() string { return EventTypeAgentOutput }

// AgentDoneEvent is published when an agent finishes, successfully or not.
type AgentDoneEvent struct {
	AgentID   string
	TaskID    string
	Err       error
	Duration  time.Duration
	Timestamp time.Time
}

func (e AgentDoneEvent) EventType() string { return EventTypeAgentDone }
