package backlog

import "time"

// TaskStatus represents the lifecycle state of a backlog task.
type TaskStatus int

const (
	TaskOpen    TaskStatus = iota // Visible on the dashboard, waiting for an agent
	TaskClaimed                   // An agent is working on it
	TaskDone                      // Finished successfully
	TaskFailed                    // Finished with error
)

// String returns the human-readable status name.
func (s TaskStatus) String() string {
	switch s {
	case TaskOpen:
		return "open"
	case TaskClaimed:
		return "claimed"
	case TaskDone:
		return "done"
	case TaskFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Task is one backlog entry. The ID carries the project as its prefix
// (e.g. "auth-42"), which is what the dashboard filters on.
type Task struct {
	ID        string     // Unique identifier, "<project>-<n>"
	Title     string     // Human-readable name
	Project   string     // Project key derived from the ID prefix
	Priority  int        // Lower sorts earlier on the dashboard
	Status    TaskStatus
	AgentRole string     // Role of the agent meant to pick this up
	BlockedBy []string   // Task IDs that must finish first
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen reports whether the task belongs on the open-tasks pane.
// Claimed tasks stay visible: an agent working on a task is exactly what
// the dashboard is for.
func (t *Task) IsOpen() bool {
	return t.Status == TaskOpen || t.Status == TaskClaimed
}
