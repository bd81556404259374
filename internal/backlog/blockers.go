package backlog

import (
	"fmt"

	"github.com/gammazero/toposort"
)

// ValidateBlockers runs topological sort over the blocked-by edges and
// returns an error if the backlog contains a dependency cycle or an edge to
// a task that is not in the set. Blocker edges only gate dispatch order, so
// a cycle would deadlock the whole backlog.
func ValidateBlockers(tasks []*Task) error {
	byID := make(map[string]*Task, len(tasks))
	for _, task := range tasks {
		byID[task.ID] = task
	}

	for _, task := range tasks {
		for _, blockerID := range task.BlockedBy {
			if _, exists := byID[blockerID]; !exists {
				return fmt.Errorf("task %q is blocked by non-existent task %q", task.ID, blockerID)
			}
		}
	}

	var edges []toposort.Edge
	for _, task := range tasks {
		if len(task.BlockedBy) == 0 {
			// Edge from nil keeps unblocked tasks in the sort result.
			edges = append(edges, toposort.Edge{nil, task.ID})
			continue
		}
		for _, blockerID := range task.BlockedBy {
			edges = append(edges, toposort.Edge{blockerID, task.ID})
		}
	}

	if _, err := toposort.Toposort(edges); err != nil {
		return fmt.Errorf("backlog contains a blocker cycle: %w", err)
	}

	return nil
}

// Unblocked reports whether every blocker of the task is done.
func Unblocked(task *Task, byID map[string]*Task) bool {
	for _, blockerID := range task.BlockedBy {
		blocker, exists := byID[blockerID]
		if !exists {
			continue
		}
		if blocker.Status != TaskDone {
			return false
		}
	}
	return true
}
