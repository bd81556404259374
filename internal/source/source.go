// Package source supplies snapshots of the open-task set to the dashboard,
// either from the local backlog store or from a remote backlog API.
package source

import (
	"context"

	"github.com/aristath/agentboard/internal/backlog"
	"github.com/aristath/agentboard/internal/tasklist"
)

// Source provides the full current set of open tasks. Implementations are
// the only place the dashboard touches I/O for task data.
type Source interface {
	OpenTasks(ctx context.Context) ([]tasklist.Record, error)
}

// StoreSource reads snapshots from the local backlog store.
type StoreSource struct {
	store backlog.Store
}

// NewStoreSource wraps a backlog store as a snapshot source.
func NewStoreSource(store backlog.Store) *StoreSource {
	return &StoreSource{store: store}
}

// OpenTasks returns the open backlog as reconciler records.
func (s *StoreSource) OpenTasks(ctx context.Context) ([]tasklist.Record, error) {
	tasks, err := s.store.OpenTasks(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]tasklist.Record, 0, len(tasks))
	for _, task := range tasks {
		records = append(records, tasklist.Record{
			ID:       task.ID,
			Title:    task.Title,
			Priority: task.Priority,
			Project:  task.Project,
		})
	}
	return records, nil
}
