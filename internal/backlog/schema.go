package backlog

import (
	"context"
)

// initSchema creates all required tables if they don't exist.
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS tasks (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		project TEXT NOT NULL,
		priority INTEGER NOT NULL DEFAULT 0,
		status INTEGER NOT NULL DEFAULT 0,
		agent_role TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_tasks_status_priority ON tasks(status, priority);
	CREATE INDEX IF NOT EXISTS idx_tasks_project ON tasks(project);

	CREATE TABLE IF NOT EXISTS task_blockers (
		task_id TEXT NOT NULL,
		blocked_by_id TEXT NOT NULL,
		PRIMARY KEY (task_id, blocked_by_id),
		FOREIGN KEY (task_id) REFERENCES tasks(id) ON DELETE CASCADE,
		FOREIGN KEY (blocked_by_id) REFERENCES tasks(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_task_blockers_task_id ON task_blockers(task_id);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}
