package backlog

import (
	"context"
	"database/sql"
	"fmt"
)

// SaveTask saves or updates a task and its blockers.
// Uses ON CONFLICT to make saves idempotent. An empty Project is derived
// from the ID prefix before writing.
func (s *SQLiteStore) SaveTask(ctx context.Context, task *Task) error {
	if task.ID == "" {
		return fmt.Errorf("task ID is required")
	}
	if task.Project == "" {
		task.Project = projectFromID(task.ID)
	}

	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO tasks (id, title, project, priority, status, agent_role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			project = excluded.project,
			priority = excluded.priority,
			status = excluded.status,
			agent_role = excluded.agent_role,
			updated_at = CURRENT_TIMESTAMP
	`, task.ID, task.Title, task.Project, task.Priority, task.Status, task.AgentRole)
	if err != nil {
		return fmt.Errorf("failed to upsert task: %w", err)
	}

	// Replace blocker edges
	_, err = tx.ExecContext(ctx, `DELETE FROM task_blockers WHERE task_id = ?`, task.ID)
	if err != nil {
		return fmt.Errorf("failed to delete old blockers: %w", err)
	}

	for _, blockerID := range task.BlockedBy {
		var exists int
		err = tx.QueryRowContext(ctx, `SELECT 1 FROM tasks WHERE id = ?`, blockerID).Scan(&exists)
		if err == sql.ErrNoRows {
			return fmt.Errorf("blocker task %s does not exist", blockerID)
		}
		if err != nil {
			return fmt.Errorf("failed to check blocker existence: %w", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO task_blockers (task_id, blocked_by_id)
			VALUES (?, ?)
		`, task.ID, blockerID)
		if err != nil {
			return fmt.Errorf("failed to insert blocker %s -> %s: %w", task.ID, blockerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID, including its blockers.
func (s *SQLiteStore) GetTask(ctx context.Context, taskID string) (*Task, error) {
	task := &Task{}

	err := s.db.QueryRowContext(ctx, `
		SELECT id, title, project, priority, status, COALESCE(agent_role, ''), created_at, updated_at
		FROM tasks
		WHERE id = ?
	`, taskID).Scan(&task.ID, &task.Title, &task.Project, &task.Priority, &task.Status,
		&task.AgentRole, &task.CreatedAt, &task.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task not found: %s", taskID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load task: %w", err)
	}

	task.BlockedBy, err = s.blockersFor(ctx, taskID)
	if err != nil {
		return nil, err
	}

	return task, nil
}

// OpenTasks returns every task that belongs on the open-tasks pane, ordered
// by priority then ID for a deterministic snapshot.
func (s *SQLiteStore) OpenTasks(ctx context.Context) ([]*Task, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, project, priority, status, COALESCE(agent_role, ''), created_at, updated_at
		FROM tasks
		WHERE status IN (?, ?)
		ORDER BY priority, id
	`, TaskOpen, TaskClaimed)
	if err != nil {
		return nil, fmt.Errorf("failed to query open tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task := &Task{}
		if err := rows.Scan(&task.ID, &task.Title, &task.Project, &task.Priority, &task.Status,
			&task.AgentRole, &task.CreatedAt, &task.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	for _, task := range tasks {
		task.BlockedBy, err = s.blockersFor(ctx, task.ID)
		if err != nil {
			return nil, err
		}
	}

	return tasks, nil
}

// UpdateStatus transitions a task to a new status.
func (s *SQLiteStore) UpdateStatus(ctx context.Context, taskID string, status TaskStatus) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, taskID)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("task not found: %s", taskID)
	}

	return nil
}

// Projects returns the distinct project keys present in the backlog, sorted.
func (s *SQLiteStore) Projects(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT project FROM tasks ORDER BY project`)
	if err != nil {
		return nil, fmt.Errorf("failed to query projects: %w", err)
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// blockersFor loads the blocker edge list for one task.
func (s *SQLiteStore) blockersFor(ctx context.Context, taskID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT blocked_by_id FROM task_blockers WHERE task_id = ? ORDER BY blocked_by_id
	`, taskID)
	if err != nil {
		return nil, fmt.Errorf("failed to query blockers: %w", err)
	}
	defer rows.Close()

	var blockers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan blocker: %w", err)
		}
		blockers = append(blockers, id)
	}
	return blockers, rows.Err()
}

// projectFromID derives the project key from a task ID prefix.
func projectFromID(id string) string {
	for i := 0; i < len(id); i++ {
		if id[i] == '-' && i > 0 {
			return id[:i]
		}
	}
	return id
}
