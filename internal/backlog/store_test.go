package backlog

import (
	"context"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewMemoryStore(context.Background())
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// TestSaveAndGetTask verifies round-tripping a task with blockers.
func TestSaveAndGetTask(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	blocker := &Task{ID: "auth-1", Title: "schema migration", Priority: 1}
	if err := store.SaveTask(ctx, blocker); err != nil {
		t.Fatalf("SaveTask blocker: %v", err)
	}

	task := &Task{
		ID:        "auth-2",
		Title:     "token rotation",
		Priority:  3,
		AgentRole: "coder",
		BlockedBy: []string{"auth-1"},
	}
	if err := store.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	got, err := store.GetTask(ctx, "auth-2")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "token rotation" || got.Priority != 3 || got.AgentRole != "coder" {
		t.Errorf("loaded task = %+v", got)
	}
	if got.Project != "auth" {
		t.Errorf("project = %q, want derived %q", got.Project, "auth")
	}
	if len(got.BlockedBy) != 1 || got.BlockedBy[0] != "auth-1" {
		t.Errorf("blockers = %v, want [auth-1]", got.BlockedBy)
	}
}

// TestSaveTaskIsIdempotent verifies saving twice updates instead of failing.
func TestSaveTaskIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	task := &Task{ID: "web-1", Title: "first", Priority: 1}
	if err := store.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	task.Title = "second"
	task.Priority = 5
	if err := store.SaveTask(ctx, task); err != nil {
		t.Fatalf("SaveTask update: %v", err)
	}

	got, err := store.GetTask(ctx, "web-1")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Title != "second" || got.Priority != 5 {
		t.Errorf("task after update = %+v", got)
	}
}

// TestSaveTaskRejectsMissingBlocker verifies edge validation.
func TestSaveTaskRejectsMissingBlocker(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	task := &Task{ID: "web-1", Title: "x", BlockedBy: []string{"ghost-1"}}
	if err := store.SaveTask(ctx, task); err == nil {
		t.Fatal("expected error for missing blocker")
	}
}

// TestOpenTasksOrderingAndFiltering verifies the snapshot query returns open
// and claimed tasks sorted by priority, excluding finished ones.
func TestOpenTasksOrderingAndFiltering(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	seed := []*Task{
		{ID: "a-1", Title: "low", Priority: 5},
		{ID: "a-2", Title: "high", Priority: 0},
		{ID: "b-1", Title: "claimed", Priority: 2, Status: TaskClaimed},
		{ID: "b-2", Title: "done", Priority: 1, Status: TaskDone},
	}
	for _, task := range seed {
		if err := store.SaveTask(ctx, task); err != nil {
			t.Fatalf("SaveTask %s: %v", task.ID, err)
		}
	}

	open, err := store.OpenTasks(ctx)
	if err != nil {
		t.Fatalf("OpenTasks: %v", err)
	}

	want := []string{"a-2", "b-1", "a-1"}
	if len(open) != len(want) {
		t.Fatalf("got %d open tasks, want %d", len(open), len(want))
	}
	for i, id := range want {
		if open[i].ID != id {
			t.Errorf("open[%d] = %s, want %s", i, open[i].ID, id)
		}
	}
}

// TestUpdateStatus verifies transitions and the not-found error.
func TestUpdateStatus(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if err := store.SaveTask(ctx, &Task{ID: "a-1", Title: "x"}); err != nil {
		t.Fatalf("SaveTask: %v", err)
	}

	if err := store.UpdateStatus(ctx, "a-1", TaskDone); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := store.GetTask(ctx, "a-1")
	if err != nil {
		t.Fatalf("GetTask: %v", err)
	}
	if got.Status != TaskDone {
		t.Errorf("status = %v, want TaskDone", got.Status)
	}

	if err := store.UpdateStatus(ctx, "ghost-1", TaskDone); err == nil {
		t.Error("expected error for unknown task")
	}
}

// TestProjects verifies the distinct project listing.
func TestProjects(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, id := range []string{"auth-1", "auth-2", "web-1"} {
		if err := store.SaveTask(ctx, &Task{ID: id, Title: id}); err != nil {
			t.Fatalf("SaveTask %s: %v", id, err)
		}
	}

	projects, err := store.Projects(ctx)
	if err != nil {
		t.Fatalf("Projects: %v", err)
	}
	want := []string{"auth", "web"}
	if len(projects) != 2 || projects[0] != want[0] || projects[1] != want[1] {
		t.Errorf("projects = %v, want %v", projects, want)
	}
}
