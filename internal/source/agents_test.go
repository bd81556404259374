package source

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/agentboard/internal/backlog"
	"github.com/aristath/agentboard/internal/events"
	"github.com/aristath/agentboard/internal/tasklist"
)

// reportingSource is a fakeSource that also reports agent activity. The
// activity set can be swapped between polls.
type reportingSource struct {
	mu      sync.Mutex
	records []tasklist.Record
	active  []AgentActivity
}

func (f *reportingSource) OpenTasks(ctx context.Context) ([]tasklist.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.records, nil
}

func (f *reportingSource) ActiveAgents(ctx context.Context) ([]AgentActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]AgentActivity(nil), f.active...), nil
}

func (f *reportingSource) setActive(active []AgentActivity) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.active = active
}

func waitForAgentEvent(t *testing.T, ch <-chan events.Event) events.Event {
	t.Helper()
	select {
	case ev := <-ch:
		return ev
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timeout waiting for agent event")
		return nil
	}
}

// TestPollerDiffsAgentActivity walks a claim through its lifecycle: appear,
// emit output, disappear.
func TestPollerDiffsAgentActivity(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch := bus.Subscribe(events.TopicAgents, 10)

	src := &reportingSource{
		active: []AgentActivity{{AgentID: "coder:auth-1", TaskID: "auth-1", Role: "coder"}},
	}
	p := NewPoller(src, bus, 15*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Run(ctx) }()

	started, ok := waitForAgentEvent(t, ch).(events.AgentStartedEvent)
	if !ok || started.AgentID != "coder:auth-1" || started.TaskID != "auth-1" {
		t.Fatalf("unexpected first event: %+v", started)
	}

	src.setActive([]AgentActivity{
		{AgentID: "coder:auth-1", TaskID: "auth-1", Role: "coder", LastLine: "running tests"},
	})
	output, ok := waitForAgentEvent(t, ch).(events.AgentOutputEvent)
	if !ok || output.Line != "running tests" {
		t.Fatalf("unexpected second event: %+v", output)
	}

	src.setActive(nil)
	doneEv, ok := waitForAgentEvent(t, ch).(events.AgentDoneEvent)
	if !ok || doneEv.AgentID != "coder:auth-1" {
		t.Fatalf("unexpected third event: %+v", doneEv)
	}
	if doneEv.Duration <= 0 {
		t.Errorf("done event carries no duration: %v", doneEv.Duration)
	}
}

// TestPollerUnchangedActivityIsQuiet verifies a steady claim publishes one
// started event, not one per poll.
func TestPollerUnchangedActivityIsQuiet(t *testing.T) {
	bus := events.NewBus()
	defer bus.Close()
	ch := bus.Subscribe(events.TopicAgents, 10)

	src := &reportingSource{
		active: []AgentActivity{{AgentID: "coder:web-1", TaskID: "web-1", Role: "coder"}},
	}
	p := NewPoller(src, bus, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = p.Run(ctx) }()

	if _, ok := waitForAgentEvent(t, ch).(events.AgentStartedEvent); !ok {
		t.Fatal("expected a started event")
	}

	time.Sleep(50 * time.Millisecond)
	select {
	case ev := <-ch:
		t.Fatalf("unexpected extra event: %+v", ev)
	default:
	}
}

// TestStoreSourceReportsClaimedTasks verifies only claimed tasks show up as
// activity and that open ones do not.
func TestStoreSourceReportsClaimedTasks(t *testing.T) {
	ctx := context.Background()
	store, err := backlog.NewMemoryStore(ctx)
	if err != nil {
		t.Fatalf("NewMemoryStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	seed := []*backlog.Task{
		{ID: "auth-1", Title: "x", Priority: 1, AgentRole: "coder", Status: backlog.TaskClaimed},
		{ID: "auth-2", Title: "y", Priority: 2, AgentRole: "coder"},
		{ID: "web-1", Title: "z", Priority: 3, Status: backlog.TaskClaimed},
	}
	for _, task := range seed {
		if err := store.SaveTask(ctx, task); err != nil {
			t.Fatalf("SaveTask %s: %v", task.ID, err)
		}
	}

	acts, err := NewStoreSource(store).ActiveAgents(ctx)
	if err != nil {
		t.Fatalf("ActiveAgents: %v", err)
	}
	if len(acts) != 2 {
		t.Fatalf("got %d activities, want 2: %+v", len(acts), acts)
	}
	if acts[0].AgentID != "coder:auth-1" {
		t.Errorf("AgentID = %q, want coder:auth-1", acts[0].AgentID)
	}
	if acts[1].AgentID != "agent:web-1" {
		t.Errorf("empty role should fall back to agent:, got %q", acts[1].AgentID)
	}
}
