package tui

import (
	"testing"
	"time"

	"github.com/aristath/agentboard/internal/tasklist"
)

// TestDeriveCounts verifies each tracked row lands in exactly one bucket:
// settled, entering, exiting, or hidden.
func TestDeriveCounts(t *testing.T) {
	rec := tasklist.New(tasklist.WithAnimationWindow(25 * time.Millisecond))
	defer rec.Close()

	rec.SetFilter("")
	rec.ApplySnapshot([]tasklist.Record{
		{ID: "auth-1", Priority: 0},
		{ID: "auth-2", Priority: 1},
		{ID: "web-1", Priority: 2},
	})

	// Hide web-1 and let its exit animation finish so it counts as hidden,
	// not exiting.
	rec.SetFilter("auth")
	time.Sleep(60 * time.Millisecond)

	// auth-2 leaves the source (exiting), auth-3 arrives (entering).
	rec.ApplySnapshot([]tasklist.Record{
		{ID: "auth-1", Priority: 0},
		{ID: "web-1", Priority: 2},
		{ID: "auth-3", Priority: 3},
	})

	m := Model{rec: rec}
	c := m.deriveCounts()

	if c.Tracked != 4 {
		t.Errorf("Tracked = %d, want 4", c.Tracked)
	}
	if c.Settled != 1 {
		t.Errorf("Settled = %d, want 1", c.Settled)
	}
	if c.Entering != 1 {
		t.Errorf("Entering = %d, want 1", c.Entering)
	}
	if c.Exiting != 1 {
		t.Errorf("Exiting = %d, want 1", c.Exiting)
	}
	if c.Hidden != 1 {
		t.Errorf("Hidden = %d, want 1", c.Hidden)
	}
}
