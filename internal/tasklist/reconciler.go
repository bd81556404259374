// Package tasklist implements the stable-order reconciliation engine behind
// the open-tasks pane. It owns the ordered sequence of task IDs that defines
// render order, diffs incoming snapshots and filter changes against it, and
// delays removal of exiting rows until their exit animation has played.
//
// The engine is framework-agnostic: feed it snapshots via ApplySnapshot and
// filter changes via SetFilter, read back Order/Visible plus the per-row
// animation flags from whatever render loop consumes it. When a snapshot and
// a filter change land together, apply the snapshot first so visibility is
// evaluated against the freshest order.
package tasklist

import (
	"math"
	"sort"
	"sync"
	"time"
)

// DefaultAnimationWindow matches the exit/entrance animation duration.
const DefaultAnimationWindow = 600 * time.Millisecond

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithAnimationWindow overrides the fixed flag/cleanup delay.
func WithAnimationWindow(d time.Duration) Option {
	return func(r *Reconciler) { r.window = d }
}

// WithoutFilterUI puts the reconciler in embedded mode: filter values are
// recorded but never produce entrance or exit animations.
func WithoutFilterUI() Option {
	return func(r *Reconciler) { r.filterUI = false }
}

// Reconciler tracks the stable render order of open tasks across data
// refreshes and filter changes. All methods are safe for concurrent use;
// mutation is serialized behind one mutex because cleanup timers fire on
// their own goroutines.
type Reconciler struct {
	mu sync.Mutex

	order   []string          // render order, each tracked ID exactly once
	records map[string]Record // last known record per tracked ID
	present map[string]bool   // IDs in the most recent snapshot

	dataExiting    map[string]bool // gone from the source, still animating out
	filterExiting  map[string]bool // hidden by a filter change, still animating out
	dataEntering   map[string]bool // entrance flag from a data refresh
	filterEntering map[string]bool // entrance flag from a filter change

	filter     string // project filter, "" shows all
	filterSeen bool   // baseline recorded
	filterUI   bool   // false in embedded (no-header) mode

	window time.Duration
	timers *timerBank
	closed bool
}

// New creates an empty reconciler. The first non-empty snapshot seeds the
// order without animation.
func New(opts ...Option) *Reconciler {
	r := &Reconciler{
		records:        make(map[string]Record),
		present:        make(map[string]bool),
		dataExiting:    make(map[string]bool),
		filterExiting:  make(map[string]bool),
		dataEntering:   make(map[string]bool),
		filterEntering: make(map[string]bool),
		filterUI:       true,
		window:         DefaultAnimationWindow,
		timers:         newTimerBank(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ApplySnapshot reconciles the order against a fresh snapshot of open tasks.
// New arrivals are inserted by priority and flagged entering; tasks gone from
// the source are flagged exiting and removed only after the animation window.
// Rows already settled never move.
func (r *Reconciler) ApplySnapshot(snapshot []Record) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	current := make(map[string]bool, len(snapshot))
	for _, rec := range snapshot {
		current[rec.ID] = true
	}
	r.present = current

	// Merge the cache: live rows are refreshed, exiting rows keep their
	// last known title/priority/project.
	for _, rec := range snapshot {
		if rec.Project == "" {
			rec.Project = ProjectOf(rec.ID)
		}
		r.records[rec.ID] = rec
	}

	// First snapshot seeds the order directly, sorted by priority. No
	// entrance flags: the initial paint must not animate.
	if len(r.order) == 0 {
		seeded := make([]Record, len(snapshot))
		copy(seeded, snapshot)
		sort.SliceStable(seeded, func(i, j int) bool {
			return seeded[i].Priority < seeded[j].Priority
		})
		for _, rec := range seeded {
			r.order = append(r.order, rec.ID)
		}
		return
	}

	inOrder := make(map[string]bool, len(r.order))
	for _, id := range r.order {
		inOrder[id] = true
	}

	// A task that comes back mid-exit just stops exiting. It never left
	// the order, so there is no entrance animation either.
	for id := range current {
		if r.dataExiting[id] {
			delete(r.dataExiting, id)
			r.timers.cancel(timerKey{id: id, kind: kindDataExit})
		}
	}

	// New arrivals, sorted by priority so simultaneous insertions end up
	// correctly interleaved relative to each other and to existing rows.
	var fresh []Record
	for _, rec := range snapshot {
		if !inOrder[rec.ID] {
			fresh = append(fresh, rec)
		}
	}
	sort.SliceStable(fresh, func(i, j int) bool {
		return fresh[i].Priority < fresh[j].Priority
	})
	for _, rec := range fresh {
		r.insertByPriority(rec.ID, rec.Priority)
		// Rows the current filter hides are tracked but not animated;
		// they animate in later if the filter changes to show them.
		if r.passes(r.filter, rec.ID) {
			r.dataEntering[rec.ID] = true
			r.scheduleEnter(rec.ID, kindDataEnter)
		}
	}

	// Tasks gone from the source start their exit unless already mid-exit.
	for _, id := range r.order {
		if current[id] || r.dataExiting[id] {
			continue
		}
		r.dataExiting[id] = true
		r.scheduleExit(id, kindDataExit)
	}
}

// SetFilter applies a new project filter ("" shows all). Rows the new filter
// hides keep rendering while their exit animation plays; rows it reveals get
// an entrance flag. The first observed value only records the baseline.
func (r *Reconciler) SetFilter(project string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	// Embedded views have no filter header; just track the value.
	if !r.filterUI {
		r.filter = project
		r.filterSeen = true
		return
	}

	// First observation establishes the baseline without animating.
	if !r.filterSeen {
		r.filter = project
		r.filterSeen = true
		return
	}

	// Unchanged filter produces no entering/exiting rows.
	if project == r.filter {
		return
	}

	prev := r.filter
	r.filter = project

	for _, id := range r.order {
		if r.filterExiting[id] {
			// A mid-exit row the new filter shows again stops
			// exiting; membership is re-checked at timer fire, so
			// dropping the set entry is all the cancel needs.
			if r.passes(project, id) {
				delete(r.filterExiting, id)
				r.timers.cancel(timerKey{id: id, kind: kindFilterExit})
			}
			continue
		}

		was := r.passes(prev, id)
		now := r.passes(project, id)
		switch {
		case was && !now:
			r.filterExiting[id] = true
			r.scheduleExit(id, kindFilterExit)
		case !was && now:
			r.filterEntering[id] = true
			r.scheduleEnter(id, kindFilterEnter)
		}
	}
}

// Order returns a copy of the current render order, exiting rows included.
func (r *Reconciler) Order() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Visible returns the order narrowed to rows that should be painted: rows
// passing the filter plus rows still animating out.
func (r *Reconciler) Visible() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if r.passes(r.filter, id) || r.dataExiting[id] || r.filterExiting[id] {
			out = append(out, id)
		}
	}
	return out
}

// Record returns the last known record for a tracked ID, including ones
// that are mid-exit.
func (r *Reconciler) Record(id string) (Record, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	return rec, ok
}

// IsEntering reports whether the row should carry its entrance animation.
func (r *Reconciler) IsEntering(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dataEntering[id] || r.filterEntering[id]
}

// IsExiting reports whether the row is animating out for either cause.
func (r *Reconciler) IsExiting(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dataExiting[id] || r.filterExiting[id]
}

// Filter returns the active project filter ("" shows all).
func (r *Reconciler) Filter() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.filter
}

// Animating reports whether any entrance or exit flag is still live.
// Render loops use it to keep repainting until the list settles.
func (r *Reconciler) Animating() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.dataExiting) > 0 || len(r.filterExiting) > 0 ||
		len(r.dataEntering) > 0 || len(r.filterEntering) > 0
}

// Projects returns the sorted set of project keys across tracked records.
func (r *Reconciler) Projects() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool)
	for _, rec := range r.records {
		seen[rec.Project] = true
	}
	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Close cancels every pending cleanup timer. The reconciler accepts no
// further updates; call it when the consuming view is torn down.
func (r *Reconciler) Close() {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()

	r.timers.stopAll()
}

// insertByPriority places id immediately before the first entry with a
// strictly greater priority, appending when none is found. This keeps the
// order ascending with first-seen placement for ties, and never moves a row
// that is not the one being inserted.
func (r *Reconciler) insertByPriority(id string, priority int) {
	at := len(r.order)
	for i, other := range r.order {
		if r.priorityOf(other) > priority {
			at = i
			break
		}
	}
	r.order = append(r.order, "")
	copy(r.order[at+1:], r.order[at:])
	r.order[at] = id
}

// priorityOf reads the cached priority; rows with no cached record sort last.
func (r *Reconciler) priorityOf(id string) int {
	if rec, ok := r.records[id]; ok {
		return rec.Priority
	}
	return math.MaxInt
}

// removeIfSettled drops id from the order only when nothing still needs the
// row: not mid-exit in either set, and not present in the latest snapshot.
// Callers hold r.mu.
func (r *Reconciler) removeIfSettled(id string) {
	if r.dataExiting[id] || r.filterExiting[id] || r.present[id] {
		return
	}
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	delete(r.records, id)
	delete(r.dataEntering, id)
	delete(r.filterEntering, id)
}

// passes reports whether id is visible under the given filter. Falls back to
// deriving the project from the ID when no record is cached.
func (r *Reconciler) passes(filter, id string) bool {
	if filter == "" {
		return true
	}
	if rec, ok := r.records[id]; ok && rec.Project != "" {
		return rec.Project == filter
	}
	return ProjectOf(id) == filter
}

// scheduleExit arms the delayed cleanup for an exiting row. Set membership
// is read again at fire time, never captured here, so a row that becomes
// visible before the timer fires is simply left alone.
func (r *Reconciler) scheduleExit(id string, kind flagKind) {
	r.timers.schedule(timerKey{id: id, kind: kind}, r.window, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.closed {
			return
		}
		switch kind {
		case kindDataExit:
			delete(r.dataExiting, id)
		case kindFilterExit:
			delete(r.filterExiting, id)
		}
		r.removeIfSettled(id)
	})
}

// scheduleEnter arms the flag-clear for an entering row. Entrance flags
// carry no order-mutation semantics.
func (r *Reconciler) scheduleEnter(id string, kind flagKind) {
	r.timers.schedule(timerKey{id: id, kind: kind}, r.window, func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.closed {
			return
		}
		switch kind {
		case kindDataEnter:
			delete(r.dataEntering, id)
		case kindFilterEnter:
			delete(r.filterEntering, id)
		}
	})
}
