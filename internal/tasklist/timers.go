package tasklist

import (
	"sync"
	"time"
)

// flagKind distinguishes the four animation flags a row can carry.
// Exit kinds delay removal from the order; enter kinds only clear a flag.
type flagKind int

const (
	kindDataExit flagKind = iota
	kindFilterExit
	kindDataEnter
	kindFilterEnter
)

// timerKey identifies one pending cleanup: a row can have independent
// timers per kind (e.g. data-exiting and filter-exiting at the same time).
type timerKey struct {
	id   string
	kind flagKind
}

// bankEntry pairs the armed timer with the generation it was scheduled at.
type bankEntry struct {
	timer *time.Timer
	gen   uint64
}

// timerBank tracks one cancellable cleanup handle per (id, kind). Each
// schedule bumps a generation counter; a fired callback only acts if its
// generation is still the armed one, so a handle replaced between firing
// and running never touches current state.
type timerBank struct {
	mu     sync.Mutex
	gen    uint64
	timers map[timerKey]bankEntry
}

func newTimerBank() *timerBank {
	return &timerBank{timers: make(map[timerKey]bankEntry)}
}

// schedule arms a handle for key, replacing any pending one.
func (b *timerBank) schedule(key timerKey, d time.Duration, fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.timers[key]; ok {
		e.timer.Stop()
	}
	b.gen++
	gen := b.gen
	timer := time.AfterFunc(d, func() {
		if !b.disarm(key, gen) {
			return
		}
		fn()
	})
	b.timers[key] = bankEntry{timer: timer, gen: gen}
}

// disarm drops the bookkeeping entry for key and reports whether gen was
// still the armed generation. Called from the timer's own callback; a false
// return means the handle was replaced or cancelled after firing.
func (b *timerBank) disarm(key timerKey, gen uint64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	e, ok := b.timers[key]
	if !ok || e.gen != gen {
		return false
	}
	delete(b.timers, key)
	return true
}

// cancel stops and forgets the handle for key, if any.
func (b *timerBank) cancel(key timerKey) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if e, ok := b.timers[key]; ok {
		e.timer.Stop()
		delete(b.timers, key)
	}
}

// stopAll cancels every pending handle. Called on teardown so no cleanup
// fires after the consuming view is gone.
func (b *timerBank) stopAll() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for key, e := range b.timers {
		e.timer.Stop()
		delete(b.timers, key)
	}
}

// pending returns the number of armed handles.
func (b *timerBank) pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.timers)
}
