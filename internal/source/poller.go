package source

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/aristath/agentboard/internal/events"
)

// Poller fetches the open-task set on a fixed interval and publishes each
// snapshot on the event bus. A failed fetch is logged and skipped; the
// previous snapshot stays on screen until the next successful one.
type Poller struct {
	src      Source
	reporter ActivityReporter // nil when the source cannot report agents
	bus      *events.Bus
	interval time.Duration
	log      zerolog.Logger
	active   map[string]activeAgent
}

// activeAgent remembers when a claim first appeared so the done event can
// carry a duration.
type activeAgent struct {
	act   AgentActivity
	since time.Time
}

// NewPoller creates a poller. Intervals <= 0 default to 2s.
func NewPoller(src Source, bus *events.Bus, interval time.Duration, log zerolog.Logger) *Poller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	reporter, _ := src.(ActivityReporter)
	return &Poller{
		src:      src,
		reporter: reporter,
		bus:      bus,
		interval: interval,
		log:      log,
		active:   make(map[string]activeAgent),
	}
}

// Run polls until the context is cancelled. The first fetch happens
// immediately so the dashboard does not start on an empty pane.
func (p *Poller) Run(ctx context.Context) error {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *Poller) poll(ctx context.Context) {
	records, err := p.src.OpenTasks(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn().Err(err).Msg("snapshot fetch failed")
		return
	}

	p.log.Debug().Int("open", len(records)).Msg("snapshot")
	p.bus.Publish(events.TopicTasks, events.TasksSnapshotEvent{
		Records:   records,
		Timestamp: time.Now(),
	})

	if p.reporter != nil {
		p.pollAgents(ctx)
	}
}

// pollAgents diffs the current activity report against the previous one and
// publishes started, output, and done events. A claim disappearing from the
// report counts as done; whether it succeeded lives in the backlog status,
// not here.
func (p *Poller) pollAgents(ctx context.Context) {
	acts, err := p.reporter.ActiveAgents(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		p.log.Warn().Err(err).Msg("agent activity fetch failed")
		return
	}

	now := time.Now()
	seen := make(map[string]bool, len(acts))
	for _, act := range acts {
		seen[act.AgentID] = true
		prev, ok := p.active[act.AgentID]
		if !ok {
			p.active[act.AgentID] = activeAgent{act: act, since: now}
			p.bus.Publish(events.TopicAgents, events.AgentStartedEvent{
				AgentID:   act.AgentID,
				TaskID:    act.TaskID,
				Role:      act.Role,
				Timestamp: now,
			})
			if act.LastLine != "" {
				p.publishOutput(act, now)
			}
			continue
		}
		if act.LastLine != "" && act.LastLine != prev.act.LastLine {
			p.publishOutput(act, now)
		}
		prev.act = act
		p.active[act.AgentID] = prev
	}

	for id, a := range p.active {
		if seen[id] {
			continue
		}
		delete(p.active, id)
		p.bus.Publish(events.TopicAgents, events.AgentDoneEvent{
			AgentID:   id,
			TaskID:    a.act.TaskID,
			Duration:  now.Sub(a.since),
			Timestamp: now,
		})
	}
}

func (p *Poller) publishOutput(act AgentActivity, now time.Time) {
	p.bus.Publish(events.TopicAgents, events.AgentOutputEvent{
		AgentID:   act.AgentID,
		Line:      act.LastLine,
		Timestamp: now,
	})
}
