package service

import (
	"sync"

	"nav-guidance/internal/core/logger"
	"nav-guidance/internal/features/guidance/domain"
	"nav-guidance/internal/features/guidance/ports"

	"go.uber.org/zap"
)

// Occurrence is one fired milestone, paired with the snapshot that
// triggered it.
type Occurrence struct {
	// Identifier is the fired milestone's identifier.
	Identifier int `json:"identifier"`
	// Instruction is the rendered instruction text, possibly empty.
	Instruction string `json:"instruction,omitempty"`
	// Snapshot is the current snapshot that triggered the milestone.
	Snapshot domain.ProgressSnapshot `json:"-"`
}

// Evaluator holds the registered milestones and evaluates all of them on
// every progress update. Registration order is evaluation order and the
// order of the fired list.
//
// Register, Deregister, Subscribe and Unsubscribe must not race with
// OnProgressUpdate; a mutex enforces that here so hosts driving updates from
// a single goroutine need no further discipline.
type Evaluator struct {
	mu           sync.Mutex
	milestones   []*domain.Milestone
	listeners    []ports.MilestoneListener
	lastSnapshot *domain.ProgressSnapshot
}

// NewEvaluator creates an Evaluator with no registered milestones.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Register appends a milestone to the registry. Identifiers are not required
// to be unique; a duplicate is legal but makes dispatch by identifier
// ambiguous, so it is logged.
func (e *Evaluator) Register(m *domain.Milestone) {
	if m == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, existing := range e.milestones {
		if existing.Identifier() == m.Identifier() {
			logger.Get().Warn("Registering milestone with duplicate identifier",
				zap.Int("identifier", m.Identifier()),
			)
			break
		}
	}

	e.milestones = append(e.milestones, m)
}

// Deregister removes every milestone with the given identifier and returns
// how many were removed. A no-op when none match.
func (e *Evaluator) Deregister(identifier int) int {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := e.milestones[:0]
	removed := 0
	for _, m := range e.milestones {
		if m.Identifier() == identifier {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	e.milestones = kept
	return removed
}

// Subscribe adds a listener for fired milestones.
func (e *Evaluator) Subscribe(l ports.MilestoneListener) {
	if l == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = append(e.listeners, l)
}

// Unsubscribe removes a previously subscribed listener. Unsubscribing a
// listener that is not subscribed (or doing so twice) is a no-op.
func (e *Evaluator) Unsubscribe(l ports.MilestoneListener) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, existing := range e.listeners {
		if existing == l {
			e.listeners = append(e.listeners[:i], e.listeners[i+1:]...)
			return
		}
	}
}

// OnProgressUpdate evaluates every registered milestone against the snapshot
// pair, in registration order, and returns the fired occurrences. previous
// is nil on the first update. Listeners are notified for each occurrence
// before the call returns. The evaluator records current as its last-known
// snapshot; it keeps no further history.
func (e *Evaluator) OnProgressUpdate(previous *domain.ProgressSnapshot, current domain.ProgressSnapshot) []Occurrence {
	e.mu.Lock()
	defer e.mu.Unlock()

	fired := make([]Occurrence, 0)
	for _, m := range e.milestones {
		if !m.IsOccurring(previous, current) {
			continue
		}
		occurrence := Occurrence{
			Identifier:  m.Identifier(),
			Instruction: m.Instruction(current),
			Snapshot:    current,
		}
		fired = append(fired, occurrence)

		for _, l := range e.listeners {
			l.OnMilestoneEvent(current, occurrence.Instruction, occurrence.Identifier)
		}
	}

	snapshot := current
	e.lastSnapshot = &snapshot

	return fired
}

// LastSnapshot returns the most recent snapshot seen by OnProgressUpdate,
// or nil before the first update.
func (e *Evaluator) LastSnapshot() *domain.ProgressSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastSnapshot
}
