package ports

import (
	"context"

	"nav-guidance/internal/features/guidance/domain"
)

// MilestoneListener is the primary port for milestone event consumers.
// Implementations must be comparable (typically pointers) so that
// unsubscribing can match them.
type MilestoneListener interface {
	// OnMilestoneEvent is called for every fired milestone, in registration
	// order, with the triggering snapshot, the rendered instruction text and
	// the milestone identifier.
	OnMilestoneEvent(snapshot domain.ProgressSnapshot, instruction string, identifier int)
}

// SnapshotStore is the secondary port for per-session snapshot storage. It
// retains only the most recent snapshot of each session, so stateless update
// handlers can supply the previous snapshot on the next tick.
type SnapshotStore interface {
	// Save stores the latest snapshot for a session, replacing any prior one.
	Save(ctx context.Context, sessionID string, snapshot domain.ProgressSnapshot) error
	// Last retrieves the most recent snapshot for a session.
	// Returns nil, nil when the session has no snapshot yet.
	Last(ctx context.Context, sessionID string) (*domain.ProgressSnapshot, error)
	// Clear removes the stored snapshot for a session.
	Clear(ctx context.Context, sessionID string) error
}
