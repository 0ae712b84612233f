package service

import (
	"testing"

	"nav-guidance/internal/features/guidance/domain"
	routes "nav-guidance/internal/features/routes/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSnapshot builds a minimal snapshot on a single-step route.
func testSnapshot(t *testing.T, stepDistanceRemaining float64) domain.ProgressSnapshot {
	t.Helper()
	route := &routes.Route{
		Distance: 1000,
		Duration: 200,
		Legs: []routes.Leg{
			{
				Distance: 1000,
				Duration: 200,
				Steps: []routes.Step{
					{Distance: 600, Duration: 120, Instruction: "Head east"},
					{Distance: 400, Duration: 80, Instruction: "Arrive"},
				},
			},
		},
		Geometry: []routes.Point{{Lon: 10.0, Lat: 59.0}, {Lon: 10.1, Lat: 59.1}},
	}
	s, err := domain.NewProgressSnapshot(route, 0, 0, stepDistanceRemaining, stepDistanceRemaining/5, nil)
	require.NoError(t, err)
	return s
}

// constantMilestone builds a milestone whose occurrence is a fixed boolean.
func constantMilestone(t *testing.T, identifier int, fires bool) *domain.Milestone {
	t.Helper()
	m, err := domain.NewMilestone(domain.MilestoneConfig{
		Identifier: identifier,
		Occurs: func(previous *domain.ProgressSnapshot, current domain.ProgressSnapshot) bool {
			return fires
		},
	})
	require.NoError(t, err)
	return m
}

// recordingListener captures milestone events for assertions.
type recordingListener struct {
	identifiers  []int
	instructions []string
}

// OnMilestoneEvent implements ports.MilestoneListener.
func (l *recordingListener) OnMilestoneEvent(snapshot domain.ProgressSnapshot, instruction string, identifier int) {
	l.identifiers = append(l.identifiers, identifier)
	l.instructions = append(l.instructions, instruction)
}

// TestEvaluator_EmptyRegistry verifies an empty registry yields an empty
// fired list for any input pair.
func TestEvaluator_EmptyRegistry(t *testing.T) {
	e := NewEvaluator()

	fired := e.OnProgressUpdate(nil, testSnapshot(t, 100))
	assert.Empty(t, fired)
}

// TestEvaluator_FiredOrder verifies only occurring milestones are reported,
// in registration order.
func TestEvaluator_FiredOrder(t *testing.T) {
	e := NewEvaluator()
	e.Register(constantMilestone(t, 1, true))
	e.Register(constantMilestone(t, 2, false))

	fired := e.OnProgressUpdate(nil, testSnapshot(t, 100))
	require.Len(t, fired, 1)
	assert.Equal(t, 1, fired[0].Identifier)
}

// TestEvaluator_RegistrationOrderPreserved verifies multiple fired
// milestones come back in the order they were registered.
func TestEvaluator_RegistrationOrderPreserved(t *testing.T) {
	e := NewEvaluator()
	e.Register(constantMilestone(t, 30, true))
	e.Register(constantMilestone(t, 10, true))
	e.Register(constantMilestone(t, 20, true))

	fired := e.OnProgressUpdate(nil, testSnapshot(t, 100))
	require.Len(t, fired, 3)
	assert.Equal(t, 30, fired[0].Identifier)
	assert.Equal(t, 10, fired[1].Identifier)
	assert.Equal(t, 20, fired[2].Identifier)
}

// TestEvaluator_Deregister verifies a deregistered identifier never appears
// in subsequent fired lists.
func TestEvaluator_Deregister(t *testing.T) {
	e := NewEvaluator()
	e.Register(constantMilestone(t, 5, true))
	e.Register(constantMilestone(t, 6, true))

	fired := e.OnProgressUpdate(nil, testSnapshot(t, 100))
	require.Len(t, fired, 2)

	removed := e.Deregister(5)
	assert.Equal(t, 1, removed)

	fired = e.OnProgressUpdate(nil, testSnapshot(t, 90))
	require.Len(t, fired, 1)
	assert.Equal(t, 6, fired[0].Identifier)

	// Deregistering an unknown identifier is a no-op.
	assert.Equal(t, 0, e.Deregister(99))
}

// TestEvaluator_DuplicateIdentifiers verifies duplicates are legal: both
// fire, and deregistering removes all of them.
func TestEvaluator_DuplicateIdentifiers(t *testing.T) {
	e := NewEvaluator()
	e.Register(constantMilestone(t, 7, true))
	e.Register(constantMilestone(t, 7, true))

	fired := e.OnProgressUpdate(nil, testSnapshot(t, 100))
	assert.Len(t, fired, 2)

	assert.Equal(t, 2, e.Deregister(7))
	assert.Empty(t, e.OnProgressUpdate(nil, testSnapshot(t, 90)))
}

// TestEvaluator_Listeners verifies listener fan-out and idempotent
// unsubscribe.
func TestEvaluator_Listeners(t *testing.T) {
	e := NewEvaluator()
	e.Register(constantMilestone(t, 3, true))

	listener := &recordingListener{}
	e.Subscribe(listener)

	e.OnProgressUpdate(nil, testSnapshot(t, 100))
	require.Equal(t, []int{3}, listener.identifiers)

	e.Unsubscribe(listener)
	e.OnProgressUpdate(nil, testSnapshot(t, 90))
	assert.Equal(t, []int{3}, listener.identifiers, "no events after unsubscribe")

	// Double-unsubscribe is a no-op, not an error.
	e.Unsubscribe(listener)
}

// TestEvaluator_InstructionRendering verifies rendered instructions reach
// both the fired list and listeners.
func TestEvaluator_InstructionRendering(t *testing.T) {
	e := NewEvaluator()
	m, err := domain.NewMilestone(domain.MilestoneConfig{
		Identifier: 4,
		Trigger:    domain.Gte(domain.StepDistanceRemaining, domain.Float(0)),
		Instruction: func(current domain.ProgressSnapshot) string {
			return current.CurrentStep().Instruction
		},
	})
	require.NoError(t, err)
	e.Register(m)

	listener := &recordingListener{}
	e.Subscribe(listener)

	fired := e.OnProgressUpdate(nil, testSnapshot(t, 100))
	require.Len(t, fired, 1)
	assert.Equal(t, "Head east", fired[0].Instruction)
	assert.Equal(t, []string{"Head east"}, listener.instructions)
}

// TestEvaluator_LastSnapshot verifies the evaluator records only the most
// recent snapshot.
func TestEvaluator_LastSnapshot(t *testing.T) {
	e := NewEvaluator()
	assert.Nil(t, e.LastSnapshot())

	first := testSnapshot(t, 100)
	second := testSnapshot(t, 50)

	e.OnProgressUpdate(nil, first)
	require.NotNil(t, e.LastSnapshot())
	assert.Equal(t, 100.0, e.LastSnapshot().StepDistanceRemaining)

	e.OnProgressUpdate(&first, second)
	assert.Equal(t, 50.0, e.LastSnapshot().StepDistanceRemaining)
}

// TestEvaluator_RegisterNil verifies nil milestones and listeners are ignored.
func TestEvaluator_RegisterNil(t *testing.T) {
	e := NewEvaluator()
	e.Register(nil)
	e.Subscribe(nil)

	assert.Empty(t, e.OnProgressUpdate(nil, testSnapshot(t, 100)))
}
