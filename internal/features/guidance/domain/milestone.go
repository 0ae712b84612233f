package domain

import (
	"errors"
	"fmt"
)

// ErrNoTrigger is returned when a milestone is built with neither a trigger
// statement nor a custom occurrence predicate.
var ErrNoTrigger = errors.New("milestone requires a trigger or an occurrence predicate")

// Identifiers of the milestones this service registers by default. Callers
// building their own milestones may use any value.
const (
	// StepMilestoneIdentifier marks the built-in step transition milestone.
	StepMilestoneIdentifier = 1
	// BannerMilestoneIdentifier marks the built-in banner instruction milestone.
	BannerMilestoneIdentifier = 2
	// ArrivalMilestoneIdentifier marks the built-in arrival milestone.
	ArrivalMilestoneIdentifier = 3
)

// OccurrencePredicate is a custom occurrence check operating on the same
// snapshot pair a trigger tree would receive. It must be pure: no side
// effects, deterministic for identical inputs.
type OccurrencePredicate func(previous *ProgressSnapshot, current ProgressSnapshot) bool

// InstructionFunc renders the instruction text for a fired milestone from
// the triggering snapshot. Rendering beyond this hook (localization, voice)
// is an external concern.
type InstructionFunc func(current ProgressSnapshot) string

// MilestoneConfig carries the named, validated fields for building a
// Milestone. Exactly one of Trigger or Occurs drives occurrence checks; when
// both are set, Occurs wins.
type MilestoneConfig struct {
	// Identifier distinguishes this milestone in fired-event dispatch.
	// 0 means "uncategorized": the zero value is indistinguishable from an
	// intentionally chosen 0, so callers dispatching by identifier should
	// assign their own non-zero values.
	Identifier int
	// Trigger is the boolean expression tree evaluated on each update.
	Trigger Statement
	// Occurs overrides the trigger with custom occurrence logic.
	Occurs OccurrencePredicate
	// Instruction renders the event text for a fired milestone. Optional;
	// fired events carry an empty instruction without it.
	Instruction InstructionFunc
}

// Milestone is a named condition that, when satisfied by progress along a
// route, triggers a navigation event. Immutable after construction; build
// one with NewMilestone.
type Milestone struct {
	identifier  int
	trigger     Statement
	occurs      OccurrencePredicate
	instruction InstructionFunc
}

// NewMilestone validates the configuration and constructs an immutable
// Milestone. It fails when neither a trigger nor an occurrence predicate is
// supplied, or when the trigger tree violates a construction invariant.
// Construction performs no I/O.
func NewMilestone(cfg MilestoneConfig) (*Milestone, error) {
	if cfg.Trigger == nil && cfg.Occurs == nil {
		return nil, ErrNoTrigger
	}
	if cfg.Trigger != nil {
		if err := Validate(cfg.Trigger); err != nil {
			return nil, fmt.Errorf("invalid trigger: %w", err)
		}
	}

	return &Milestone{
		identifier:  cfg.Identifier,
		trigger:     cfg.Trigger,
		occurs:      cfg.Occurs,
		instruction: cfg.Instruction,
	}, nil
}

// Identifier returns the caller-assigned identifier, 0 meaning uncategorized.
func (m *Milestone) Identifier() int {
	return m.identifier
}

// IsOccurring reports whether the milestone fires for the snapshot pair.
// The custom predicate takes precedence over the trigger tree.
func (m *Milestone) IsOccurring(previous *ProgressSnapshot, current ProgressSnapshot) bool {
	if m.occurs != nil {
		return m.occurs(previous, current)
	}
	return m.trigger.Evaluate(previous, current)
}

// Instruction renders the event text for the triggering snapshot. Returns ""
// when the milestone carries no instruction renderer.
func (m *Milestone) Instruction(current ProgressSnapshot) string {
	if m.instruction == nil {
		return ""
	}
	return m.instruction(current)
}

// NewStepMilestone builds the step transition milestone: it fires once per
// step or leg change, regardless of any boolean tree.
func NewStepMilestone() *Milestone {
	m, _ := NewMilestone(MilestoneConfig{
		Identifier: StepMilestoneIdentifier,
		Occurs: func(previous *ProgressSnapshot, current ProgressSnapshot) bool {
			if previous == nil {
				return false
			}
			return previous.StepIndex != current.StepIndex || previous.LegIndex != current.LegIndex
		},
		Instruction: func(current ProgressSnapshot) string {
			if step := current.CurrentStep(); step != nil {
				return step.Instruction
			}
			return ""
		},
	})
	return m
}

// NewBannerMilestone builds the banner instruction milestone: it fires when
// the active banner for the current step changes, either because the step
// changed or because a banner activation distance was crossed. The rendered
// instruction is the primary banner text.
func NewBannerMilestone() *Milestone {
	m, _ := NewMilestone(MilestoneConfig{
		Identifier: BannerMilestoneIdentifier,
		Occurs: func(previous *ProgressSnapshot, current ProgressSnapshot) bool {
			if previous == nil {
				return CurrentInstruction(current).Primary != nil
			}
			prev := CurrentInstruction(*previous)
			cur := CurrentInstruction(current)
			if cur.Primary == nil {
				return false
			}
			if prev.Primary == nil {
				return true
			}
			return *prev.Primary != *cur.Primary
		},
		Instruction: func(current ProgressSnapshot) string {
			banner := CurrentInstruction(current)
			if banner.Primary == nil {
				return ""
			}
			return banner.Primary.Text
		},
	})
	return m
}

// NewArrivalMilestone builds the arrival milestone from a plain trigger
// tree: final step of the leg and under arrivalDistance meters remaining.
func NewArrivalMilestone(arrivalDistance float64) *Milestone {
	m, _ := NewMilestone(MilestoneConfig{
		Identifier: ArrivalMilestoneIdentifier,
		Trigger: All(
			Eq(LastStep, Bool(true)),
			Lte(StepDistanceRemaining, Float(arrivalDistance)),
		),
		Instruction: func(current ProgressSnapshot) string {
			if step := current.CurrentStep(); step != nil && step.Instruction != "" {
				return step.Instruction
			}
			return "You have arrived"
		},
	})
	return m
}
