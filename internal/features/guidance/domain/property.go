package domain

// ValueType identifies the type a trigger property yields.
type ValueType string

const (
	// TypeInt marks integer-valued properties.
	TypeInt ValueType = "INT"
	// TypeFloat marks floating-point-valued properties.
	TypeFloat ValueType = "FLOAT"
	// TypeBool marks boolean-valued properties.
	TypeBool ValueType = "BOOL"
)

// Value is a tagged union holding one trigger property value or comparison
// literal. Exactly the field matching Type is meaningful.
type Value struct {
	Type ValueType `json:"type"`
	I    int64     `json:"i,omitempty"`
	F    float64   `json:"f,omitempty"`
	B    bool      `json:"b,omitempty"`
}

// Int wraps an integer literal.
func Int(v int64) Value { return Value{Type: TypeInt, I: v} }

// Float wraps a floating-point literal.
func Float(v float64) Value { return Value{Type: TypeFloat, F: v} }

// Bool wraps a boolean literal.
func Bool(v bool) Value { return Value{Type: TypeBool, B: v} }

// TriggerProperty names a fact extractable from a (previous, current)
// snapshot pair. The set of properties is closed; extraction is stateless
// and side-effect-free.
type TriggerProperty string

const (
	// StepDistanceRemaining is the distance left on the current step, in meters.
	StepDistanceRemaining TriggerProperty = "STEP_DISTANCE_REMAINING"
	// StepDurationRemaining is the expected time left on the current step, in seconds.
	StepDurationRemaining TriggerProperty = "STEP_DURATION_REMAINING"
	// LegDistanceRemaining is the distance left on the current leg, in meters.
	LegDistanceRemaining TriggerProperty = "LEG_DISTANCE_REMAINING"
	// StepIndex is the index of the current step within the leg.
	StepIndex TriggerProperty = "STEP_INDEX"
	// LegIndex is the index of the current leg.
	LegIndex TriggerProperty = "LEG_INDEX"
	// NewStep reports whether the step or leg changed since the previous
	// snapshot. Requires a previous snapshot; degrades to false without one.
	NewStep TriggerProperty = "NEW_STEP"
	// NextStepDistance is the total length of the upcoming step, in meters.
	// Degrades to false on the final step of a leg.
	NextStepDistance TriggerProperty = "NEXT_STEP_DISTANCE"
	// LastStep reports whether the current step is the final step of its leg.
	LastStep TriggerProperty = "LAST_STEP"
	// FirstUpdate reports whether this is the first progress update (no
	// previous snapshot exists).
	FirstUpdate TriggerProperty = "FIRST_UPDATE"
)

// propertyEntry binds a property to its declared type and extraction function.
// Extraction returns ok=false when a required input is absent, in which case
// any comparison on the property evaluates to false.
type propertyEntry struct {
	valueType ValueType
	extract   func(previous *ProgressSnapshot, current ProgressSnapshot) (Value, bool)
}

// propertyRegistry is the closed registry of comparable properties.
var propertyRegistry = map[TriggerProperty]propertyEntry{
	StepDistanceRemaining: {
		valueType: TypeFloat,
		extract: func(_ *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			return Float(current.StepDistanceRemaining), true
		},
	},
	StepDurationRemaining: {
		valueType: TypeFloat,
		extract: func(_ *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			return Float(current.StepDurationRemaining), true
		},
	},
	LegDistanceRemaining: {
		valueType: TypeFloat,
		extract: func(_ *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			return Float(current.LegDistanceRemaining), true
		},
	},
	StepIndex: {
		valueType: TypeInt,
		extract: func(_ *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			return Int(int64(current.StepIndex)), true
		},
	},
	LegIndex: {
		valueType: TypeInt,
		extract: func(_ *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			return Int(int64(current.LegIndex)), true
		},
	},
	NewStep: {
		valueType: TypeBool,
		extract: func(previous *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			if previous == nil {
				return Value{}, false
			}
			changed := previous.StepIndex != current.StepIndex || previous.LegIndex != current.LegIndex
			return Bool(changed), true
		},
	},
	NextStepDistance: {
		valueType: TypeFloat,
		extract: func(_ *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			if current.UpcomingStep == nil {
				return Value{}, false
			}
			return Float(current.UpcomingStep.Distance), true
		},
	},
	LastStep: {
		valueType: TypeBool,
		extract: func(_ *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			return Bool(current.UpcomingStep == nil), true
		},
	},
	FirstUpdate: {
		valueType: TypeBool,
		extract: func(previous *ProgressSnapshot, current ProgressSnapshot) (Value, bool) {
			return Bool(previous == nil), true
		},
	},
}

// PropertyType returns the declared value type of a property and whether the
// property is part of the registry.
func PropertyType(p TriggerProperty) (ValueType, bool) {
	entry, ok := propertyRegistry[p]
	if !ok {
		return "", false
	}
	return entry.valueType, true
}
