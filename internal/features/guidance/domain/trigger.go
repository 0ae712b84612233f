package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNilStatement is returned when a trigger tree contains a nil node.
	ErrNilStatement = errors.New("trigger statement is nil")
	// ErrUnknownProperty is returned when a comparison names a property
	// outside the registry.
	ErrUnknownProperty = errors.New("unknown trigger property")
	// ErrLiteralTypeMismatch is returned when a comparison literal's type
	// disagrees with the property's declared type.
	ErrLiteralTypeMismatch = errors.New("literal type does not match property type")
	// ErrBadOperator is returned when an ordering operator is applied to a
	// boolean property.
	ErrBadOperator = errors.New("ordering operator on boolean property")
	// ErrTooFewChildren is returned when a compound statement has fewer than
	// two children.
	ErrTooFewChildren = errors.New("compound statement requires at least two children")
)

// Operator is a comparison operator.
type Operator string

const (
	OpEq  Operator = "EQ"
	OpNeq Operator = "NEQ"
	OpLt  Operator = "LT"
	OpLte Operator = "LTE"
	OpGt  Operator = "GT"
	OpGte Operator = "GTE"
)

// Statement is one node of a trigger expression tree. A tree is immutable
// once built and evaluation never mutates it; identical snapshot pairs yield
// identical results.
type Statement interface {
	// Evaluate reports whether the statement holds for the snapshot pair.
	// previous is nil on the first update; comparisons that require history
	// evaluate to false rather than failing.
	Evaluate(previous *ProgressSnapshot, current ProgressSnapshot) bool

	// validate checks construction-time invariants. It also seals the
	// interface to the node types defined in this package.
	validate() error
}

// comparison is a leaf node comparing one property against a literal.
type comparison struct {
	property TriggerProperty
	operator Operator
	literal  Value
}

// compound is an AND/OR over two or more child statements.
type compound struct {
	all      bool
	children []Statement
}

// Eq builds a statement that holds when property equals literal.
func Eq(property TriggerProperty, literal Value) Statement {
	return comparison{property: property, operator: OpEq, literal: literal}
}

// Neq builds a statement that holds when property does not equal literal.
func Neq(property TriggerProperty, literal Value) Statement {
	return comparison{property: property, operator: OpNeq, literal: literal}
}

// Lt builds a statement that holds when property is strictly less than literal.
func Lt(property TriggerProperty, literal Value) Statement {
	return comparison{property: property, operator: OpLt, literal: literal}
}

// Lte builds a statement that holds when property is at most literal.
func Lte(property TriggerProperty, literal Value) Statement {
	return comparison{property: property, operator: OpLte, literal: literal}
}

// Gt builds a statement that holds when property is strictly greater than literal.
func Gt(property TriggerProperty, literal Value) Statement {
	return comparison{property: property, operator: OpGt, literal: literal}
}

// Gte builds a statement that holds when property is at least literal.
func Gte(property TriggerProperty, literal Value) Statement {
	return comparison{property: property, operator: OpGte, literal: literal}
}

// All builds a statement that holds when every child holds (logical AND).
func All(children ...Statement) Statement {
	return compound{all: true, children: children}
}

// Any builds a statement that holds when at least one child holds (logical OR).
func Any(children ...Statement) Statement {
	return compound{all: false, children: children}
}

// Validate checks a trigger tree's construction invariants: known properties,
// literal types matching property types, comparison operators applicable to
// the property's type, and at least two children per compound node.
func Validate(s Statement) error {
	if s == nil {
		return ErrNilStatement
	}
	return s.validate()
}

func (c comparison) validate() error {
	valueType, ok := PropertyType(c.property)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, c.property)
	}
	if c.literal.Type != valueType {
		return fmt.Errorf("%w: property %s is %s, literal is %s",
			ErrLiteralTypeMismatch, c.property, valueType, c.literal.Type)
	}
	if valueType == TypeBool && c.operator != OpEq && c.operator != OpNeq {
		return fmt.Errorf("%w: %s %s", ErrBadOperator, c.property, c.operator)
	}
	return nil
}

func (c compound) validate() error {
	if len(c.children) < 2 {
		return fmt.Errorf("%w: got %d", ErrTooFewChildren, len(c.children))
	}
	for _, child := range c.children {
		if child == nil {
			return ErrNilStatement
		}
		if err := child.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Evaluate extracts the property value and applies the operator against the
// literal. Missing required inputs and type disagreements evaluate to false.
func (c comparison) Evaluate(previous *ProgressSnapshot, current ProgressSnapshot) bool {
	entry, ok := propertyRegistry[c.property]
	if !ok {
		return false
	}
	value, ok := entry.extract(previous, current)
	if !ok {
		return false
	}
	if value.Type != c.literal.Type {
		return false
	}

	switch value.Type {
	case TypeInt:
		return compareOrdered(value.I, c.literal.I, c.operator)
	case TypeFloat:
		return compareOrdered(value.F, c.literal.F, c.operator)
	case TypeBool:
		if c.operator == OpNeq {
			return value.B != c.literal.B
		}
		return value.B == c.literal.B
	}
	return false
}

// Evaluate short-circuits left to right.
func (c compound) Evaluate(previous *ProgressSnapshot, current ProgressSnapshot) bool {
	if c.all {
		for _, child := range c.children {
			if !child.Evaluate(previous, current) {
				return false
			}
		}
		return true
	}
	for _, child := range c.children {
		if child.Evaluate(previous, current) {
			return true
		}
	}
	return false
}

func compareOrdered[T int64 | float64](value, literal T, op Operator) bool {
	switch op {
	case OpEq:
		return value == literal
	case OpNeq:
		return value != literal
	case OpLt:
		return value < literal
	case OpLte:
		return value <= literal
	case OpGt:
		return value > literal
	case OpGte:
		return value >= literal
	}
	return false
}
