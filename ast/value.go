package ast

import (
	"fmt"
	"strconv"
)

// Value is a GraphQL input value: a literal or a variable reference. Field
// and directive arguments, list elements and input object field values are
// all Values. Numeric variants keep their lexical form (the exact source
// text) rather than eagerly parsing to a machine number, so a large integer
// literal can still coerce losslessly into a Float later; AsInt32/AsFloat64
// do the actual parse on access.
//
// Value is implemented by NullValue, EnumValue, VariableValue, StringValue,
// IntValue, FloatValue, BooleanValue, ListValue and ObjectValue. A type
// switch over Value is the idiomatic way to inspect one; the interface
// itself is a closed set by convention, not by a sealed marker, matching
// Go's usual open-interface style.
type Value interface {
	Located
	isValue()
}

type NullValue struct{ Loc Span }

func (NullValue) isValue()          {}
func (v NullValue) Location() Span  { return v.Loc }

type EnumValue struct {
	Value Name
	Loc   Span
}

func (EnumValue) isValue()         {}
func (v EnumValue) Location() Span { return v.Loc }

// VariableValue is a `$name` reference used inside an argument, default
// value, or nested list/object value.
type VariableValue struct {
	Name Name
	Loc  Span
}

func (VariableValue) isValue()         {}
func (v VariableValue) Location() Span { return v.Loc }

type StringValue struct {
	Value string
	Block bool // true when the source used a """block string"""
	Loc   Span
}

func (StringValue) isValue()         {}
func (v StringValue) Location() Span { return v.Loc }

// IntValue preserves the exact lexical digits (e.g. "-007" would already
// have been rejected by the parser, but "123456789012345678901234567890" is
// kept intact) so a downstream Float coercion loses no precision.
type IntValue struct {
	Lexical string
	Loc     Span
}

func (IntValue) isValue()         {}
func (v IntValue) Location() Span { return v.Loc }

// AsInt32 parses the lexical form as the spec-mandated signed 32-bit Int
// scalar representation.
func (v IntValue) AsInt32() (int32, error) {
	n, err := strconv.ParseInt(v.Lexical, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("ast: %q is not a valid Int: %w", v.Lexical, err)
	}
	return int32(n), nil
}

// AsFloat64 parses the lexical form as an IEEE-754 double, used when an
// IntValue coerces into a Float-typed position.
func (v IntValue) AsFloat64() (float64, error) {
	f, err := strconv.ParseFloat(v.Lexical, 64)
	if err != nil {
		return 0, fmt.Errorf("ast: %q is not a valid Float: %w", v.Lexical, err)
	}
	return f, nil
}

type FloatValue struct {
	Lexical string
	Loc     Span
}

func (FloatValue) isValue()         {}
func (v FloatValue) Location() Span { return v.Loc }

func (v FloatValue) AsFloat64() (float64, error) {
	f, err := strconv.ParseFloat(v.Lexical, 64)
	if err != nil {
		return 0, fmt.Errorf("ast: %q is not a valid Float: %w", v.Lexical, err)
	}
	return f, nil
}

type BooleanValue struct {
	Value bool
	Loc   Span
}

func (BooleanValue) isValue()         {}
func (v BooleanValue) Location() Span { return v.Loc }

type ListValue struct {
	Values []Value
	Loc    Span
}

func (ListValue) isValue()         {}
func (v ListValue) Location() Span { return v.Loc }

// ObjectField is one `name: value` pair of an ObjectValue.
type ObjectField struct {
	Name  Name
	Value Value
	Loc   Span
}

type ObjectValue struct {
	Fields []ObjectField
	Loc    Span
}

func (ObjectValue) isValue()         {}
func (v ObjectValue) Location() Span { return v.Loc }
