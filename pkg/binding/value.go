package binding

import (
	"fmt"
	"strconv"
	"strings"
)

type ValueKind int

const (
	KindNil ValueKind = iota
	KindInt
	KindFloat
	KindBool
	KindString
	KindList
)

// Value represents a dynamically-typed value bound in some store.
// The zero Value is Undefined: no binding exists at all. A defined
// binding whose value is empty is KindNil with Valid set, which is a
// different thing.
type Value struct {
	Kind  ValueKind
	I64   int64
	F64   float64
	Bool  bool
	Str   string
	List  []Value
	Valid bool
}

// Undefined is the "no binding" sentinel.
var Undefined = Value{}

// Defined reports whether a binding exists (even if its value is nil).
func (v Value) Defined() bool {
	return v.Valid
}

// String renders the value as a string.
func (v Value) String() string {
	if !v.Valid {
		return "undefined"
	}

	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.I64)
	case KindFloat:
		return fmt.Sprintf("%g", v.F64)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindString:
		return v.Str
	case KindList:
		parts := make([]string, 0, len(v.List))
		for _, e := range v.List {
			parts = append(parts, e.String())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "nil"
	}
}

// Append returns the list value with an element appended.
func (v Value) Append(elem Value) (Value, error) {
	if !v.Valid || v.Kind != KindList {
		return Value{}, fmt.Errorf("cannot append to %s value", v)
	}

	out := v
	out.List = append(append([]Value(nil), v.List...), elem)
	return out, nil
}

// NewNil creates a defined-but-empty Value.
func NewNil() Value {
	return Value{Kind: KindNil, Valid: true}
}

// NewInt creates a new integer Value.
func NewInt(i int64) Value {
	return Value{Kind: KindInt, I64: i, Valid: true}
}

// NewFloat creates a new float Value.
func NewFloat(f float64) Value {
	return Value{Kind: KindFloat, F64: f, Valid: true}
}

// NewBool creates a new boolean Value.
func NewBool(b bool) Value {
	return Value{Kind: KindBool, Bool: b, Valid: true}
}

// NewString creates a new string Value.
func NewString(s string) Value {
	return Value{Kind: KindString, Str: s, Valid: true}
}

// NewList creates a new list Value.
func NewList(elems ...Value) Value {
	return Value{Kind: KindList, List: elems, Valid: true}
}

// ParseLiteral parses a script literal: "nil", "[]", "true"/"false",
// a quoted string, an integer, or a float.
func ParseLiteral(lit string) (Value, error) {
	switch lit {
	case "nil":
		return NewNil(), nil
	case "[]":
		return NewList(), nil
	case "true":
		return NewBool(true), nil
	case "false":
		return NewBool(false), nil
	}

	if len(lit) >= 2 && lit[0] == '"' && lit[len(lit)-1] == '"' {
		return NewString(lit[1 : len(lit)-1]), nil
	}

	if i, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return NewInt(i), nil
	}

	if f, err := strconv.ParseFloat(lit, 64); err == nil {
		return NewFloat(f), nil
	}

	return Value{}, fmt.Errorf("unsupported literal: %q", lit)
}
