// File: value.go
// Title: KQL Value Model
// Description: Tagged union of the values a key can hold. Identifier values
//              are references to other keys and are only followed when a
//              caller resolves them explicitly.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-03
// Modified: 2026-10-03
//
// Change History:
// - 2026-10-03 v0.1.0: Initial implementation

package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of Value
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindIdentifier
	KindList
)

// String returns the lower-case kind name
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindIdentifier:
		return "identifier"
	case KindList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a storable value. Only the field matching Kind is meaningful.
type Value struct {
	Kind  Kind
	Int   int32
	Float float32
	Str   string
	List  *List
}

// List is an ordered sequence of values. It is held by pointer so that
// APPEND and PREPEND mutate the stored list in place.
type List struct {
	Items []Value
}

// Int returns an integer value
func Int(i int32) Value {
	return Value{Kind: KindInt, Int: i}
}

// Float returns a float value
func Float(f float32) Value {
	return Value{Kind: KindFloat, Float: f}
}

// String returns a literal string value
func String(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// Identifier returns a reference to the key name
func Identifier(name string) Value {
	return Value{Kind: KindIdentifier, Str: name}
}

// NewList returns a list value owning items
func NewList(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: KindList, List: &List{Items: items}}
}

// IsNumeric reports whether the value is an int or a float
func (v Value) IsNumeric() bool {
	return v.Kind == KindInt || v.Kind == KindFloat
}

// IsIdentifier reports whether the value refers to another key
func (v Value) IsIdentifier() bool {
	return v.Kind == KindIdentifier
}

// IsList reports whether the value is a list
func (v Value) IsList() bool {
	return v.Kind == KindList
}

// Items returns the list elements, or nil for non-list values
func (v Value) Items() []Value {
	if v.Kind != KindList || v.List == nil {
		return nil
	}
	return v.List.Items
}

// String renders the value the way GET and LIST print it
func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return "int: " + strconv.FormatInt(int64(v.Int), 10)
	case KindFloat:
		return fmt.Sprintf("float: %f", v.Float)
	case KindString:
		return "str: " + v.Str
	case KindIdentifier:
		return "id:" + v.Str
	case KindList:
		items := v.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return "list: [" + strings.Join(parts, ", ") + "]"
	default:
		return "unknown"
	}
}

// Literal renders the value back in query syntax, e.g. [1, 'a', _b]
func (v Value) Literal() string {
	switch v.Kind {
	case KindInt:
		return strconv.FormatInt(int64(v.Int), 10)
	case KindFloat:
		return strconv.FormatFloat(float64(v.Float), 'f', -1, 32)
	case KindString:
		if strings.Contains(v.Str, "'") {
			return `"` + v.Str + `"`
		}
		return "'" + v.Str + "'"
	case KindIdentifier:
		return v.Str
	case KindList:
		items := v.Items()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.Literal()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return "?"
	}
}

// Size returns the approximate memory used by the value in bytes
func (v Value) Size() int {
	switch v.Kind {
	case KindInt, KindFloat:
		return 4
	case KindString, KindIdentifier:
		return len(v.Str)
	case KindList:
		total := 0
		for _, item := range v.Items() {
			total += item.Size()
		}
		return total
	default:
		return 0
	}
}

// Clone returns a deep copy; lists in the copy share no storage with v
func (v Value) Clone() Value {
	if v.Kind != KindList {
		return v
	}
	items := v.Items()
	cloned := make([]Value, len(items))
	for i, item := range items {
		cloned[i] = item.Clone()
	}
	return NewList(cloned...)
}

// Equal reports structural equality
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case KindInt:
		return v.Int == other.Int
	case KindFloat:
		return v.Float == other.Float
	case KindString, KindIdentifier:
		return v.Str == other.Str
	case KindList:
		a, b := v.Items(), other.Items()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
