package models

import (
	"strconv"
	"strings"
)

// ValueKind classifies a statically extracted expression
type ValueKind int

const (
	KindUndefined ValueKind = iota
	KindNull
	KindString
	KindNumber
	KindBoolean
	KindArray
	KindObject
	KindReference // identifier or dotted member access
	KindCall
	KindFunction // arrow function or function expression
	KindSpread
	KindUnknown // any other expression, Text holds its source
)

func (k ValueKind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindReference:
		return "reference"
	case KindCall:
		return "call"
	case KindFunction:
		return "function"
	case KindSpread:
		return "spread"
	default:
		return "unknown"
	}
}

// Value is the analyzer's view of an expression: literals are evaluated,
// everything else is kept as a tagged shape with its source text.
type Value struct {
	Kind   ValueKind
	Text   string  // string content, reference path, callee text or raw source
	Number float64 // KindNumber
	Bool   bool    // KindBoolean
	Items  []Value // array elements, call arguments, spread operand
	Fields []Field // object properties in source order

	// Returns is the identifier a function value evaluates to when its body
	// is a single identifier expression or return statement.
	Returns string

	// Refs are the free identifiers of a KindFunction or KindUnknown value,
	// positioned within Text.
	Refs []IdentRef
}

// IdentRef is one identifier occurrence inside opaque source text
type IdentRef struct {
	Name      string
	Offset    int  // byte offset into Value.Text
	Shorthand bool // `{ Name }` object shorthand
}

// Field is one object property
type Field struct {
	Key   string
	Value Value
}

func String(s string) Value       { return Value{Kind: KindString, Text: s} }
func Number(n float64) Value      { return Value{Kind: KindNumber, Number: n} }
func Boolean(b bool) Value        { return Value{Kind: KindBoolean, Bool: b} }
func Reference(name string) Value { return Value{Kind: KindReference, Text: name} }
func Array(items ...Value) Value  { return Value{Kind: KindArray, Items: items} }
func Object(fields ...Field) Value {
	return Value{Kind: KindObject, Fields: fields}
}

// Get returns the last property named key of an object value
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != KindObject {
		return Value{}, false
	}
	for i := len(v.Fields) - 1; i >= 0; i-- {
		if v.Fields[i].Key == key {
			return v.Fields[i].Value, true
		}
	}
	return Value{}, false
}

// StringValue returns the content of a string literal
func (v Value) StringValue() (string, bool) {
	if v.Kind != KindString {
		return "", false
	}
	return v.Text, true
}

// Strings returns the string literal elements of an array value.
// ok is false if any element is not a string literal.
func (v Value) Strings() (out []string, ok bool) {
	if v.Kind != KindArray {
		return nil, false
	}
	for _, item := range v.Items {
		s, isString := item.StringValue()
		if !isString {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// IsLiteral reports whether the value is fully known at analysis time
func (v Value) IsLiteral() bool {
	switch v.Kind {
	case KindUndefined, KindNull, KindString, KindNumber, KindBoolean:
		return true
	case KindArray:
		for _, item := range v.Items {
			if !item.IsLiteral() {
				return false
			}
		}
		return true
	case KindObject:
		for _, f := range v.Fields {
			if !f.Value.IsLiteral() {
				return false
			}
		}
		return true
	}
	return false
}

// OpaqueNames returns the distinct free identifiers of every function or
// unknown expression inside v, in first-seen order.
func (v Value) OpaqueNames() []string {
	seen := make(map[string]bool)
	var names []string
	var walk func(Value)
	walk = func(v Value) {
		for _, ref := range v.Refs {
			if !seen[ref.Name] {
				seen[ref.Name] = true
				names = append(names, ref.Name)
			}
		}
		for _, item := range v.Items {
			walk(item)
		}
		for _, f := range v.Fields {
			walk(f.Value)
		}
	}
	walk(v)
	return names
}

// TokenName is the identity used when the value names a DI token
func (v Value) TokenName() (string, bool) {
	switch v.Kind {
	case KindReference, KindString:
		return v.Text, v.Text != ""
	case KindFunction:
		return v.Returns, v.Returns != ""
	}
	return "", false
}

func (v Value) String() string {
	switch v.Kind {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindString:
		return strconv.Quote(v.Text)
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'g', -1, 64)
	case KindBoolean:
		return strconv.FormatBool(v.Bool)
	case KindArray:
		parts := make([]string, len(v.Items))
		for i, item := range v.Items {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		parts := make([]string, len(v.Fields))
		for i, f := range v.Fields {
			parts[i] = f.Key + ": " + f.Value.String()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	case KindSpread:
		if len(v.Items) == 1 {
			return "..." + v.Items[0].String()
		}
	}
	return v.Text
}
