// Package models defines the typed values the parsers produce: the JSON
// value tree and the NGINX log record. Values are plain data; once built
// they are never mutated, and nested values belong exclusively to their
// containing array or object.
package models

// Kind identifies the concrete variant of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindArray
	KindObject
)

// String returns the kind name for debug output.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is one parsed JSON value. It is a closed sum: the only
// implementations are Null, Bool, Int, Float, String, Array, and Object,
// so a consumer switching on the concrete type (or on Kind) handles every
// case.
type Value interface {
	Kind() Kind
	isValue()
}

// Number is the numeric subset of Value, satisfied by Int and Float only.
type Number interface {
	Value
	isNumber()
}

// Null is the JSON null literal.
type Null struct{}

// Bool is a JSON true/false literal.
type Bool bool

// Int is a JSON number without a fractional part, as a 64-bit signed integer.
type Int int64

// Float is a JSON number with a fractional part, as a 64-bit float.
type Float float64

// String is a JSON string literal. The content is taken verbatim from the
// source text; escape sequences are not interpreted.
type String string

// Array is an ordered sequence of values. Order is significant.
type Array []Value

// Object maps unique keys to values. Insertion order is not significant;
// a duplicate key in the source overwrites the earlier value (last write
// wins), which is the model's resolution policy rather than an error.
type Object map[string]Value

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }
func (Array) Kind() Kind  { return KindArray }
func (Object) Kind() Kind { return KindObject }

func (Null) isValue()   {}
func (Bool) isValue()   {}
func (Int) isValue()    {}
func (Float) isValue()  {}
func (String) isValue() {}
func (Array) isValue()  {}
func (Object) isValue() {}

func (Int) isNumber()   {}
func (Float) isNumber() {}
