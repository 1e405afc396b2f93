// Package pbnjson is a reference-counted JSON document library: it parses
// JSON text into an in-memory tree, builds and queries that tree
// programmatically, serializes it back to text, and validates trees against
// JSON Schema (draft-04 family) via the schema subpackage.
package pbnjson

import (
	"sync/atomic"

	"go4.org/mem"
)

// Kind identifies which of the six JSON value variants a Value holds.
type Kind int

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "invalid"
	}
}

// infiniteRefcount marks a Value as a singleton: Retain/Release never touch
// its counter, and it is never destroyed.
const infiniteRefcount = -1

// Value is one of six JSON variants. A Value is born with an exclusive
// reference (refcount 1) except for the shared singletons returned by Null,
// Bool, EmptyString, and Invalid, whose refcount is conceptually
// infinite and exempt from destruction (spec invariant: singletons are never
// destroyed).
type Value struct {
	kind refc

	b   bool
	num Number
	str string

	// strRO backs a KindString Value built by StringNoCopy: it borrows the
	// caller's byte slice directly instead of copying into str (spec §3.3's
	// no-copy string representation, opted into via ParseOpt.NoCopyStrings).
	// isROStr selects which of str/strRO is live; AsString copies strRO
	// into a fresh string on every call and does not cache the copy.
	strRO   mem.RO
	isROStr bool

	arr *array
	obj *object
}

// refc is the mutable refcount header of every Value. It is stored inline in
// Value; Values are shared through *Value pointers, so every holder sees the
// same counter.
type refc struct {
	kind Kind
	n    int64 // atomic; infiniteRefcount for singletons
}

func newRefc(k Kind) *refc { return &refc{kind: k, n: 1} }

// Kind reports v's variant. The zero Value reports KindInvalid.
func (v *Value) Kind() Kind {
	if v == nil || v.kind.kind == 0 && v.kind.n == 0 {
		return KindInvalid
	}
	return v.kind.kind
}

var (
	sharedInvalid = &Value{kind: refc{kind: KindInvalid, n: infiniteRefcount}}
	sharedNull    = &Value{kind: refc{kind: KindNull, n: infiniteRefcount}}
	sharedTrue    = &Value{kind: refc{kind: KindBool, n: infiniteRefcount}, b: true}
	sharedFalse   = &Value{kind: refc{kind: KindBool, n: infiniteRefcount}, b: false}
	sharedEmptyS  = &Value{kind: refc{kind: KindString, n: infiniteRefcount}, str: ""}
)

// Invalid returns the shared sentinel meaning "no value produced". It is
// distinct from Null in that IsValid is false for it; IsNull is true for both.
func Invalid() *Value { return sharedInvalid }

// Null returns the shared null singleton.
func Null() *Value { return sharedNull }

// Bool returns the shared True or False singleton for b.
func Bool(b bool) *Value {
	if b {
		return sharedTrue
	}
	return sharedFalse
}

// EmptyString returns the shared empty-string singleton.
func EmptyString() *Value { return sharedEmptyS }

// String returns an owned string value. The empty string always returns the
// shared singleton regardless of allocation strategy requested by the
// caller.
func String(s string) *Value {
	if s == "" {
		return sharedEmptyS
	}
	return &Value{kind: refc{kind: KindString, n: 1}, str: s}
}

// StringNoCopy returns an owned string value that borrows b directly rather
// than copying it into a Go string, via a go4.org/mem.RO view (spec §3.3).
// The caller must not mutate b for as long as the returned Value (or any
// Value it is Duplicate'd into materializes from it) may still be read; a
// driver opting a caller into ParseOpt.NoCopyStrings only does this for
// input buffers it itself owns for the parse's duration.
func StringNoCopy(b []byte) *Value {
	if len(b) == 0 {
		return sharedEmptyS
	}
	return &Value{kind: refc{kind: KindString, n: 1}, strRO: mem.B(b), isROStr: true}
}

// Int returns an owned exact-integer number value.
func Int(i int64) *Value {
	return &Value{kind: refc{kind: KindNumber, n: 1}, num: NumberFromInt64(i)}
}

// Double returns an owned IEEE-754 number value. Construction panics if f is
// NaN or infinite (spec invariant 5: a Double is always finite).
func Double(f float64) *Value {
	return &Value{kind: refc{kind: KindNumber, n: 1}, num: NumberFromDouble(f)}
}

// NumberValue wraps an already-constructed Number as an owned Value.
func NumberValue(n Number) *Value {
	return &Value{kind: refc{kind: KindNumber, n: 1}, num: n}
}

// IsValid reports whether v is anything other than the Invalid sentinel.
func (v *Value) IsValid() bool { return v != nil && v.Kind() != KindInvalid }

// IsNull reports whether v is Null or Invalid (both read as "no payload" per
// spec §3.1, though they are not equal to one another).
func (v *Value) IsNull() bool {
	k := v.Kind()
	return k == KindNull || k == KindInvalid
}

// Retain increments v's reference count and returns v, for chaining at call
// sites that store a borrowed reference. Singletons are no-ops.
func (v *Value) Retain() *Value {
	if v == nil || v.kind.n == infiniteRefcount {
		return v
	}
	atomic.AddInt64(&v.kind.n, 1)
	return v
}

// Release decrements v's reference count, destroying v (and, transitively,
// releasing its children) when the count reaches zero. Singletons are
// no-ops: they are never destroyed.
func (v *Value) Release() {
	if v == nil || v.kind.n == infiniteRefcount {
		return
	}
	if atomic.AddInt64(&v.kind.n, -1) > 0 {
		return
	}
	switch v.kind.kind {
	case KindArray:
		v.arr.releaseAll()
	case KindObject:
		v.obj.releaseAll()
	}
}

// RefCount reports v's current reference count, or infiniteRefcount for a
// singleton.
func (v *Value) RefCount() int64 {
	if v == nil {
		return 0
	}
	if v.kind.n == infiniteRefcount {
		return infiniteRefcount
	}
	return atomic.LoadInt64(&v.kind.n)
}

// AsBool returns v's boolean payload, or false if v is not KindBool.
func (v *Value) AsBool() bool {
	if v == nil || v.Kind() != KindBool {
		return false
	}
	return v.b
}

// AsString returns v's string payload, or "" if v is not KindString. A
// no-copy Value (built via StringNoCopy) materializes a fresh Go string on
// every call rather than caching the copy on v, so concurrent readers of a
// shared, retained Value never race on v's fields.
func (v *Value) AsString() string {
	if v == nil || v.Kind() != KindString {
		return ""
	}
	if v.isROStr {
		return v.strRO.StringCopy()
	}
	return v.str
}

// asStringMem returns v's string payload as a mem.RO view, borrowing
// without copying when v is itself a no-copy Value.
func (v *Value) asStringMem() mem.RO {
	if v == nil || v.Kind() != KindString {
		return mem.RO{}
	}
	if v.isROStr {
		return v.strRO
	}
	return mem.S(v.str)
}

// AsNumber returns v's Number payload, or the zero Number if v is not
// KindNumber.
func (v *Value) AsNumber() Number {
	if v == nil || v.Kind() != KindNumber {
		return Number{}
	}
	return v.num
}

// Duplicate returns a deep, independent copy of v: mutating the copy never
// observably affects v (spec testable property 5).
func (v *Value) Duplicate() *Value {
	if v == nil {
		return nil
	}
	switch v.Kind() {
	case KindInvalid:
		return sharedInvalid
	case KindNull:
		return sharedNull
	case KindBool:
		return Bool(v.b)
	case KindNumber:
		return NumberValue(v.num)
	case KindString:
		return String(v.AsString())
	case KindArray:
		out := NewArray(v.arr.len())
		for i := 0; i < v.arr.len(); i++ {
			out.arr.appendOwned(v.arr.at(i).Duplicate())
		}
		return out
	case KindObject:
		out := NewObject(v.obj.len())
		v.obj.forEach(func(k string, val *Value) bool {
			out.obj.putOwned(k, val.Duplicate())
			return true
		})
		return out
	}
	return sharedInvalid
}
