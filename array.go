package pbnjson

// smallBufN is the number of array slots held inline in the array header
// before a heap bucket is allocated (spec §3.4).
const smallBufN = 8

// array is the backing store for a KindArray Value: values.inline holds the
// first smallBufN elements without allocation; once size exceeds smallBufN
// (or from the start, when NewArray's capHint exceeds smallBufN) the array
// uses a heap-backed slice and stays there.
type array struct {
	inline [smallBufN]*Value
	n      int
	heap   []*Value // nil until the array has migrated off the inline buffer
}

// NewArray returns an owned, empty array Value. capHint is a hint only: when
// it exceeds smallBufN, a heap bucket of that capacity is allocated up front
// and the inline buffer is not used.
func NewArray(capHint int) *Value {
	a := &array{}
	if capHint > smallBufN {
		a.heap = make([]*Value, 0, capHint)
	}
	return &Value{kind: refc{kind: KindArray, n: 1}, arr: a}
}

// NewArrayFrom builds an owned array from values in order, consuming
// (taking ownership of) each one (spec §9 "Variadic constructors").
func NewArrayFrom(values ...*Value) *Value {
	v := NewArray(len(values))
	for _, item := range values {
		v.arr.appendOwned(item)
	}
	return v
}

func (a *array) len() int { return a.n }

func (a *array) at(i int) *Value {
	if i < 0 || i >= a.n {
		return sharedInvalid
	}
	if a.heap != nil {
		return a.heap[i]
	}
	return a.inline[i]
}

// set replaces the element at i, taking ownership of v. An i within
// [0, n) overwrites in place; an i at or past the end grows the
// array with Null padding up to i before storing v (mirroring the original
// C jarray_put_unsafe's grow-on-write behavior). A negative i is rejected
// and v is returned to the caller unconsumed.
func (a *array) set(i int, v *Value) error {
	if i < 0 {
		return &Issue{Code: ErrRange, Message: "array index out of range"}
	}
	if i >= a.n {
		for a.n < i {
			a.appendOwned(Null())
		}
		a.appendOwned(v)
		return nil
	}
	if a.heap != nil {
		a.heap[i].Release()
		a.heap[i] = v
		return nil
	}
	a.inline[i].Release()
	a.inline[i] = v
	return nil
}

// migrate copies the inline buffer into a heap slice with the requested
// extra capacity, called exactly once when the array first exceeds
// smallBufN elements.
func (a *array) migrate(extraCap int) {
	if a.heap != nil {
		return
	}
	h := make([]*Value, a.n, a.n+extraCap)
	copy(h, a.inline[:a.n])
	a.heap = h
}

// appendOwned takes ownership of v and appends it.
func (a *array) appendOwned(v *Value) {
	if a.heap == nil && a.n < smallBufN {
		a.inline[a.n] = v
		a.n++
		return
	}
	a.migrate(smallBufN)
	a.heap = append(a.heap, v)
	a.n++
}

// insertOwned takes ownership of v and inserts it at index i, shifting
// later elements up by one.
func (a *array) insertOwned(i int, v *Value) {
	if i < 0 {
		i = 0
	}
	if i >= a.n {
		a.appendOwned(v)
		return
	}
	a.migrate(smallBufN)
	a.heap = append(a.heap, nil)
	copy(a.heap[i+1:], a.heap[i:a.n])
	a.heap[i] = v
	a.n++
}

// removeAt releases and removes the element at i, shifting later elements
// down by one. Removed trailing slots are nulled so a stale read observes
// Invalid rather than dangling memory (spec §3.4).
func (a *array) removeAt(i int) {
	if i < 0 || i >= a.n {
		return
	}
	if a.heap != nil {
		a.heap[i].Release()
		copy(a.heap[i:], a.heap[i+1:a.n])
		a.heap[a.n-1] = nil
		a.n--
		return
	}
	a.inline[i].Release()
	copy(a.inline[i:], a.inline[i+1:a.n])
	a.inline[a.n-1] = nil
	a.n--
}

// ownershipMode selects how splice treats the source range's elements.
type ownershipMode int

const (
	// OwnershipTransfer vacates the source slot; the destination takes the
	// existing reference with no refcount change.
	OwnershipTransfer ownershipMode = iota
	// OwnershipCopy deep-copies each source element (Duplicate).
	OwnershipCopy
	// OwnershipNoChange bumps the refcount of each source element (the
	// source keeps its own reference too).
	OwnershipNoChange
)

// splice replaces dst[dstIndex : dstIndex+toRemove] with a projection of
// src[begin:end] chosen by mode (spec §4.1). appendOwned, insertOwned and
// removeAt above mutate the array directly and do not go through it.
func (a *array) splice(dstIndex, toRemove int, src *array, begin, end int, mode ownershipMode) {
	if dstIndex < 0 {
		dstIndex = 0
	}
	if dstIndex > a.n {
		dstIndex = a.n
	}
	if toRemove < 0 {
		toRemove = 0
	}
	if dstIndex+toRemove > a.n {
		toRemove = a.n - dstIndex
	}

	replacement := make([]*Value, 0, end-begin)
	for i := begin; i < end; i++ {
		switch mode {
		case OwnershipCopy:
			replacement = append(replacement, src.at(i).Duplicate())
		case OwnershipNoChange:
			replacement = append(replacement, src.at(i).Retain())
		default: // OwnershipTransfer
			replacement = append(replacement, src.at(i))
			if src != a {
				if src.heap != nil {
					src.heap[i] = nil
				} else {
					src.inline[i] = nil
				}
			}
		}
	}

	for i := dstIndex; i < dstIndex+toRemove; i++ {
		a.at(i).Release()
	}

	if a.heap == nil && a.n-toRemove+len(replacement) > smallBufN {
		a.migrate(len(replacement))
	}

	if a.heap != nil {
		tail := append([]*Value{}, a.heap[dstIndex+toRemove:a.n]...)
		a.heap = append(a.heap[:dstIndex], replacement...)
		a.heap = append(a.heap, tail...)
		a.n = len(a.heap)
		return
	}

	tail := append([]*Value{}, a.inline[dstIndex+toRemove:a.n]...)
	n := dstIndex
	for _, v := range replacement {
		a.inline[n] = v
		n++
	}
	for _, v := range tail {
		a.inline[n] = v
		n++
	}
	a.n = n
}

func (a *array) releaseAll() {
	for i := 0; i < a.n; i++ {
		a.at(i).Release()
	}
}

func (a *array) forEach(fn func(i int, v *Value) bool) {
	for i := 0; i < a.n; i++ {
		if !fn(i, a.at(i)) {
			return
		}
	}
}

// ArrayLen returns v's element count, or 0 if v is not an array.
func (v *Value) ArrayLen() int {
	if v.Kind() != KindArray {
		return 0
	}
	return v.arr.len()
}

// ArrayGet returns a borrowed reference to the element at i, or Invalid if v
// is not an array or i is out of range.
func (v *Value) ArrayGet(i int) *Value {
	if v.Kind() != KindArray {
		return sharedInvalid
	}
	return v.arr.at(i)
}

// ArrayAppend consumes elem, appending it to v. Cycle-checked: if elem's
// subtree contains v, the insertion is rejected and elem is released.
func (v *Value) ArrayAppend(elem *Value) error {
	if v.Kind() != KindArray {
		elem.Release()
		return &Issue{Code: ErrTypeMismatch, Message: "ArrayAppend: not an array"}
	}
	if wouldCycle(v, elem) {
		elem.Release()
		return &Issue{Code: ErrCycleDetected, Message: "insertion would create a cycle"}
	}
	v.arr.appendOwned(elem)
	return nil
}

// ArrayInsert consumes elem, inserting it at index i.
func (v *Value) ArrayInsert(i int, elem *Value) error {
	if v.Kind() != KindArray {
		elem.Release()
		return &Issue{Code: ErrTypeMismatch, Message: "ArrayInsert: not an array"}
	}
	if wouldCycle(v, elem) {
		elem.Release()
		return &Issue{Code: ErrCycleDetected, Message: "insertion would create a cycle"}
	}
	v.arr.insertOwned(i, elem)
	return nil
}

// ArrayRemove releases and removes the element at i.
func (v *Value) ArrayRemove(i int) {
	if v.Kind() != KindArray {
		return
	}
	v.arr.removeAt(i)
}

// ArrayPut consumes elem, replacing the element at i.
func (v *Value) ArrayPut(i int, elem *Value) error {
	if v.Kind() != KindArray {
		elem.Release()
		return &Issue{Code: ErrTypeMismatch, Message: "ArrayPut: not an array"}
	}
	if wouldCycle(v, elem) {
		elem.Release()
		return &Issue{Code: ErrCycleDetected, Message: "insertion would create a cycle"}
	}
	if err := v.arr.set(i, elem); err != nil {
		elem.Release()
		return err
	}
	return nil
}

// ArraySplice replaces v[dstIndex:dstIndex+toRemove] with src[begin:end]
// under the given ownership mode (spec §4.1).
func (v *Value) ArraySplice(dstIndex, toRemove int, src *Value, begin, end int, mode ownershipMode) error {
	if v.Kind() != KindArray || src.Kind() != KindArray {
		return &Issue{Code: ErrTypeMismatch, Message: "ArraySplice: not an array"}
	}
	v.arr.splice(dstIndex, toRemove, src.arr, begin, end, mode)
	return nil
}
