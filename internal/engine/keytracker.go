package engine

// KeyTracker decides whether the next scalar token a decoder hands back is
// an object key or a value, given only a stream of begin/end-container
// events. Every concrete TokenSource wrapping a generic decoder (whose
// Token() method does not itself distinguish "key" from "string") needs
// this same bookkeeping; it lives here once so source/json and
// source/gojson don't each carry their own byte-for-byte copy of it.
type KeyTracker struct {
	stack []ktFrame
}

type ktFrame struct {
	isObject     bool
	expectingKey bool
}

// PushObject records entry into a new object; its first scalar, if any, is
// expected to be a key.
func (t *KeyTracker) PushObject() {
	t.stack = append(t.stack, ktFrame{isObject: true, expectingKey: true})
}

// PushArray records entry into a new array.
func (t *KeyTracker) PushArray() {
	t.stack = append(t.stack, ktFrame{})
}

// Pop closes the innermost container and, if the container enclosing it is
// an object, flips it back to expecting a key (the container just closed
// was itself a value).
func (t *KeyTracker) Pop() {
	if n := len(t.stack); n > 0 {
		t.stack = t.stack[:n-1]
	}
	t.markValueConsumed()
}

// NextStringIsKey reports whether an encountered string token is the next
// object key rather than a string value, advancing the tracker's
// expecting-key state either way.
func (t *KeyTracker) NextStringIsKey() bool {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.isObject && top.expectingKey {
			top.expectingKey = false
			return true
		}
	}
	t.markValueConsumed()
	return false
}

// MarkValueConsumed records that a non-string scalar (bool, number, or
// null) was just read as a value, so the innermost enclosing object now
// expects a key again.
func (t *KeyTracker) MarkValueConsumed() { t.markValueConsumed() }

func (t *KeyTracker) markValueConsumed() {
	if n := len(t.stack); n > 0 {
		top := &t.stack[n-1]
		if top.isObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}
