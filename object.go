package pbnjson

// object is the backing store for a KindObject Value: a string-keyed map
// with insertion-order-irrelevant semantics (spec §3.5). Key order is
// unspecified but stable across reads without mutation, so entries are kept
// in insertion order for stable iteration rather than for any semantic
// guarantee.
type object struct {
	keys   []string
	values map[string]*Value
}

// NewObject returns an owned, empty object Value. capHint preallocates the
// backing map.
func NewObject(capHint int) *Value {
	if capHint < 0 {
		capHint = 0
	}
	return &Value{kind: refc{kind: KindObject, n: 1}, obj: &object{values: make(map[string]*Value, capHint)}}
}

// KV is one key/value pair for NewObjectFrom.
type KV struct {
	Key   string
	Value *Value
}

// NewObjectFrom builds an owned object from pairs in order, consuming
// (taking ownership of) each value (spec §9 "Variadic constructors"). A
// later pair with a duplicate key releases the earlier value and replaces
// it, matching object_put's last-write-wins contract.
func NewObjectFrom(pairs ...KV) *Value {
	v := NewObject(len(pairs))
	for _, kv := range pairs {
		v.obj.putOwned(kv.Key, kv.Value)
	}
	return v
}

func (o *object) len() int { return len(o.keys) }

func (o *object) get(key string) (*Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// putOwned takes ownership of val, inserting or overwriting key. A
// pre-existing value for key is released (spec invariant 3: no two entries
// share a byte-equal key).
func (o *object) putOwned(key string, val *Value) {
	if old, ok := o.values[key]; ok {
		old.Release()
		o.values[key] = val
		return
	}
	o.keys = append(o.keys, key)
	o.values[key] = val
}

func (o *object) remove(key string) {
	v, ok := o.values[key]
	if !ok {
		return
	}
	v.Release()
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
}

func (o *object) releaseAll() {
	for _, k := range o.keys {
		o.values[k].Release()
	}
}

// forEach visits entries in insertion order, stopping early if fn returns
// false.
func (o *object) forEach(fn func(key string, v *Value) bool) {
	for _, k := range o.keys {
		if !fn(k, o.values[k]) {
			return
		}
	}
}

// djb2Hash hashes key bytes per spec §3.5 ("Hash is djb2 over the key
// bytes").
func djb2Hash(key string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(key); i++ {
		h = h*33 + uint32(key[i])
	}
	return h
}

// ObjectLen returns v's entry count, or 0 if v is not an object.
func (v *Value) ObjectLen() int {
	if v.Kind() != KindObject {
		return 0
	}
	return v.obj.len()
}

// ObjectGet returns a borrowed reference to the value stored at key, or
// Invalid if v is not an object or key is absent.
func (v *Value) ObjectGet(key string) *Value {
	if v.Kind() != KindObject {
		return sharedInvalid
	}
	if val, ok := v.obj.get(key); ok {
		return val
	}
	return sharedInvalid
}

// ObjectHas reports whether key is present in v.
func (v *Value) ObjectHas(key string) bool {
	if v.Kind() != KindObject {
		return false
	}
	_, ok := v.obj.get(key)
	return ok
}

// ObjectKeys returns v's keys in insertion order.
func (v *Value) ObjectKeys() []string {
	if v.Kind() != KindObject {
		return nil
	}
	out := make([]string, len(v.obj.keys))
	copy(out, v.obj.keys)
	return out
}

// ObjectPut consumes key and val, transferring ownership of both on success
// and on failure (spec §4.1): key must be a non-empty string Value, and the
// insertion must not create a cycle.
func (v *Value) ObjectPut(key *Value, val *Value) error {
	defer key.Release()
	if v.Kind() != KindObject {
		val.Release()
		return &Issue{Code: ErrTypeMismatch, Message: "ObjectPut: not an object"}
	}
	keyStr := key.AsString()
	if key.Kind() != KindString || keyStr == "" {
		val.Release()
		return &Issue{Code: ErrTypeMismatch, Message: "ObjectPut: key must be a non-empty string"}
	}
	if wouldCycle(v, val) {
		val.Release()
		return &Issue{Code: ErrCycleDetected, Message: "insertion would create a cycle"}
	}
	v.obj.putOwned(keyStr, val)
	return nil
}

// ObjectSet is ObjectPut's borrowed-reference convenience form: it
// duplicates val (and bumps nothing for the plain-string key) instead of
// consuming it.
func (v *Value) ObjectSet(key string, val *Value) error {
	return v.ObjectPut(String(key), val.Duplicate())
}

// ObjectRemove releases and removes the entry at key, if present.
func (v *Value) ObjectRemove(key string) {
	if v.Kind() != KindObject {
		return
	}
	v.obj.remove(key)
}
