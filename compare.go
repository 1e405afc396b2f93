package pbnjson

import "sort"

// kindRank orders Kind values for cross-kind comparison (spec §4.1
// "Ordering: Different kinds: by a fixed kind rank").
func kindRank(k Kind) int {
	switch k {
	case KindInvalid:
		return 0
	case KindNull:
		return 1
	case KindBool:
		return 2
	case KindNumber:
		return 3
	case KindString:
		return 4
	case KindArray:
		return 5
	case KindObject:
		return 6
	default:
		return 0
	}
}

// Equal reports whether a and b are structurally equal: same kind, and for
// containers, same cardinality with every child equal (spec §4.1).
func Equal(a, b *Value) bool {
	return Compare(a, b) == 0
}

// Compare returns a total order over values (spec §4.1 "Ordering"):
// different kinds order by kindRank; same-kind values order lexicographically
// (strings), elementwise with shorter-on-tie (arrays), by sorted keys then
// values (objects), or by numeric value (numbers).
func Compare(a, b *Value) int {
	ak, bk := a.Kind(), b.Kind()
	if ak != bk {
		ar, br := kindRank(ak), kindRank(bk)
		switch {
		case ar < br:
			return -1
		case ar > br:
			return 1
		default:
			return 0
		}
	}
	switch ak {
	case KindInvalid, KindNull:
		return 0
	case KindBool:
		switch {
		case a.b == b.b:
			return 0
		case !a.b && b.b:
			return -1
		default:
			return 1
		}
	case KindNumber:
		if r, ok := a.num.Compare(b.num); ok {
			return r
		}
		return 0
	case KindString:
		as, bs := a.AsString(), b.AsString()
		switch {
		case as < bs:
			return -1
		case as > bs:
			return 1
		default:
			return 0
		}
	case KindArray:
		return compareArrays(a.arr, b.arr)
	case KindObject:
		return compareObjects(a.obj, b.obj)
	default:
		return 0
	}
}

func compareArrays(a, b *array) int {
	n := a.len()
	if b.len() < n {
		n = b.len()
	}
	for i := 0; i < n; i++ {
		if c := Compare(a.at(i), b.at(i)); c != 0 {
			return c
		}
	}
	switch {
	case a.len() < b.len():
		return -1
	case a.len() > b.len():
		return 1
	default:
		return 0
	}
}

func compareObjects(a, b *object) int {
	switch {
	case a.len() < b.len():
		return -1
	case a.len() > b.len():
		return 1
	}
	ak := sortedKeys(a)
	bk := sortedKeys(b)
	for i := range ak {
		if ak[i] != bk[i] {
			if ak[i] < bk[i] {
				return -1
			}
			return 1
		}
		av, _ := a.get(ak[i])
		bv, _ := b.get(bk[i])
		if c := Compare(av, bv); c != 0 {
			return c
		}
	}
	return 0
}

func sortedKeys(o *object) []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	sort.Strings(keys)
	return keys
}

// HashKey computes the djb2 hash of a string-kind value's bytes (spec
// §3.5/§4.1 "Hashing: only string keys are hashed"). It returns 0, false for
// a non-string value.
func HashKey(v *Value) (uint32, bool) {
	if v.Kind() != KindString {
		return 0, false
	}
	return djb2Hash(v.AsString()), true
}
