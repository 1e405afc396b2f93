package pbnjson

// Visitor receives enter/exit callbacks during a Walk (spec §4.9). Enter is
// called before a container's children are visited; Exit after. Returning
// false from either short-circuits the remainder of the walk.
type Visitor struct {
	// EnterValue is called for every value, including containers, before
	// their children (if any) are visited.
	EnterValue func(path string, v *Value) bool
	// ExitValue is called for every container after its children have all
	// been visited (or the walk was short-circuited within them). It is not
	// called for scalars.
	ExitValue func(path string, v *Value) bool
	// Key is called for each object entry's key before its value is
	// visited, in the same relative position EnterValue for the value
	// would occupy.
	Key func(path, key string) bool
}

// Walk traverses v depth-first, calling back into visit. The Generator
// drives its whole tree-to-bytes pass through Walk (spec §4.9) instead of
// hand-rolling its own recursion; Equal and EnumNode's structural-equality
// check stay on their own direct recursion (compare.go) since they compare
// two trees in lockstep, which Walk's single-tree callback shape does not
// fit.
func Walk(v *Value, visit Visitor) {
	walk("", v, visit)
}

func walk(path string, v *Value, visit Visitor) bool {
	if v == nil {
		v = sharedInvalid
	}
	if visit.EnterValue != nil && !visit.EnterValue(path, v) {
		return false
	}
	switch v.Kind() {
	case KindArray:
		ok := true
		v.arr.forEach(func(i int, child *Value) bool {
			ok = walk(joinJSONPointerPath(path, itoa(i)), child, visit)
			return ok
		})
		if visit.ExitValue != nil {
			return visit.ExitValue(path, v) && ok
		}
		return ok
	case KindObject:
		ok := true
		v.obj.forEach(func(key string, child *Value) bool {
			if visit.Key != nil && !visit.Key(path, key) {
				ok = false
				return false
			}
			ok = walk(joinJSONPointerPath(path, key), child, visit)
			return ok
		})
		if visit.ExitValue != nil {
			return visit.ExitValue(path, v) && ok
		}
		return ok
	default:
		return true
	}
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	p := len(buf)
	for i > 0 {
		p--
		buf[p] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		p--
		buf[p] = '-'
	}
	return string(buf[p:])
}
