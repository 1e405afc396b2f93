package schema

import pbnjson "github.com/webosce/pbnjson"

// ApplyDefaults walks the schema's validator tree and v's structure
// together, inserting each property's "default" keyword value at keys v is
// missing (spec's default-injection testable property). It is a separate
// post-parse step rather than something Parse does automatically, so the
// root package never needs to import this one: call it on the *pbnjson.
// Value returned by a successful pbnjson.Parse(b, pbnjson.ParseOpt{Schema:
// s}).
func (s *Schema) ApplyDefaults(v *pbnjson.Value) *pbnjson.Value {
	return applyDefaults(s.root, v)
}

func applyDefaults(n Node, v *pbnjson.Value) *pbnjson.Value {
	if v == nil || !v.IsValid() {
		return v
	}
	switch node := n.(type) {
	case *ObjectNode:
		if v.Kind() != pbnjson.KindObject {
			return v
		}
		for key, child := range node.properties {
			if v.ObjectHas(key) {
				existing := v.ObjectGet(key)
				applyDefaults(child, existing)
				continue
			}
			if def := child.Default(); def != nil {
				// ObjectSet duplicates def itself; def.Duplicate() here would
				// leak the extra ref ObjectSet's own Duplicate() produces.
				_ = v.ObjectSet(key, def)
			}
		}
	case *ArrayNode:
		if v.Kind() != pbnjson.KindArray {
			return v
		}
		present := v.ArrayLen()
		for i, child := range node.tupleItems {
			if i < present {
				applyDefaults(child, v.ArrayGet(i))
				continue
			}
			if def := child.Default(); def != nil {
				_ = v.ArrayPut(i, def.Duplicate())
				present = v.ArrayLen()
			}
		}
	}
	return v
}
