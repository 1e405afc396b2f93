package schema

import pbnjson "github.com/webosce/pbnjson"

// ArrayNode validates items/additionalItems, min/maxItems, and uniqueItems
// (spec §4.5 "Array validator").
type ArrayNode struct {
	base
	items           Node   // single-schema mode; nil when tupleItems is used
	tupleItems      []Node // positional mode
	additionalItems Node   // nil: additionalOK decides whether extra items are allowed
	additionalOK    bool   // true when additionalItems was boolean true (or absent)
	minItems        *int
	maxItems        *int
	uniqueItems     bool
}

func (n *ArrayNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	if v.Kind() != pbnjson.KindArray {
		*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "expected array"))
		return
	}
	l := v.ArrayLen()
	if n.minItems != nil && l < *n.minItems {
		*issues = append(*issues, path.Issue(pbnjson.ErrRange, "array shorter than minItems", "minItems", *n.minItems))
	}
	if n.maxItems != nil && l > *n.maxItems {
		*issues = append(*issues, path.Issue(pbnjson.ErrRange, "array longer than maxItems", "maxItems", *n.maxItems))
	}

	var witness map[uint64][]*pbnjson.Value
	if n.uniqueItems {
		witness = make(map[uint64][]*pbnjson.Value)
	}

	for i := 0; i < l; i++ {
		elem := v.ArrayGet(i)
		elemPath := path.Index(i)
		switch {
		case len(n.tupleItems) > 0:
			if i < len(n.tupleItems) {
				n.tupleItems[i].CheckValue(elem, elemPath, issues)
			} else if n.additionalItems != nil {
				n.additionalItems.CheckValue(elem, elemPath, issues)
			} else if !n.additionalOK {
				*issues = append(*issues, elemPath.Issue(pbnjson.ErrTypeMismatch, "additional array item not allowed"))
			}
		case n.items != nil:
			n.items.CheckValue(elem, elemPath, issues)
		}
		if n.uniqueItems {
			h := structuralHash(elem)
			dup := false
			for _, seen := range witness[h] {
				if pbnjson.Equal(seen, elem) {
					dup = true
					break
				}
			}
			if dup {
				*issues = append(*issues, elemPath.Issue(pbnjson.ErrDuplicate, "duplicate item under uniqueItems"))
			} else {
				witness[h] = append(witness[h], elem)
			}
		}
	}
}

func (n *ArrayNode) Visit(enter, exit func(Node) bool) {
	if enter != nil && !enter(n) {
		return
	}
	if n.items != nil {
		n.items.Visit(enter, exit)
	}
	for _, c := range n.tupleItems {
		c.Visit(enter, exit)
	}
	if n.additionalItems != nil {
		n.additionalItems.Visit(enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}

func (n *ArrayNode) CollectSchemas(reg *Registry, scope string) {
	collectSelf(n, n.id, reg, scope)
	if n.items != nil {
		n.items.CollectSchemas(reg, scope)
	}
	for _, c := range n.tupleItems {
		c.CollectSchemas(reg, scope)
	}
	if n.additionalItems != nil {
		n.additionalItems.CollectSchemas(reg, scope)
	}
}

// structuralHash produces a cheap bucket hash for uniqueItems witness
// lookups; equality within a bucket is still decided by pbnjson.Equal, so
// collisions only cost an extra comparison, never correctness.
func structuralHash(v *pbnjson.Value) uint64 {
	var h uint64 = 1469598103934665603
	mix := func(b byte) {
		h ^= uint64(b)
		h *= 1099511628211
	}
	mix(byte(v.Kind()))
	switch v.Kind() {
	case pbnjson.KindString:
		for i := 0; i < len(v.AsString()); i++ {
			mix(v.AsString()[i])
		}
	case pbnjson.KindBool:
		if v.AsBool() {
			mix(1)
		}
	case pbnjson.KindNumber:
		for _, b := range []byte(v.AsNumber().String()) {
			mix(b)
		}
	case pbnjson.KindArray:
		mix(byte(v.ArrayLen()))
	case pbnjson.KindObject:
		mix(byte(v.ObjectLen()))
	}
	return h
}

// dependency is one "dependencies" keyword entry: either a list of sibling
// property names that must all be present, or a schema the whole object
// must additionally satisfy.
type dependency struct {
	keys   []string
	schema Node
}

// ObjectNode validates required/properties/patternProperties/
// additionalProperties/min-maxProperties/dependencies (spec §4.5 "Object
// validator").
type ObjectNode struct {
	base
	required             []string
	properties           map[string]Node
	patternProperties    []patternProp
	additionalProperties Node
	additionalOK         bool
	minProperties        *int
	maxProperties        *int
	dependencies         map[string]dependency
}

type patternProp struct {
	re   *compiledPattern
	node Node
}

func (n *ObjectNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	if v.Kind() != pbnjson.KindObject {
		*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "expected object"))
		return
	}
	l := v.ObjectLen()
	if n.minProperties != nil && l < *n.minProperties {
		*issues = append(*issues, path.Issue(pbnjson.ErrRange, "object has fewer than minProperties", "minProperties", *n.minProperties))
	}
	if n.maxProperties != nil && l > *n.maxProperties {
		*issues = append(*issues, path.Issue(pbnjson.ErrRange, "object has more than maxProperties", "maxProperties", *n.maxProperties))
	}
	for _, req := range n.required {
		if !v.ObjectHas(req) {
			*issues = append(*issues, path.Issue(pbnjson.ErrMissingRequired, "missing required property \""+req+"\"", "key", req))
		}
	}
	for _, key := range v.ObjectKeys() {
		val := v.ObjectGet(key)
		keyPath := path.Field(key)
		matched := false
		if child, ok := n.properties[key]; ok {
			child.CheckValue(val, keyPath, issues)
			matched = true
		}
		for _, pp := range n.patternProperties {
			if pp.re.MatchString(key) {
				pp.node.CheckValue(val, keyPath, issues)
				matched = true
			}
		}
		if !matched {
			if n.additionalProperties != nil {
				n.additionalProperties.CheckValue(val, keyPath, issues)
			} else if !n.additionalOK {
				*issues = append(*issues, keyPath.Issue(pbnjson.ErrTypeMismatch, "additional property \""+key+"\" not allowed", "key", key))
			}
		}
		if dep, ok := n.dependencies[key]; ok {
			for _, must := range dep.keys {
				if !v.ObjectHas(must) {
					*issues = append(*issues, path.Issue(pbnjson.ErrMissingRequired, "\""+key+"\" requires \""+must+"\"", "key", must))
				}
			}
			if dep.schema != nil {
				dep.schema.CheckValue(v, path, issues)
			}
		}
	}
}

func (n *ObjectNode) Visit(enter, exit func(Node) bool) {
	if enter != nil && !enter(n) {
		return
	}
	for _, c := range n.properties {
		c.Visit(enter, exit)
	}
	for _, pp := range n.patternProperties {
		pp.node.Visit(enter, exit)
	}
	if n.additionalProperties != nil {
		n.additionalProperties.Visit(enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}

func (n *ObjectNode) CollectSchemas(reg *Registry, scope string) {
	collectSelf(n, n.id, reg, scope)
	for _, c := range n.properties {
		c.CollectSchemas(reg, scope)
	}
	for _, pp := range n.patternProperties {
		pp.node.CollectSchemas(reg, scope)
	}
	if n.additionalProperties != nil {
		n.additionalProperties.CollectSchemas(reg, scope)
	}
}
