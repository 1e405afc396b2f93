package schema

import (
	"os"

	pbnjson "github.com/webosce/pbnjson"
)

// Schema is a compiled, $ref-resolved validator tree plus the registry that
// produced it, ready to check values or feed a streaming sink via NewSink (spec
// §4.6/§4.7).
type Schema struct {
	root Node
	reg  *Registry
}

// CheckValue validates v against the compiled schema.
func (s *Schema) CheckValue(v *pbnjson.Value, issues *pbnjson.Issues) {
	s.root.CheckValue(v, pbnjson.RootPath(), issues)
}

// NewSink implements pbnjson.Validator, letting a Schema be attached to
// ParseOpt.Schema so validation runs in the same pass as DOM construction.
func (s *Schema) NewSink() pbnjson.EventSink { return newStreamValidator(s) }

// Compile parses a schema document's bytes, builds its validator tree,
// registers every id-bearing subtree, and resolves every $ref it contains
// (spec §4.6-§4.7). resolver may be nil.
func Compile(b []byte, resolver Resolver) (*Schema, error) {
	root, err := ParseBytes(b)
	if err != nil {
		return nil, err
	}
	reg := NewRegistry(resolver)
	root.CollectSchemas(reg, "")
	if err := Resolve(root, reg); err != nil {
		return nil, err
	}
	return &Schema{root: root, reg: reg}, nil
}

// CompileFile reads path and compiles it as a schema document.
func CompileFile(path string, resolver Resolver) (*Schema, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &pbnjson.Issue{Code: pbnjson.ErrResource, Message: err.Error()}
	}
	return Compile(b, resolver)
}

// ParseBytes parses one schema document's bytes into its validator tree,
// without registering or resolving anything (used by Compile for the root
// document and by Resolve for documents fetched through a Resolver).
// Schema documents are comment-tolerant (spec §4.6b): they are run through
// standardize before the JSON lexical bridge sees them.
func ParseBytes(b []byte) (Node, error) {
	clean, err := standardize(b)
	if err != nil {
		return nil, &pbnjson.Issue{Code: pbnjson.ErrLexical, Message: err.Error()}
	}
	doc, err := pbnjson.Parse(clean, pbnjson.ParseOpt{})
	if err != nil {
		return nil, err
	}
	defer doc.Release()
	return buildNode(doc)
}

// buildNode turns one schema document Value (an object, per draft-04; true/
// false boolean schemas are not part of this family) into a Node. Keywords
// are applied in a fixed order so that, e.g., "type" has already narrowed
// which concrete Node kind is being built before size/range keywords are
// read off it, mirroring how a hand-written switch-on-type parser would be
// ordered.
func buildNode(doc *pbnjson.Value) (Node, error) {
	if doc.Kind() != pbnjson.KindObject {
		return &AnyNode{}, nil
	}

	if refVal := doc.ObjectGet("$ref"); refVal.IsValid() && refVal.Kind() == pbnjson.KindString {
		return &RefNode{base: readBase(doc), uri: refVal.AsString()}, nil
	}

	if comb, ok := buildCombinator(doc); ok {
		return comb, nil
	}

	if enumVal := doc.ObjectGet("enum"); enumVal.IsValid() && enumVal.Kind() == pbnjson.KindArray {
		members := make([]*pbnjson.Value, enumVal.ArrayLen())
		for i := range members {
			members[i] = enumVal.ArrayGet(i)
		}
		return &EnumNode{base: readBase(doc), members: members}, nil
	}

	typeVal := doc.ObjectGet("type")
	switch {
	case typeVal.Kind() == pbnjson.KindString:
		return buildTyped(doc, typeVal.AsString())
	case typeVal.Kind() == pbnjson.KindArray:
		var kinds []Node
		for i := 0; i < typeVal.ArrayLen(); i++ {
			t := typeVal.ArrayGet(i)
			if t.Kind() != pbnjson.KindString {
				continue
			}
			child, err := buildTyped(doc, t.AsString())
			if err != nil {
				return nil, err
			}
			kinds = append(kinds, child)
		}
		return &CombinatorNode{base: readBase(doc), kind: CombAnyOf, children: kinds}, nil
	default:
		return buildUntyped(doc)
	}
}

func readBase(doc *pbnjson.Value) base {
	b := base{}
	if id := doc.ObjectGet("id"); id.Kind() == pbnjson.KindString {
		b.id = id.AsString()
	}
	if def := doc.ObjectGet("default"); def.IsValid() {
		b.defVal = def.Duplicate()
	}
	return b
}

func buildCombinator(doc *pbnjson.Value) (Node, bool) {
	for _, kw := range []struct {
		name string
		kind combinatorKind
	}{
		{"allOf", CombAllOf},
		{"anyOf", CombAnyOf},
		{"oneOf", CombOneOf},
	} {
		arr := doc.ObjectGet(kw.name)
		if arr.Kind() != pbnjson.KindArray {
			continue
		}
		children := make([]Node, 0, arr.ArrayLen())
		for i := 0; i < arr.ArrayLen(); i++ {
			child, err := buildNode(arr.ArrayGet(i))
			if err != nil {
				continue
			}
			children = append(children, child)
		}
		return &CombinatorNode{base: readBase(doc), kind: kw.kind, children: children}, true
	}
	if not := doc.ObjectGet("not"); not.Kind() == pbnjson.KindObject {
		child, err := buildNode(not)
		if err == nil {
			return &CombinatorNode{base: readBase(doc), kind: CombNot, children: []Node{child}}, true
		}
	}
	return nil, false
}

// buildUntyped handles a schema object that names no "type" keyword: it is
// AnyNode unless container or numeric/string keywords imply a shape, in
// which case those keywords still apply (draft-04 permits bare "properties"
// without "type":"object", for instance).
func buildUntyped(doc *pbnjson.Value) (Node, error) {
	switch {
	case doc.ObjectHas("properties") || doc.ObjectHas("additionalProperties") ||
		doc.ObjectHas("required") || doc.ObjectHas("patternProperties"):
		return buildTyped(doc, "object")
	case doc.ObjectHas("items") || doc.ObjectHas("additionalItems") || doc.ObjectHas("uniqueItems"):
		return buildTyped(doc, "array")
	case doc.ObjectHas("minimum") || doc.ObjectHas("maximum") || doc.ObjectHas("multipleOf"):
		return buildTyped(doc, "number")
	case doc.ObjectHas("minLength") || doc.ObjectHas("maxLength") || doc.ObjectHas("pattern"):
		return buildTyped(doc, "string")
	default:
		return &AnyNode{base: readBase(doc)}, nil
	}
}

func buildTyped(doc *pbnjson.Value, typeName string) (Node, error) {
	switch typeName {
	case "null":
		return &NullNode{base: readBase(doc)}, nil
	case "boolean":
		return &BoolNode{base: readBase(doc)}, nil
	case "integer":
		return buildNumber(doc, true)
	case "number":
		return buildNumber(doc, false)
	case "string":
		return buildString(doc)
	case "array":
		return buildArray(doc)
	case "object":
		return buildObject(doc)
	default:
		return &AnyNode{base: readBase(doc)}, nil
	}
}

func optFloat(doc *pbnjson.Value, key string) *float64 {
	v := doc.ObjectGet(key)
	if v.Kind() != pbnjson.KindNumber {
		return nil
	}
	f, res := v.AsNumber().GetDouble()
	if res != pbnjson.ConvOK && res != pbnjson.ConvPrecision {
		return nil
	}
	return &f
}

func optInt(doc *pbnjson.Value, key string) *int {
	v := doc.ObjectGet(key)
	if v.Kind() != pbnjson.KindNumber {
		return nil
	}
	i, res := v.AsNumber().GetInt64()
	if res != pbnjson.ConvOK {
		return nil
	}
	n := int(i)
	return &n
}

func optBool(doc *pbnjson.Value, key string, def bool) bool {
	v := doc.ObjectGet(key)
	if v.Kind() != pbnjson.KindBool {
		return def
	}
	return v.AsBool()
}

func buildNumber(doc *pbnjson.Value, integerOnly bool) (Node, error) {
	n := &NumberNode{
		base:        readBase(doc),
		integerOnly: integerOnly,
		min:         optFloat(doc, "minimum"),
		max:         optFloat(doc, "maximum"),
		exclMin:     optBool(doc, "exclusiveMinimum", false),
		exclMax:     optBool(doc, "exclusiveMaximum", false),
		multipleOf:  optFloat(doc, "multipleOf"),
	}
	return n, nil
}

func buildString(doc *pbnjson.Value) (Node, error) {
	n := &StringNode{
		base:   readBase(doc),
		minLen: optInt(doc, "minLength"),
		maxLen: optInt(doc, "maxLength"),
	}
	if pat := doc.ObjectGet("pattern"); pat.Kind() == pbnjson.KindString {
		re, err := compilePattern(pat.AsString())
		if err != nil {
			return nil, &pbnjson.Issue{Code: pbnjson.ErrGeneric, Message: err.Error()}
		}
		n.pattern = re.re
	}
	return n, nil
}

func buildArray(doc *pbnjson.Value) (Node, error) {
	n := &ArrayNode{
		base:        readBase(doc),
		minItems:    optInt(doc, "minItems"),
		maxItems:    optInt(doc, "maxItems"),
		uniqueItems: optBool(doc, "uniqueItems", false),
	}
	items := doc.ObjectGet("items")
	switch items.Kind() {
	case pbnjson.KindObject:
		child, err := buildNode(items)
		if err != nil {
			return nil, err
		}
		n.items = child
	case pbnjson.KindArray:
		for i := 0; i < items.ArrayLen(); i++ {
			child, err := buildNode(items.ArrayGet(i))
			if err != nil {
				return nil, err
			}
			n.tupleItems = append(n.tupleItems, child)
		}
	}
	addl := doc.ObjectGet("additionalItems")
	switch addl.Kind() {
	case pbnjson.KindBool:
		n.additionalOK = addl.AsBool()
	case pbnjson.KindObject:
		child, err := buildNode(addl)
		if err != nil {
			return nil, err
		}
		n.additionalItems = child
		n.additionalOK = true
	default:
		n.additionalOK = true
	}
	return n, nil
}

func buildObject(doc *pbnjson.Value) (Node, error) {
	n := &ObjectNode{
		base:          readBase(doc),
		minProperties: optInt(doc, "minProperties"),
		maxProperties: optInt(doc, "maxProperties"),
	}
	if req := doc.ObjectGet("required"); req.Kind() == pbnjson.KindArray {
		for i := 0; i < req.ArrayLen(); i++ {
			if s := req.ArrayGet(i); s.Kind() == pbnjson.KindString {
				n.required = append(n.required, s.AsString())
			}
		}
	}
	if props := doc.ObjectGet("properties"); props.Kind() == pbnjson.KindObject {
		n.properties = make(map[string]Node, props.ObjectLen())
		for _, key := range props.ObjectKeys() {
			child, err := buildNode(props.ObjectGet(key))
			if err != nil {
				return nil, err
			}
			n.properties[key] = child
		}
	}
	if pprops := doc.ObjectGet("patternProperties"); pprops.Kind() == pbnjson.KindObject {
		for _, key := range pprops.ObjectKeys() {
			re, err := compilePattern(key)
			if err != nil {
				return nil, &pbnjson.Issue{Code: pbnjson.ErrGeneric, Message: err.Error()}
			}
			child, err := buildNode(pprops.ObjectGet(key))
			if err != nil {
				return nil, err
			}
			n.patternProperties = append(n.patternProperties, patternProp{re: re, node: child})
		}
	}
	addl := doc.ObjectGet("additionalProperties")
	switch addl.Kind() {
	case pbnjson.KindBool:
		n.additionalOK = addl.AsBool()
	case pbnjson.KindObject:
		child, err := buildNode(addl)
		if err != nil {
			return nil, err
		}
		n.additionalProperties = child
		n.additionalOK = true
	default:
		n.additionalOK = true
	}
	if deps := doc.ObjectGet("dependencies"); deps.Kind() == pbnjson.KindObject {
		n.dependencies = make(map[string]dependency, deps.ObjectLen())
		for _, key := range deps.ObjectKeys() {
			depVal := deps.ObjectGet(key)
			d := dependency{}
			switch depVal.Kind() {
			case pbnjson.KindArray:
				for i := 0; i < depVal.ArrayLen(); i++ {
					if s := depVal.ArrayGet(i); s.Kind() == pbnjson.KindString {
						d.keys = append(d.keys, s.AsString())
					}
				}
			case pbnjson.KindObject:
				child, err := buildNode(depVal)
				if err != nil {
					return nil, err
				}
				d.schema = child
			}
			n.dependencies[key] = d
		}
	}
	return n, nil
}
