// Package schema parses JSON Schema (draft-04 family) documents into a
// validator tree and runs that tree against pbnjson.Value trees, or as a
// streaming pbnjson.EventSink fused into the same parse pass as the DOM
// builder (spec §4.5/§4.6).
package schema

import (
	"regexp"

	pbnjson "github.com/webosce/pbnjson"
)

// Node is the validator-tree role spec §3.8 assigns to "Validator": a
// composable behaviour set over a materialized value. Concrete kinds below
// implement it; CheckValue is the value-level entry point every kind
// supports, Visit/CollectSchemas/Default round out the behaviours spec §3.8
// names (dup/ref/unref are not modeled explicitly: Go's GC makes manual
// refcounting on validator nodes unnecessary, see DESIGN.md).
type Node interface {
	// CheckValue validates v against this node, appending any violations
	// to issues with paths anchored at path.
	CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues)
	// Default returns this node's "default" keyword value, or nil.
	Default() *pbnjson.Value
	// Visit calls enter before, and exit after, visiting this node's
	// children; enter returning false skips this node's children and its
	// exit call, and exit's result is ignored.
	Visit(enter, exit func(Node) bool)
	// CollectSchemas registers this node (and its named subtrees) into reg
	// under scope, per spec §4.6's post-parse collect_schemas pass.
	CollectSchemas(reg *Registry, scope string)
}

// base holds the fields every concrete Node shares: its id-derived scope
// (for collect_schemas) and its "default" keyword value, if any.
type base struct {
	id     string
	defVal *pbnjson.Value
}

func (b *base) Default() *pbnjson.Value { return b.defVal }

// collectSelf registers self into reg under scope+id when id is non-empty
// (spec §4.6's collect_schemas pass). Each concrete Node's CollectSchemas
// calls this with itself so the registry stores the real node, not base.
func collectSelf(self Node, id string, reg *Registry, scope string) {
	if id != "" {
		reg.register(resolveScope(scope, id), self)
	}
}

// AnyNode accepts every value (spec §9's AllowAny; testable property 7).
type AnyNode struct{ base }

func (n *AnyNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {}
func (n *AnyNode) Visit(enter, exit func(Node) bool) {
	if enter != nil && !enter(n) {
		return
	}
	if exit != nil {
		exit(n)
	}
}
func (n *AnyNode) CollectSchemas(reg *Registry, scope string) { collectSelf(n, n.id, reg, scope) }

// NullNode requires KindNull.
type NullNode struct{ base }

func (n *NullNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	if v.Kind() != pbnjson.KindNull {
		*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "expected null"))
	}
}
func (n *NullNode) Visit(enter, exit func(Node) bool)          { visitLeaf(n, enter, exit) }
func (n *NullNode) CollectSchemas(reg *Registry, scope string) { collectSelf(n, n.id, reg, scope) }

// BoolNode requires KindBool.
type BoolNode struct{ base }

func (n *BoolNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	if v.Kind() != pbnjson.KindBool {
		*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "expected boolean"))
	}
}
func (n *BoolNode) Visit(enter, exit func(Node) bool)          { visitLeaf(n, enter, exit) }
func (n *BoolNode) CollectSchemas(reg *Registry, scope string) { collectSelf(n, n.id, reg, scope) }

// NumberNode validates minimum/maximum/exclusiveMinimum/exclusiveMaximum/
// multipleOf, and (when integerOnly is set) that the value has no
// fractional component (spec §4.5 "Number validator").
type NumberNode struct {
	base
	integerOnly bool
	min, max    *float64
	exclMin     bool
	exclMax     bool
	multipleOf  *float64
}

func (n *NumberNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	if v.Kind() != pbnjson.KindNumber {
		*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "expected number"))
		return
	}
	f, res := v.AsNumber().GetDouble()
	if res != pbnjson.ConvOK && res != pbnjson.ConvPrecision {
		*issues = append(*issues, path.Issue(pbnjson.ErrConversion, "number could not be converted for range checking"))
		return
	}
	if n.integerOnly {
		if _, ires := v.AsNumber().GetInt64(); ires != pbnjson.ConvOK {
			*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "expected integer"))
		}
	}
	if n.min != nil {
		if (n.exclMin && f <= *n.min) || (!n.exclMin && f < *n.min) {
			*issues = append(*issues, path.Issue(pbnjson.ErrRange, "value below minimum", "min", *n.min))
		}
	}
	if n.max != nil {
		if (n.exclMax && f >= *n.max) || (!n.exclMax && f > *n.max) {
			*issues = append(*issues, path.Issue(pbnjson.ErrRange, "value above maximum", "max", *n.max))
		}
	}
	if n.multipleOf != nil && *n.multipleOf != 0 {
		q := f / *n.multipleOf
		if q != float64(int64(q)) {
			*issues = append(*issues, path.Issue(pbnjson.ErrRange, "value is not a multiple of multipleOf", "multipleOf", *n.multipleOf))
		}
	}
}
func (n *NumberNode) Visit(enter, exit func(Node) bool)          { visitLeaf(n, enter, exit) }
func (n *NumberNode) CollectSchemas(reg *Registry, scope string) { collectSelf(n, n.id, reg, scope) }

// StringNode validates minLength/maxLength (code points, not bytes) and
// pattern (spec §4.5 "String validator").
type StringNode struct {
	base
	minLen, maxLen *int
	pattern        *regexp.Regexp
}

func (n *StringNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	if v.Kind() != pbnjson.KindString {
		*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "expected string"))
		return
	}
	s := v.AsString()
	length := runeLen(s)
	if n.minLen != nil && length < *n.minLen {
		*issues = append(*issues, path.Issue(pbnjson.ErrRange, "string shorter than minLength", "minLength", *n.minLen))
	}
	if n.maxLen != nil && length > *n.maxLen {
		*issues = append(*issues, path.Issue(pbnjson.ErrRange, "string longer than maxLength", "maxLength", *n.maxLen))
	}
	if n.pattern != nil && !n.pattern.MatchString(s) {
		*issues = append(*issues, path.Issue(pbnjson.ErrRange, "string does not match pattern", "pattern", n.pattern.String()))
	}
}
func (n *StringNode) Visit(enter, exit func(Node) bool)          { visitLeaf(n, enter, exit) }
func (n *StringNode) CollectSchemas(reg *Registry, scope string) { collectSelf(n, n.id, reg, scope) }

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

func visitLeaf(self Node, enter, exit func(Node) bool) {
	if enter != nil && !enter(self) {
		return
	}
	if exit != nil {
		exit(self)
	}
}
