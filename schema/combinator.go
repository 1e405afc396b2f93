package schema

import pbnjson "github.com/webosce/pbnjson"

// combinatorKind distinguishes the four draft-04 combining keywords, each
// of which evaluates the same value against every child and combines the
// per-child outcomes differently (spec §4.5 "Combinators").
type combinatorKind int

const (
	CombAllOf combinatorKind = iota
	CombAnyOf
	CombOneOf
	CombNot
)

// CombinatorNode implements allOf/anyOf/oneOf/not. Because CheckValue is
// value-level (the whole document is already materialized by the time any
// node runs, as streamValidator in stream.go arranges), each
// child is simply checked against a scratch Issues slice and the outcome
// decided from how many children passed.
type CombinatorNode struct {
	base
	kind     combinatorKind
	children []Node
}

func (n *CombinatorNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	switch n.kind {
	case CombAllOf:
		for _, c := range n.children {
			c.CheckValue(v, path, issues)
		}
	case CombAnyOf:
		for _, c := range n.children {
			var sub pbnjson.Issues
			c.CheckValue(v, path, &sub)
			if len(sub) == 0 {
				return
			}
		}
		*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "value matched none of anyOf"))
	case CombOneOf:
		passed := 0
		for _, c := range n.children {
			var sub pbnjson.Issues
			c.CheckValue(v, path, &sub)
			if len(sub) == 0 {
				passed++
			}
		}
		if passed != 1 {
			*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "value must match exactly one of oneOf", "matched", passed))
		}
	case CombNot:
		if len(n.children) == 1 {
			var sub pbnjson.Issues
			n.children[0].CheckValue(v, path, &sub)
			if len(sub) == 0 {
				*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "value must not satisfy the not schema"))
			}
		}
	}
}

func (n *CombinatorNode) Visit(enter, exit func(Node) bool) {
	if enter != nil && !enter(n) {
		return
	}
	for _, c := range n.children {
		c.Visit(enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}

func (n *CombinatorNode) CollectSchemas(reg *Registry, scope string) {
	collectSelf(n, n.id, reg, scope)
	for _, c := range n.children {
		c.CollectSchemas(reg, scope)
	}
}

// EnumNode requires v to be structurally Equal (spec §3.5) to one of a
// fixed list of allowed values.
type EnumNode struct {
	base
	members []*pbnjson.Value
}

func (n *EnumNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	for _, m := range n.members {
		if pbnjson.Equal(v, m) {
			return
		}
	}
	*issues = append(*issues, path.Issue(pbnjson.ErrTypeMismatch, "value is not one of the enumerated values"))
}

func (n *EnumNode) Visit(enter, exit func(Node) bool)          { visitLeaf(n, enter, exit) }
func (n *EnumNode) CollectSchemas(reg *Registry, scope string) { collectSelf(n, n.id, reg, scope) }
