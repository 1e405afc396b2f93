package schema

import pbnjson "github.com/webosce/pbnjson"

// RefNode defers to whatever schema its "$ref" URI resolves to (spec
// §4.7). It starts life unresolved (target nil, uri set) and is resolved
// in place by Resolve once the whole document's registry is built, so
// cyclic $ref graphs (schema A referencing schema B referencing A) work:
// after Resolve, every RefNode whose URI could be satisfied points at a
// live Node; one that could not keeps a nil target and reports
// ErrUnresolved from CheckValue.
type RefNode struct {
	base
	uri    string
	target Node
}

func (n *RefNode) CheckValue(v *pbnjson.Value, path pbnjson.PathRef, issues *pbnjson.Issues) {
	if n.target == nil {
		*issues = append(*issues, path.Issue(pbnjson.ErrUnresolved, "unresolved $ref \""+n.uri+"\""))
		return
	}
	n.target.CheckValue(v, path, issues)
}

// Visit descends into n.target after the enter callback runs, so a target
// bound synchronously by that callback (Resolve's own traversal closure
// binds ref.target from inside enter) is itself visited in the same pass —
// this is what lets a multi-hop $ref chain resolve without repeated calls
// to Resolve.
func (n *RefNode) Visit(enter, exit func(Node) bool) {
	if enter != nil && !enter(n) {
		return
	}
	if n.target != nil {
		n.target.Visit(enter, exit)
	}
	if exit != nil {
		exit(n)
	}
}

func (n *RefNode) CollectSchemas(reg *Registry, scope string) {
	collectSelf(n, n.id, reg, scope)
}

// Resolve walks every RefNode reachable from root and binds its target
// from reg, fetching externally via reg's Resolver on a registry miss and
// parsing the fetched bytes as a fresh schema document rooted at uri (spec
// §4.7's two-phase resolution). Already-resolved nodes and nodes whose URI
// cannot be satisfied are left alone; callers should re-check for
// ErrUnresolved issues after validating.
func Resolve(root Node, reg *Registry) error {
	var firstErr error
	seen := make(map[Node]bool)
	root.Visit(func(n Node) bool {
		if seen[n] {
			return false
		}
		seen[n] = true
		ref, ok := n.(*RefNode)
		if !ok || ref.target != nil {
			return true
		}
		if target, ok := reg.lookup(ref.uri); ok {
			ref.target = target
			return true
		}
		b, err, attempted := reg.fetchExternal(ref.uri)
		if !attempted {
			return true
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return true
		}
		parsed, err := ParseBytes(b)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return true
		}
		parsed.CollectSchemas(reg, ref.uri)
		reg.register(ref.uri, parsed)
		ref.target = parsed
		return true
	}, nil)
	return firstErr
}
