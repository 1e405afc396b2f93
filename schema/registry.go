package schema

import "strings"

// Registry is the URI -> Node table built by the post-parse collect_schemas
// pass (spec §4.6) and consulted by RefNode resolution (spec §4.7). It also
// remembers an external Resolver for URIs it cannot satisfy from its own
// table.
type Registry struct {
	nodes    map[string]Node
	resolver Resolver
}

// Resolver fetches the raw bytes of an external schema document named by
// uri (spec §4.7a). It is consulted only after an internal registry lookup
// misses.
type Resolver func(uri string) ([]byte, error)

// NewRegistry returns an empty Registry. resolver may be nil, in which case
// unresolvable external $ref values surface as ErrUnresolved.
func NewRegistry(resolver Resolver) *Registry {
	return &Registry{nodes: make(map[string]Node), resolver: resolver}
}

func (r *Registry) register(uri string, n Node) {
	if r == nil || uri == "" {
		return
	}
	if r.nodes == nil {
		r.nodes = make(map[string]Node)
	}
	r.nodes[uri] = n
}

// lookup returns the node registered under uri, if any.
func (r *Registry) lookup(uri string) (Node, bool) {
	if r == nil || r.nodes == nil {
		return nil, false
	}
	n, ok := r.nodes[uri]
	return n, ok
}

// fetchExternal consults the configured Resolver for a URI the registry has
// not seen, per spec §4.7's two-phase resolution (internal lookup, then
// external callback).
func (r *Registry) fetchExternal(uri string) ([]byte, error, bool) {
	if r == nil || r.resolver == nil {
		return nil, nil, false
	}
	b, err := r.resolver(uri)
	return b, err, true
}

// resolveScope combines an enclosing URI scope with a schema's own "id"
// keyword, per the URI scope stack in spec §4.6. A fragment-only id is
// appended as the new fragment; anything else (bearing its own scheme or
// path) replaces the scope outright, matching RFC 3986 reference
// resolution as json-schema draft-04 uses it.
func resolveScope(scope, id string) string {
	if id == "" {
		return scope
	}
	if strings.HasPrefix(id, "#") {
		base := scope
		if i := strings.IndexByte(base, '#'); i >= 0 {
			base = base[:i]
		}
		return base + id
	}
	if strings.Contains(id, "://") || scope == "" {
		return id
	}
	if i := strings.LastIndexByte(scope, '/'); i >= 0 && !strings.HasPrefix(id, "/") {
		return scope[:i+1] + id
	}
	return id
}
