package pbnjson

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and mints Issues
// anchored at the built path. Adapted for the schema validator's use (one
// PathRef per SAX nesting frame) rather than the original's refinement-rule
// use case.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

type pathRef struct {
	parts []string
}

// RootPath returns the PathRef for the document root ("/").
func RootPath() PathRef { return &pathRef{} }

// PathAt parses an existing JSON Pointer string into a PathRef.
func PathAt(path string) PathRef {
	if path == "" || path == "/" {
		return RootPath()
	}
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	esc := jsonPointerEscape(name)
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	var params map[string]any
	if len(kv) > 0 {
		params = map[string]any{}
		for i := 0; i+1 < len(kv); i += 2 {
			params[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: params}
}

// jsonPointerEscape escapes a single JSON Pointer reference token per
// RFC 6901: "~" -> "~0", "/" -> "~1" (spec §4.7).
func jsonPointerEscape(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, "~", "~0"), "/", "~1")
}

// joinJSONPointerPath appends one escaped reference token to base,
// producing "/" for the root case.
func joinJSONPointerPath(base, token string) string {
	esc := jsonPointerEscape(token)
	if base == "" || base == "/" {
		return "/" + esc
	}
	return base + "/" + esc
}
