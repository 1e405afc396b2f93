package pbnjson

import (
	"unicode/utf8"

	"go4.org/mem"
)

// GenMode selects compact or pretty output (spec §4.8).
type GenMode int

const (
	GenCompact GenMode = iota
	GenPretty
)

// Generator serializes a Value tree to bytes. It is stateful: it tracks the
// currently open container so it can emit separators correctly, and is
// flushed by Finish, which returns the full buffer (spec §4.8). It drives
// Walk (traversal.go) rather than hand-rolling its own recursion.
type Generator struct {
	mode   GenMode
	indent string
	buf    []byte
	err    error
	levels []genLevel
}

// genLevel is the per-open-container state Generator keeps on a stack
// while Walk drives it: whether this container is an object (so its
// children's separators are placed by onKey, not onEnter) and whether it
// has emitted a child yet (so a closing bracket knows whether to indent).
type genLevel struct {
	isObject  bool
	needComma bool
}

// NewGenerator returns a Generator in the requested mode. indent is used
// only in GenPretty mode (default two spaces when empty).
func NewGenerator(mode GenMode, indent string) *Generator {
	if indent == "" {
		indent = "  "
	}
	return &Generator{mode: mode, indent: indent}
}

// Generate serializes v with mode and returns the encoded bytes (spec
// §6.3's to_string(v, compact|pretty)).
func Generate(v *Value, mode GenMode) ([]byte, error) {
	g := NewGenerator(mode, "  ")
	g.Write(v)
	return g.Finish()
}

// Write appends v's encoding to the generator's buffer, honoring any
// currently open container's separator/indentation rules.
func (g *Generator) Write(v *Value) {
	if g.err != nil {
		return
	}
	Walk(v, Visitor{EnterValue: g.onEnter, ExitValue: g.onExit, Key: g.onKey})
}

func (g *Generator) onEnter(path string, v *Value) bool {
	if g.err != nil {
		return false
	}
	if path != "" {
		top := &g.levels[len(g.levels)-1]
		if !top.isObject {
			g.separatorAndIndent(top)
		}
	}
	switch v.Kind() {
	case KindArray:
		g.buf = append(g.buf, '[')
		g.levels = append(g.levels, genLevel{})
	case KindObject:
		g.buf = append(g.buf, '{')
		g.levels = append(g.levels, genLevel{isObject: true})
	default:
		g.writeScalar(v)
	}
	return g.err == nil
}

func (g *Generator) onKey(path, key string) bool {
	top := &g.levels[len(g.levels)-1]
	g.separatorAndIndent(top)
	g.WriteString(key)
	g.buf = append(g.buf, ':')
	if g.mode == GenPretty {
		g.buf = append(g.buf, ' ')
	}
	return g.err == nil
}

func (g *Generator) onExit(path string, v *Value) bool {
	top := g.levels[len(g.levels)-1]
	g.levels = g.levels[:len(g.levels)-1]
	if top.needComma {
		g.newlineIndent(len(g.levels))
	}
	if v.Kind() == KindArray {
		g.buf = append(g.buf, ']')
	} else {
		g.buf = append(g.buf, '}')
	}
	return true
}

// separatorAndIndent emits the comma (if top already has a child) and the
// newline+indent before the next child of top, then marks top as having a
// child so the next sibling knows to comma-separate.
func (g *Generator) separatorAndIndent(top *genLevel) {
	if top.needComma {
		g.buf = append(g.buf, ',')
	}
	top.needComma = true
	g.newlineIndent(len(g.levels))
}

func (g *Generator) writeScalar(v *Value) {
	switch v.Kind() {
	case KindInvalid, KindNull:
		g.buf = append(g.buf, "null"...)
	case KindBool:
		if v.b {
			g.buf = append(g.buf, "true"...)
		} else {
			g.buf = append(g.buf, "false"...)
		}
	case KindNumber:
		g.buf = append(g.buf, v.num.String()...)
	case KindString:
		g.writeStringMem(v.asStringMem())
	}
}

func (g *Generator) newlineIndent(depth int) {
	if g.mode != GenPretty {
		return
	}
	g.buf = append(g.buf, '\n')
	for i := 0; i < depth; i++ {
		g.buf = append(g.buf, g.indent...)
	}
}

// needsEscape reports the first byte in s (as mem.RO) requiring RFC 8259
// escaping, or -1 if none do. It does not itself validate UTF-8: multi-byte
// runes pass through as unescaped runs, and invalidUTF8 below is what
// catches a malformed sequence within such a run.
func needsEscape(m mem.RO) int {
	n := m.Len()
	for i := 0; i < n; i++ {
		c := m.At(i)
		if c == '"' || c == '\\' || c < 0x20 {
			return i
		}
	}
	return -1
}

// invalidUTF8 reports the offset of the first malformed UTF-8 sequence in
// m, or -1 if m is entirely well-formed.
func invalidUTF8(m mem.RO) int {
	i := 0
	for i < m.Len() {
		r, n := mem.DecodeRune(m.SliceFrom(i))
		if r == utf8.RuneError && n <= 1 {
			return i
		}
		i += n
	}
	return -1
}

// WriteString appends the RFC 8259 JSON encoding of s, including its
// surrounding quotes.
func (g *Generator) WriteString(s string) { g.writeStringMem(mem.S(s)) }

// writeStringMem is WriteString's implementation, shared with writeScalar's
// KindString case. It uses go4.org/mem to find escape-worthy bytes and blit
// the unescaped run before each one, mirroring (in reverse)
// internal/escape.Unquote's run-blitting technique in the sibling no-copy
// JSON tree library (spec §4.8a) rather than copying rune by rune for the
// common fully-printable-ASCII case. A malformed UTF-8 sequence anywhere in
// m sets g.err and aborts generation (spec §4.8's "non-UTF-8 sequences
// cause an error"), instead of writing the bad bytes through.
func (g *Generator) writeStringMem(m mem.RO) {
	if g.err != nil {
		return
	}
	if at := invalidUTF8(m); at >= 0 {
		g.err = &Issue{Code: ErrConversion, Message: "invalid UTF-8 sequence in string value", Offset: int64(at)}
		return
	}
	g.buf = append(g.buf, '"')
	for m.Len() > 0 {
		i := needsEscape(m)
		if i < 0 {
			g.buf = mem.Append(g.buf, m)
			break
		}
		if i > 0 {
			g.buf = mem.Append(g.buf, m.SliceTo(i))
		}
		switch b := m.At(i); b {
		case '"':
			g.buf = append(g.buf, '\\', '"')
		case '\\':
			g.buf = append(g.buf, '\\', '\\')
		case '\b':
			g.buf = append(g.buf, '\\', 'b')
		case '\f':
			g.buf = append(g.buf, '\\', 'f')
		case '\n':
			g.buf = append(g.buf, '\\', 'n')
		case '\r':
			g.buf = append(g.buf, '\\', 'r')
		case '\t':
			g.buf = append(g.buf, '\\', 't')
		default:
			g.buf = append(g.buf, '\\', 'u')
			g.buf = appendHex4(g.buf, uint16(b))
		}
		m = m.SliceFrom(i + 1)
	}
	g.buf = append(g.buf, '"')
}

func appendHex4(dst []byte, v uint16) []byte {
	const hex = "0123456789abcdef"
	return append(dst,
		hex[(v>>12)&0xF], hex[(v>>8)&0xF], hex[(v>>4)&0xF], hex[v&0xF])
}

// Finish flushes the generator and returns the accumulated buffer.
func (g *Generator) Finish() ([]byte, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.buf, nil
}
