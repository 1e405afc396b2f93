package pbnjson

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"go4.org/mem"

	eng "github.com/webosce/pbnjson/internal/engine"
)

// noCopySource is a from-scratch JSON tokenizer over an in-memory byte
// slice, used when ParseOpt.NoCopyStrings opts a caller into the no-copy
// string representation (spec §3.3/§4.4). Unlike the encoding/json- and
// goccy/go-json-backed drivers (source/json, source/gojson), which always
// materialize a Go string for every token, this scanner hands back a bare
// subslice of buf for any string token that contains no escape sequences —
// the common case — and only allocates for the minority that need
// unescaping. Its state-machine shape (self-delimiting tokens, a single
// rune-at-a-time scan loop, readWhile-style consumption) follows
// creachadair-jtree's Scanner; the difference is that jtree's Scanner reads
// from a bufio.Reader and therefore copies into its own buffer; this one
// reads from a byte slice it never owns a copy of, so it can skip the copy.
type noCopySource struct {
	buf  []byte
	pos  int
	keys eng.KeyTracker
}

func newNoCopySource(b []byte) *noCopySource { return &noCopySource{buf: b} }

func (s *noCopySource) NumberMode() NumberMode { return NumberJSONNumber }
func (s *noCopySource) Location() int64        { return int64(s.pos) }

func (s *noCopySource) NextToken() (Token, error) {
	s.skipSpace()
	if s.pos >= len(s.buf) {
		return Token{}, io.EOF
	}
	switch c := s.buf[s.pos]; c {
	case '{':
		s.pos++
		s.keys.PushObject()
		return Token{Kind: TokenBeginObject, Offset: int64(s.pos)}, nil
	case '}':
		s.pos++
		s.keys.Pop()
		return Token{Kind: TokenEndObject, Offset: int64(s.pos)}, nil
	case '[':
		s.pos++
		s.keys.PushArray()
		return Token{Kind: TokenBeginArray, Offset: int64(s.pos)}, nil
	case ']':
		s.pos++
		s.keys.Pop()
		return Token{Kind: TokenEndArray, Offset: int64(s.pos)}, nil
	case ',', ':':
		s.pos++
		return s.NextToken()
	case '"':
		return s.scanString()
	case 't':
		return s.scanLiteral("true", Token{Kind: TokenBool, Bool: true})
	case 'f':
		return s.scanLiteral("false", Token{Kind: TokenBool, Bool: false})
	case 'n':
		s.keys.MarkValueConsumed()
		return s.scanLiteral("null", Token{Kind: TokenNull})
	default:
		if c == '-' || (c >= '0' && c <= '9') {
			return s.scanNumber()
		}
		return Token{}, s.errf("unexpected byte %q", c)
	}
}

func (s *noCopySource) skipSpace() {
	for s.pos < len(s.buf) {
		switch s.buf[s.pos] {
		case ' ', '\t', '\r', '\n':
			s.pos++
		default:
			return
		}
	}
}

func (s *noCopySource) scanLiteral(want string, tok Token) (Token, error) {
	end := s.pos + len(want)
	if end > len(s.buf) || string(s.buf[s.pos:end]) != want {
		return Token{}, s.errf("invalid literal, expected %q", want)
	}
	s.pos = end
	tok.Offset = int64(s.pos)
	if tok.Kind == TokenBool {
		s.keys.MarkValueConsumed()
	}
	return tok, nil
}

func (s *noCopySource) scanNumber() (Token, error) {
	start := s.pos
	if s.buf[s.pos] == '-' {
		s.pos++
	}
	for s.pos < len(s.buf) && isDigitByte(s.buf[s.pos]) {
		s.pos++
	}
	if s.pos < len(s.buf) && s.buf[s.pos] == '.' {
		s.pos++
		for s.pos < len(s.buf) && isDigitByte(s.buf[s.pos]) {
			s.pos++
		}
	}
	if s.pos < len(s.buf) && (s.buf[s.pos] == 'e' || s.buf[s.pos] == 'E') {
		s.pos++
		if s.pos < len(s.buf) && (s.buf[s.pos] == '+' || s.buf[s.pos] == '-') {
			s.pos++
		}
		for s.pos < len(s.buf) && isDigitByte(s.buf[s.pos]) {
			s.pos++
		}
	}
	if s.pos == start || (s.pos == start+1 && s.buf[start] == '-') {
		return Token{}, s.errf("invalid number")
	}
	s.keys.MarkValueConsumed()
	return Token{Kind: TokenNumber, Number: string(s.buf[start:s.pos]), Offset: int64(s.pos)}, nil
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

// scanString reads a quoted string starting at s.buf[s.pos] == '"'. When the
// content between the quotes has no escape sequences, it returns a Token
// whose Bytes field borrows the matching subslice of s.buf directly; only a
// string containing a backslash escape pays for an allocation.
func (s *noCopySource) scanString() (Token, error) {
	isKey := s.keys.NextStringIsKey()
	kind := TokenString
	if isKey {
		kind = TokenKey
	}

	start := s.pos + 1
	i := start
	hasEscape := false
	for {
		if i >= len(s.buf) {
			return Token{}, s.errf("unterminated string")
		}
		c := s.buf[i]
		if c == '"' {
			break
		}
		if c == '\\' {
			hasEscape = true
			i += 2
			continue
		}
		if c < 0x20 {
			return Token{}, s.errf("unescaped control byte in string")
		}
		i++
	}
	raw := s.buf[start:i]
	s.pos = i + 1

	if !hasEscape {
		return Token{Kind: kind, Bytes: raw, Offset: int64(s.pos)}, nil
	}
	decoded, err := unescapeJSONString(raw)
	if err != nil {
		return Token{}, s.errf("%v", err)
	}
	return Token{Kind: kind, String: decoded, Offset: int64(s.pos)}, nil
}

func (s *noCopySource) errf(format string, args ...any) error {
	return &Issue{Code: ErrLexical, Message: fmt.Sprintf(format, args...), Offset: int64(s.pos)}
}

// unescapeJSONString decodes raw (the bytes between a string's quotes, with
// at least one backslash escape already confirmed present) into a materialized
// Go string, following the same escape table as the sibling no-copy JSON tree
// library's internal/escape.Unquote (spec §4.8a's quoting is this decode run
// in reverse).
func unescapeJSONString(raw []byte) (string, error) {
	src := mem.B(raw)
	dec := make([]byte, 0, len(raw))
	i := mem.IndexByte(src, '\\')
	if i < 0 {
		return string(raw), nil
	}
	for src.Len() != 0 {
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return "", errors.New("incomplete escape sequence")
		}
		r, n := mem.DecodeRune(src)
		if n == 0 {
			n = 1
		}
		src = src.SliceFrom(n)
		switch r {
		case '"', '\\', '/':
			dec = append(dec, byte(r))
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			if src.Len() < 4 {
				return "", errors.New("incomplete unicode escape")
			}
			v, err := parseHex4(src.SliceTo(4))
			if err != nil {
				dec = appendRune(dec, utf8.RuneError)
			} else {
				dec = appendRune(dec, rune(v))
			}
			src = src.SliceFrom(4)
		default:
			dec = appendRune(dec, utf8.RuneError)
		}
		i = mem.IndexByte(src, '\\')
		if i < 0 {
			dec = mem.Append(dec, src)
			break
		}
	}
	return string(dec), nil
}

func appendRune(dst []byte, r rune) []byte {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return append(dst, buf[:n]...)
}

func parseHex4(data mem.RO) (int64, error) {
	var v int64
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += int64(b - '0')
		case 'a' <= b && b <= 'f':
			v += int64(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += int64(b - 'A' + 10)
		default:
			return 0, fmt.Errorf("invalid hex digit %q", b)
		}
	}
	return v, nil
}
