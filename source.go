package pbnjson

import (
	"io"
	"sync"

	eng "github.com/webosce/pbnjson/internal/engine"
	jsonsrc "github.com/webosce/pbnjson/source/json"
)

// TokenKind enumerates SAX-style lexical token kinds (spec §4.3).
type TokenKind int

const (
	TokenBeginObject TokenKind = iota
	TokenEndObject
	TokenBeginArray
	TokenEndArray
	TokenKey
	TokenString
	TokenNumber
	TokenBool
	TokenNull
)

// Token is one lexical event with an approximate byte offset (-1 if
// unknown). NumberMode on the owning Source controls how Number should be
// interpreted downstream.
type Token struct {
	Kind   TokenKind
	String string // Key or String payload.
	// Bytes, when non-nil, is a no-copy Key/String payload borrowing
	// directly from the driver's input buffer (spec §3.3/§4.4, opted into
	// via ParseOpt.NoCopyStrings); String is left empty in that case.
	Bytes  []byte
	Number string // Original lexical form of a number.
	Bool   bool
	Offset int64
}

// Source abstracts over any concrete lexical bridge (spec §6.1's tokenizer
// contract, consumed rather than implemented by this library).
type Source interface {
	NextToken() (Token, error)
	NumberMode() NumberMode
	Location() int64
}

// JSONDriver builds a Source from JSON bytes via a pluggable SPI (spec §6.6:
// the core stays tokenizer-agnostic). The default is encoding/json-backed;
// source/gojson supplies a goccy/go-json-backed alternative.
type JSONDriver interface {
	NewReader(r io.Reader) Source
	NewBytes(b []byte) Source
	Name() string
}

var (
	jsonDriverMu      sync.RWMutex
	currentJSONDriver JSONDriver = defaultJSONDriver{}
)

// SetJSONDriver replaces the global JSON driver; nil is ignored.
func SetJSONDriver(d JSONDriver) {
	if d == nil {
		return
	}
	jsonDriverMu.Lock()
	currentJSONDriver = d
	jsonDriverMu.Unlock()
}

// UseDefaultJSONDriver restores the built-in encoding/json-backed driver.
func UseDefaultJSONDriver() {
	jsonDriverMu.Lock()
	currentJSONDriver = defaultJSONDriver{}
	jsonDriverMu.Unlock()
}

func getJSONDriver() JSONDriver {
	jsonDriverMu.RLock()
	d := currentJSONDriver
	jsonDriverMu.RUnlock()
	return d
}

type defaultJSONDriver struct{}

func (defaultJSONDriver) NewReader(r io.Reader) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewReader(r), numMode: NumberJSONNumber}
}
func (defaultJSONDriver) NewBytes(b []byte) Source {
	return &engineSourceAdapter{inner: jsonsrc.NewBytes(b), numMode: NumberJSONNumber}
}
func (defaultJSONDriver) Name() string { return "encoding/json" }

// JSONReader wraps an io.Reader as a Source using the current driver.
func JSONReader(r io.Reader) Source { return getJSONDriver().NewReader(r) }

// JSONBytes wraps a byte slice as a Source using the current driver.
func JSONBytes(b []byte) Source { return getJSONDriver().NewBytes(b) }

// SourceFromEngine wraps an engine.TokenSource as a Source under the given
// NumberMode; concrete drivers under source/ use this to plug in.
func SourceFromEngine(inner eng.TokenSource, mode NumberMode) Source {
	return &engineSourceAdapter{inner: inner, numMode: mode}
}

// EngineTokenSource adapts a Source down to an engine.TokenSource so the
// enforcement wrapper (which knows nothing about NumberMode) can wrap any
// Source, not only ones already engine-backed.
func EngineTokenSource(s Source) eng.TokenSource { return &sourceEngineAdapter{s: s} }

// EnforceSource wraps s with runtime enforcement (duplicate keys, depth,
// bytes) derived from opt (spec §4.4a: the DOM builder sits downstream of
// this wrapper).
func EnforceSource(s Source, opt ParseOpt) Source {
	return EnforceSourceWith(s, opt, nil)
}

// EnforceSourceIfNeeded skips wrapping when opt effectively disables every
// enforcement check, avoiding overhead on the common unconstrained parse.
func EnforceSourceIfNeeded(s Source, opt ParseOpt) Source {
	if opt.Strictness.OnDuplicateKey == Ignore && opt.MaxDepth == 0 && opt.MaxBytes == 0 {
		return s
	}
	return EnforceSource(s, opt)
}

// EnforceSourceWith wraps s with runtime enforcement, forwarding any
// enforcement issue to sink (translated from the engine's lightweight
// SimpleIssue into a public Issue) before it aborts the stream.
func EnforceSourceWith(s Source, opt ParseOpt, sink func(Issue)) Source {
	var forward func(eng.SimpleIssue)
	if sink != nil {
		forward = func(si eng.SimpleIssue) {
			sink(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: s.Location()})
		}
	}
	if ea, ok := s.(*engineSourceAdapter); ok {
		enforced := eng.WrapWithEnforcement(ea.inner, eng.EnforceOptions{
			OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
			MaxDepth:    opt.MaxDepth,
			MaxBytes:    opt.MaxBytes,
			IssueSink:   forward,
			FailFast:    opt.FailFast,
		})
		return &engineSourceAdapter{inner: enforced, numMode: s.NumberMode()}
	}
	engSrc := EngineTokenSource(s)
	enforced := eng.WrapWithEnforcement(engSrc, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.Strictness.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		MaxBytes:    opt.MaxBytes,
		IssueSink:   forward,
		FailFast:    opt.FailFast,
	})
	return SourceFromEngine(enforced, s.NumberMode())
}

func toEngineDup(p DuplicateKeyPolicy) eng.DuplicateStrictness {
	switch p {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

// WithNumberMode wraps s, overriding the NumberMode it reports.
func WithNumberMode(s Source, m NumberMode) Source { return &overrideNumberMode{inner: s, mode: m} }

type overrideNumberMode struct {
	inner Source
	mode  NumberMode
}

func (o *overrideNumberMode) NextToken() (Token, error) { return o.inner.NextToken() }
func (o *overrideNumberMode) NumberMode() NumberMode    { return o.mode }
func (o *overrideNumberMode) Location() int64           { return o.inner.Location() }

// engineSourceAdapter lifts an engine.TokenSource (no NumberMode concept) up
// to the public Source interface.
type engineSourceAdapter struct {
	inner   eng.TokenSource
	numMode NumberMode
}

func (s *engineSourceAdapter) NextToken() (Token, error) {
	t, err := s.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	return Token{Kind: fromEngineKind(t.Kind), String: t.String, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (s *engineSourceAdapter) NumberMode() NumberMode { return s.numMode }
func (s *engineSourceAdapter) Location() int64        { return s.inner.Location() }

// sourceEngineAdapter is the inverse: it lowers a public Source down to
// engine.TokenSource so WrapWithEnforcement can be applied to a Source that
// did not originate from an engine-backed driver.
type sourceEngineAdapter struct{ s Source }

func (a *sourceEngineAdapter) NextToken() (eng.Token, error) {
	t, err := a.s.NextToken()
	if err != nil {
		return eng.Token{}, err
	}
	// eng.Token has no no-copy payload of its own: a Source wrapped for
	// enforcement materializes a Bytes-backed token into a plain string
	// here, trading away the no-copy win for whichever tokens the
	// enforcement wrapper itself needs to inspect (duplicate-key checks).
	str := t.String
	if str == "" && t.Bytes != nil {
		str = string(t.Bytes)
	}
	return eng.Token{Kind: toEngineKind(t.Kind), String: str, Number: t.Number, Bool: t.Bool, Offset: t.Offset}, nil
}
func (a *sourceEngineAdapter) Location() int64 { return a.s.Location() }

func fromEngineKind(k eng.Kind) TokenKind {
	switch k {
	case eng.KindBeginObject:
		return TokenBeginObject
	case eng.KindEndObject:
		return TokenEndObject
	case eng.KindBeginArray:
		return TokenBeginArray
	case eng.KindEndArray:
		return TokenEndArray
	case eng.KindKey:
		return TokenKey
	case eng.KindString:
		return TokenString
	case eng.KindNumber:
		return TokenNumber
	case eng.KindBool:
		return TokenBool
	default:
		return TokenNull
	}
}

func toEngineKind(k TokenKind) eng.Kind {
	switch k {
	case TokenBeginObject:
		return eng.KindBeginObject
	case TokenEndObject:
		return eng.KindEndObject
	case TokenBeginArray:
		return eng.KindBeginArray
	case TokenEndArray:
		return eng.KindEndArray
	case TokenKey:
		return eng.KindKey
	case TokenString:
		return eng.KindString
	case TokenNumber:
		return eng.KindNumber
	case TokenBool:
		return eng.KindBool
	default:
		return eng.KindNull
	}
}
