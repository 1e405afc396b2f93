package pbnjson

import (
	"os"
)

// Parse decodes b as JSON into a Value tree. When opt.Schema is set, the
// schema's validator runs during parsing (spec §4.3): a validation failure
// aborts the parse, the partial DOM is released, and the caller receives
// Invalid plus the Issues describing the failure.
func Parse(b []byte, opt ParseOpt) (*Value, error) {
	var src Source
	if opt.NoCopyStrings {
		src = newNoCopySource(b)
	} else {
		src = JSONBytes(b)
	}
	src = WithNumberMode(src, resolveNumberMode(opt))
	src = EnforceSourceIfNeeded(src, opt)
	return parseFromSource(src, opt)
}

// ParseFile reads path and parses its contents as JSON.
func ParseFile(path string, opt ParseOpt) (*Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return sharedInvalid, &Issue{Code: ErrResource, Message: err.Error()}
	}
	return Parse(data, opt)
}

func resolveNumberMode(opt ParseOpt) NumberMode {
	return opt.NumMode
}

func parseFromSource(src Source, opt ParseOpt) (*Value, error) {
	builder := newDOMBuilder(src.NumberMode())
	sinks := []EventSink{builder}
	if opt.Schema != nil {
		sinks = append(sinks, opt.Schema.NewSink())
	}
	if err := Dispatch(src, sinks...); err != nil {
		if iss, ok := AsIssues(err); ok {
			return sharedInvalid, iss
		}
		if issue, ok := err.(*Issue); ok {
			return sharedInvalid, Issues{*issue}
		}
		return sharedInvalid, err
	}
	return builder.Result(), nil
}

// StreamParser drives a parse incrementally via Feed, for callers that
// receive input in chunks rather than as one contiguous buffer (spec §6.3's
// "streaming form with begin/feed/end").
type StreamParser struct {
	opt    ParseOpt
	buf    []byte
	done   bool
	result *Value
	err    error
}

// Begin starts a new incremental parse under opt.
func Begin(opt ParseOpt) *StreamParser {
	return &StreamParser{opt: opt}
}

// Feed appends more input bytes. Parsing itself happens lazily in End,
// since the underlying tokenizer contract (spec §6.1) is a whole-buffer or
// io.Reader adapter, not a resumable incremental lexer.
func (p *StreamParser) Feed(chunk []byte) error {
	if p.done {
		return &Issue{Code: ErrGeneric, Message: "Feed called after End"}
	}
	p.buf = append(p.buf, chunk...)
	return nil
}

// End finalizes the stream and returns the parsed Value.
func (p *StreamParser) End() (*Value, error) {
	if p.done {
		return p.result, p.err
	}
	p.done = true
	p.result, p.err = Parse(p.buf, p.opt)
	return p.result, p.err
}

// StreamParse is a convenience wrapper equivalent to Begin/Feed/End for a
// caller that already has the complete input as a byte slice.
func StreamParse(b []byte, opt ParseOpt) (*Value, error) {
	sp := Begin(opt)
	if err := sp.Feed(b); err != nil {
		return sharedInvalid, err
	}
	return sp.End()
}
