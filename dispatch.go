package pbnjson

import (
	"errors"
	"io"
)

// EventSink receives SAX events pumped by Dispatch. Returning a non-nil
// error aborts the pump immediately (spec §4.3: "the validator sees events
// before the builder commits state, so a validation failure aborts the
// parse").
type EventSink interface {
	OnEvent(tok Token) error
	// End is called once, in order, after the source is exhausted
	// (io.EOF), even if no OnEvent call preceded it (empty input never
	// happens for valid JSON, but a sink may still want the hook).
	End() error
}

// Dispatch pumps Tokens from src, delivering each to every sink in order,
// and stops (returning the first error) the moment any sink's OnEvent
// returns a non-nil error (spec §4.3a). Parse wires exactly two sinks in
// practice: a domBuilder and, when a schema was supplied, the sink returned
// by that schema's NewSink.
func Dispatch(src Source, sinks ...EventSink) error {
	for {
		tok, err := src.NextToken()
		if err != nil {
			if errors.Is(err, io.EOF) {
				for _, s := range sinks {
					if err := s.End(); err != nil {
						return err
					}
				}
				return nil
			}
			return &Issue{Code: ErrLexical, Message: err.Error(), Offset: src.Location()}
		}
		// A no-copy Source leaves String empty and Bytes set for
		// Key/String tokens (spec §3.3/§4.4): materialize a Go string
		// once here so every sink but the DOM builder, which still
		// prefers Bytes to build a no-copy Value, has something to
		// read without each needing its own Bytes-aware branch.
		if tok.Bytes != nil && tok.String == "" {
			tok.String = string(tok.Bytes)
		}
		for _, s := range sinks {
			if err := s.OnEvent(tok); err != nil {
				return err
			}
		}
	}
}
