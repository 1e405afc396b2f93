package schema

import pbnjson "github.com/webosce/pbnjson"

// streamValidator implements pbnjson.EventSink. Rather than attempt a true
// per-event automaton over combinators and enum (spec §4.5's own suggested
// fallback for anyOf is "recording events in a replay buffer... or running
// all children in parallel and OR-ing outcomes at the matching End*"), it
// generalizes that idea to the whole document: it mirrors the root
// package's own domBuilder to materialize a private Value tree as events
// arrive, then runs the compiled Node tree once, at End, against the
// finished value. This costs one extra tree (released immediately after
// checking) in exchange for every combinator, $ref, and Enum kind sharing
// the same simple, value-level CheckValue.
type streamValidator struct {
	schema  *Schema
	stack   []*pbnjson.Value
	pending string
	haveKey bool
	root    *pbnjson.Value
	err     error
	issues  pbnjson.Issues
}

func newStreamValidator(s *Schema) *streamValidator {
	return &streamValidator{schema: s}
}

func (b *streamValidator) OnEvent(tok pbnjson.Token) error {
	if b.err != nil {
		return b.err
	}
	switch tok.Kind {
	case pbnjson.TokenBeginObject:
		b.push(pbnjson.NewObject(0))
	case pbnjson.TokenBeginArray:
		b.push(pbnjson.NewArray(0))
	case pbnjson.TokenEndObject, pbnjson.TokenEndArray:
		b.pop()
	case pbnjson.TokenKey:
		b.pending = tok.String
		b.haveKey = true
	case pbnjson.TokenString:
		b.attach(pbnjson.String(tok.String))
	case pbnjson.TokenBool:
		b.attach(pbnjson.Bool(tok.Bool))
	case pbnjson.TokenNull:
		b.attach(pbnjson.Null())
	case pbnjson.TokenNumber:
		b.attach(pbnjson.NumberValue(pbnjson.NumberFromRaw(tok.Number)))
	}
	return b.err
}

func (b *streamValidator) push(container *pbnjson.Value) {
	if len(b.stack) == 0 && b.root == nil {
		b.root = container
		b.stack = append(b.stack, container)
		return
	}
	b.attachContainer(container)
	b.stack = append(b.stack, container)
}

func (b *streamValidator) attachContainer(v *pbnjson.Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	b.attachTo(b.stack[len(b.stack)-1], v)
}

func (b *streamValidator) pop() {
	if len(b.stack) == 0 {
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *streamValidator) attach(v *pbnjson.Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	b.attachTo(b.stack[len(b.stack)-1], v)
}

func (b *streamValidator) attachTo(container, v *pbnjson.Value) {
	switch container.Kind() {
	case pbnjson.KindObject:
		if !b.haveKey {
			b.err = &pbnjson.Issue{Code: pbnjson.ErrGeneric, Message: "value without a preceding key inside object"}
			v.Release()
			return
		}
		if err := container.ObjectPut(pbnjson.String(b.pending), v); err != nil {
			b.err = err
		}
		b.haveKey = false
		b.pending = ""
	case pbnjson.KindArray:
		if err := container.ArrayAppend(v); err != nil {
			b.err = err
		}
	}
}

// End runs the compiled schema against the materialized document and
// reports any violations as Issues (spec §4.3: the validator sink's
// failure aborts the fused parse).
func (b *streamValidator) End() error {
	if b.err != nil {
		return b.err
	}
	if b.root == nil {
		return nil
	}
	b.schema.CheckValue(b.root, &b.issues)
	b.root.Release()
	b.root = nil
	if len(b.issues) > 0 {
		return b.issues
	}
	return nil
}
