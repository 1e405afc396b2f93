package pbnjson

// domBuilder maintains a stack of open containers and incrementally builds
// a Value tree from SAX events (spec §4.4). It implements EventSink so
// Dispatch can fan events to it alongside an active validator.
type domBuilder struct {
	stack        []*Value
	pending      string // stashed key, valid only while awaiting the next value
	pendingBytes []byte // set instead of pending when the driver handed a no-copy key
	haveKey      bool
	root         *Value
	numMode      NumberMode
	err          error
}

func newDOMBuilder(mode NumberMode) *domBuilder {
	return &domBuilder{numMode: mode}
}

func (b *domBuilder) OnEvent(tok Token) error {
	if b.err != nil {
		return b.err
	}
	switch tok.Kind {
	case TokenBeginObject:
		b.push(NewObject(0))
	case TokenBeginArray:
		b.push(NewArray(0))
	case TokenEndObject, TokenEndArray:
		b.pop()
	case TokenKey:
		b.pending = tok.String
		b.pendingBytes = tok.Bytes
		b.haveKey = true
	case TokenString:
		if tok.Bytes != nil {
			b.attach(StringNoCopy(tok.Bytes))
		} else {
			b.attach(String(tok.String))
		}
	case TokenBool:
		b.attach(Bool(tok.Bool))
	case TokenNull:
		b.attach(Null())
	case TokenNumber:
		b.attach(b.makeNumber(tok.Number))
	}
	return b.err
}

func (b *domBuilder) makeNumber(lex string) *Value {
	switch b.numMode {
	case NumberFloat64:
		var d float64
		var res ConversionResult
		n := NumberFromRaw(lex)
		d, res = n.GetDouble()
		if res != ConvOK {
			return NumberValue(n)
		}
		return Double(d)
	default:
		return NumberValue(NumberFromRaw(lex))
	}
}

func (b *domBuilder) push(container *Value) {
	if len(b.stack) == 0 && b.root == nil {
		b.root = container
		b.stack = append(b.stack, container)
		return
	}
	b.attachContainer(container)
	b.stack = append(b.stack, container)
}

// attachContainer is attach's logic for a container that will remain open
// (still on the stack) after being attached to its parent.
func (b *domBuilder) attachContainer(v *Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	top := b.stack[len(b.stack)-1]
	b.attachTo(top, v)
}

func (b *domBuilder) pop() {
	if len(b.stack) == 0 {
		return
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *domBuilder) attach(v *Value) {
	if len(b.stack) == 0 {
		b.root = v
		return
	}
	top := b.stack[len(b.stack)-1]
	b.attachTo(top, v)
}

func (b *domBuilder) attachTo(container, v *Value) {
	switch container.Kind() {
	case KindObject:
		if !b.haveKey {
			b.err = &Issue{Code: ErrGeneric, Message: "value without a preceding key inside object"}
			v.Release()
			return
		}
		if err := container.ObjectPut(b.keyValue(), v); err != nil {
			b.err = err
		}
		b.haveKey = false
		b.pending = ""
		b.pendingBytes = nil
	case KindArray:
		if err := container.ArrayAppend(v); err != nil {
			b.err = err
		}
	}
}

// keyValue builds the Value for the currently stashed key, preferring a
// no-copy representation when the driver supplied one.
func (b *domBuilder) keyValue() *Value {
	if b.pendingBytes != nil {
		return StringNoCopy(b.pendingBytes)
	}
	return String(b.pending)
}

func (b *domBuilder) End() error { return b.err }

// Result returns the fully built root Value, or Invalid if nothing was ever
// attached (e.g. the stream was empty) or the builder is mid-error, per
// spec §7 ("the caller receives Invalid" on an aborted parse).
func (b *domBuilder) Result() *Value {
	if b.err != nil {
		if b.root != nil {
			b.root.Release()
			b.root = nil
		}
		return sharedInvalid
	}
	if b.root == nil {
		return sharedInvalid
	}
	return b.root
}
