package pbnjson

// NumberMode selects how a lexical bridge should hand numbers to the DOM
// builder: preserved raw text, or eagerly converted.
type NumberMode int

const (
	// NumberRaw keeps the original lexical string, deferring conversion
	// until an accessor is called (spec §3.2/§4.2 "Raw").
	NumberRaw NumberMode = iota
	// NumberFloat64 eagerly converts every number to a float64 Double.
	NumberFloat64
	// NumberJSONNumber preserves the raw text but tags it for JSON-Number
	// style downstream handling; behaviorally identical to NumberRaw in
	// this library (both keep text) and named separately only to mirror the
	// lineage's json.Number-flavored default.
	NumberJSONNumber
)

// DuplicateKeyPolicy controls how the DOM builder and enforcement wrapper
// treat a repeated object key.
type DuplicateKeyPolicy int

const (
	// Ignore keeps the last value for a duplicate key silently.
	Ignore DuplicateKeyPolicy = iota
	// Warn keeps the last value and reports an Issue to the sink passed to
	// EnforceSourceWith; Parse passes no sink, so under Parse it behaves
	// like Ignore.
	Warn
	// Error aborts the parse on the first duplicate key.
	Error
)

// Strictness groups the parse-time policy knobs that are not simple limits.
type Strictness struct {
	OnDuplicateKey DuplicateKeyPolicy
}

// ParseOpt configures Parse, ParseFile, and the streaming entry points.
type ParseOpt struct {
	// NumMode selects the lexical bridge's number representation.
	NumMode NumberMode
	// Strictness groups duplicate-key handling.
	Strictness Strictness
	// MaxDepth caps container nesting; 0 disables the check.
	MaxDepth int
	// MaxBytes caps consumed input bytes; 0 disables the check.
	MaxBytes int64
	// FailFast stops at the first enforcement issue instead of collecting.
	FailFast bool
	// Schema, when non-nil, is applied to the input during parsing so
	// validation happens in the same pass as DOM construction (spec §4.3).
	Schema Validator
	// NoCopyStrings requests the builder construct string values that
	// borrow from the input buffer rather than copying, when the driver
	// supports it (spec §3.3/§4.4).
	NoCopyStrings bool
}

// Validator is implemented by the schema package's compiled validator tree.
// It is defined here (not in schema) so the root package's Parse can accept
// one without importing schema, avoiding an import cycle (schema imports
// pbnjson for the Value tree it validates against).
type Validator interface {
	// NewSink returns a fresh EventSink over one parse's worth of SAX
	// events; state does not carry over between calls.
	NewSink() EventSink
}
