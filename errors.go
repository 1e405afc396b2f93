package pbnjson

import (
	"errors"
	"fmt"
	"strings"

	"github.com/webosce/pbnjson/i18n"
)

// Error kind codes. This enumeration is closed: every Issue produced by this
// package carries exactly one of these codes.
const (
	ErrLexical         = "lexical"
	ErrTypeMismatch    = "type_mismatch"
	ErrRange           = "range"
	ErrMissingRequired = "missing_required"
	ErrDuplicate       = "duplicate"
	ErrUnresolved      = "unresolved"
	ErrCycleDetected   = "cycle_detected"
	ErrConversion      = "conversion"
	ErrResource        = "resource"
	ErrGeneric         = "generic"
)

// Issue represents a single parse or validation failure.
type Issue struct {
	Path    string // JSON Pointer, e.g. /items/2/price.
	Code    string // One of the Err* constants above.
	Message string
	Hint    string
	Cause   error
	Offset  int64 // Byte offset in the input, -1 when unknown.
	Params  map[string]any
}

// Error lets a single *Issue be returned directly from APIs that fail for
// exactly one reason (cycle rejection, a type mismatch on a mutator).
func (i *Issue) Error() string {
	if i.Path != "" {
		return i.Code + " at " + i.Path
	}
	return i.Code
}

// Localized renders i's message through the current i18n.Translator, giving
// a caller a swappable alternative to the English diagnostic in Message
// (spec.md §7's i18n-backed message path).
func (i *Issue) Localized() string {
	return i18n.T(i.Code, stringifyParams(i.Params))
}

func stringifyParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		out[k] = fmt.Sprint(v)
	}
	return out
}

// Issues is a collection of Issue values that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to dst, initializing it when nil.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from err via errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
