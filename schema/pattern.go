package schema

import "regexp"

// compiledPattern wraps a compiled ECMA-ish pattern used for both the
// "pattern" string keyword and "patternProperties" keys. It is a thin
// indirection so container.go doesn't need to import regexp directly for
// the patternProp slice element type.
type compiledPattern struct {
	re *regexp.Regexp
}

func compilePattern(expr string) (*compiledPattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &compiledPattern{re: re}, nil
}

func (c *compiledPattern) MatchString(s string) bool {
	if c == nil || c.re == nil {
		return false
	}
	return c.re.MatchString(s)
}

func (c *compiledPattern) String() string {
	if c == nil || c.re == nil {
		return ""
	}
	return c.re.String()
}
