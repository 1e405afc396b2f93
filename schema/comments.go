package schema

import "github.com/tailscale/hujson"

// standardize strips comments and trailing commas from a schema document
// before it reaches the JSON lexical bridge (spec §4.6b): JSON Schema
// documents are hand-authored far more often than the data they validate,
// so this package alone tolerates the JWCC-ish dialect hujson standardizes.
// Data documents parsed by the root package are never run through this.
func standardize(b []byte) ([]byte, error) {
	ast, err := hujson.Parse(b)
	if err != nil {
		return nil, err
	}
	ast.Standardize()
	return ast.Pack(), nil
}
