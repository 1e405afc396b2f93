//go:build !gojson

package gojson

import (
	"io"

	pbnjson "github.com/webosce/pbnjson"
	jsonsrc "github.com/webosce/pbnjson/source/json"
)

// Driver returns a stub driver description when the gojson build tag is not
// enabled. It delegates to the encoding/json-based source directly to avoid
// recursion.
func Driver() pbnjson.JSONDriver { return stub{} }

type stub struct{}

func (stub) NewReader(r io.Reader) pbnjson.Source {
	return pbnjson.SourceFromEngine(jsonsrc.NewReader(r), pbnjson.NumberJSONNumber)
}
func (stub) NewBytes(b []byte) pbnjson.Source {
	return pbnjson.SourceFromEngine(jsonsrc.NewBytes(b), pbnjson.NumberJSONNumber)
}
func (stub) Name() string { return "encoding/json (gojson stub)" }
