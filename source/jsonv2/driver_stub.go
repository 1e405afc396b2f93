//go:build !jsonv2

package jsonv2

import (
	"io"

	pbnjson "github.com/webosce/pbnjson"
	jsonsrc "github.com/webosce/pbnjson/source/json"
)

// Driver returns a fallback driver when jsonv2 build tag is not enabled.
// It delegates to the default encoding/json-based source.
func Driver() pbnjson.JSONDriver { return driverStub{} }

type driverStub struct{}

func (driverStub) NewReader(r io.Reader) pbnjson.Source {
	return pbnjson.SourceFromEngine(jsonsrc.NewReader(r), pbnjson.NumberJSONNumber)
}

func (driverStub) NewBytes(b []byte) pbnjson.Source {
	return pbnjson.SourceFromEngine(jsonsrc.NewBytes(b), pbnjson.NumberJSONNumber)
}

func (driverStub) Name() string { return "encoding/json (jsonv2 stub)" }
