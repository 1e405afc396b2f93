// Package source, when blank-imported, installs source/gojson's driver as
// the default JSON driver (spec §6.6): goccy/go-json-backed when built with
// the gojson tag, the encoding/json-based stub otherwise. It lives outside the root
// package to avoid an import cycle (pbnjson must not import source/gojson
// directly, since source/gojson imports pbnjson).
package source

import (
	pbnjson "github.com/webosce/pbnjson"
	drvgojson "github.com/webosce/pbnjson/source/gojson"
)

func init() { pbnjson.SetJSONDriver(drvgojson.Driver()) }
