package schema

import (
	"testing"

	pbnjson "github.com/webosce/pbnjson"
)

func TestCompileYAMLBuildsWorkingSchema(t *testing.T) {
	doc := []byte(`
type: object
required: [name]
properties:
  name:
    type: string
    minLength: 1
  tags:
    type: array
    items:
      type: string
`)
	s, err := CompileYAML(doc, nil)
	if err != nil {
		t.Fatalf("CompileYAML failed: %v", err)
	}

	ok := pbnjson.NewObjectFrom(
		pbnjson.KV{Key: "name", Value: pbnjson.String("Ada")},
		pbnjson.KV{Key: "tags", Value: pbnjson.NewArrayFrom(pbnjson.String("x"))},
	)
	defer ok.Release()
	var issues pbnjson.Issues
	s.CheckValue(ok, &issues)
	if len(issues) != 0 {
		t.Fatalf("expected a valid document to pass, got %v", issues)
	}

	bad := pbnjson.NewObject(0)
	defer bad.Release()
	issues = nil
	s.CheckValue(bad, &issues)
	if len(issues) == 0 {
		t.Fatal("expected a missing required 'name' to fail")
	}
}

func TestYamlToValueScalars(t *testing.T) {
	cases := []struct {
		in   any
		kind pbnjson.Kind
	}{
		{nil, pbnjson.KindNull},
		{true, pbnjson.KindBool},
		{int(3), pbnjson.KindNumber},
		{3.5, pbnjson.KindNumber},
		{"s", pbnjson.KindString},
	}
	for _, c := range cases {
		v := yamlToValue(c.in)
		if v.Kind() != c.kind {
			t.Fatalf("yamlToValue(%v) kind = %v, want %v", c.in, v.Kind(), c.kind)
		}
		v.Release()
	}
}

func TestYamlToValueNormalizesMapAnyAny(t *testing.T) {
	in := map[any]any{"a": 1, 2: "two"}
	v := yamlToValue(in)
	defer v.Release()
	if v.Kind() != pbnjson.KindObject {
		t.Fatalf("expected an object, got %v", v.Kind())
	}
	if i, res := v.ObjectGet("a").AsNumber().GetInt64(); res != pbnjson.ConvOK || i != 1 {
		t.Fatalf("expected a == 1, got (%v, %v)", i, res)
	}
	// A non-string key is stringified via fmt.Sprint.
	if v.ObjectGet("2").AsString() != "two" {
		t.Fatalf("expected numeric key 2 to be stringified, got %v", v.ObjectGet("2"))
	}
}

func TestYamlToValueNestedSequenceAndMapping(t *testing.T) {
	in := []any{map[string]any{"k": "v"}, 1, "s"}
	v := yamlToValue(in)
	defer v.Release()
	if v.Kind() != pbnjson.KindArray || v.ArrayLen() != 3 {
		t.Fatalf("expected a 3-element array, got %v len=%d", v.Kind(), v.ArrayLen())
	}
	if v.ArrayGet(0).ObjectGet("k").AsString() != "v" {
		t.Fatal("expected the nested mapping to round trip correctly")
	}
}
