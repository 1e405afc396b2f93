package schema

import (
	"testing"

	pbnjson "github.com/webosce/pbnjson"
)

func TestCompileSimpleObjectSchema(t *testing.T) {
	doc := []byte(`{
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string", "minLength": 1},
			"age": {"type": "integer", "minimum": 0}
		}
	}`)
	s, err := Compile(doc, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	ok := pbnjson.NewObjectFrom(pbnjson.KV{Key: "name", Value: pbnjson.String("Ada")}, pbnjson.KV{Key: "age", Value: pbnjson.Int(30)})
	defer ok.Release()
	var issues pbnjson.Issues
	s.CheckValue(ok, &issues)
	if len(issues) != 0 {
		t.Fatalf("expected a valid document to pass, got %v", issues)
	}

	bad := pbnjson.NewObjectFrom(pbnjson.KV{Key: "age", Value: pbnjson.Int(-1)})
	defer bad.Release()
	issues = nil
	s.CheckValue(bad, &issues)
	if len(issues) == 0 {
		t.Fatal("expected a missing required property and a negative age to fail")
	}
}

func TestCompileKeywordOrderRefTakesPrecedenceOverType(t *testing.T) {
	doc := []byte(`{"$ref": "#/definitions/x", "type": "string"}`)
	s, err := Compile(doc, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, ok := s.root.(*RefNode); !ok {
		t.Fatalf("expected $ref to take precedence over type, got %T", s.root)
	}
}

func TestCompileEnumTakesPrecedenceOverType(t *testing.T) {
	doc := []byte(`{"type": "string", "enum": ["a", "b"]}`)
	s, err := Compile(doc, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, ok := s.root.(*EnumNode); !ok {
		t.Fatalf("expected enum to take precedence over type, got %T", s.root)
	}
}

func TestCompileArrayOfTypesBuildsAnyOf(t *testing.T) {
	doc := []byte(`{"type": ["string", "number"]}`)
	s, err := Compile(doc, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	comb, ok := s.root.(*CombinatorNode)
	if !ok || comb.kind != CombAnyOf {
		t.Fatalf("expected an anyOf combinator for a type array, got %T", s.root)
	}

	var issues pbnjson.Issues
	s.CheckValue(pbnjson.String("s"), &issues)
	if len(issues) != 0 {
		t.Fatalf("expected a string to satisfy type:[string,number], got %v", issues)
	}
	issues = nil
	s.CheckValue(pbnjson.Bool(true), &issues)
	if len(issues) == 0 {
		t.Fatal("expected a bool to fail type:[string,number]")
	}
}

func TestCompileUntypedSchemaInfersObjectFromProperties(t *testing.T) {
	doc := []byte(`{"properties": {"x": {"type": "number"}}}`)
	s, err := Compile(doc, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if _, ok := s.root.(*ObjectNode); !ok {
		t.Fatalf("expected a bare properties keyword to imply an ObjectNode, got %T", s.root)
	}
}

func TestCompileDefaultKeywordIsCaptured(t *testing.T) {
	doc := []byte(`{"type": "string", "default": "fallback"}`)
	s, err := Compile(doc, nil)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	def := s.root.Default()
	if def == nil || def.AsString() != "fallback" {
		t.Fatalf("expected the default keyword to be captured, got %v", def)
	}
}

func TestCompileFileReadsFromDisk(t *testing.T) {
	if _, err := CompileFile("/nonexistent/path/schema.json", nil); err == nil {
		t.Fatal("expected CompileFile to surface a file read error")
	}
}

func TestParseBytesToleratesComments(t *testing.T) {
	doc := []byte(`{
		// a string schema
		"type": "string"
	}`)
	n, err := ParseBytes(doc)
	if err != nil {
		t.Fatalf("ParseBytes failed on a commented schema: %v", err)
	}
	if _, ok := n.(*StringNode); !ok {
		t.Fatalf("expected a StringNode, got %T", n)
	}
}
