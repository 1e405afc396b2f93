package pbnjson

import "testing"

func TestGenerateCompactRoundTrips(t *testing.T) {
	const in = `{"a":1,"b":[true,false,null],"c":"s\"tr"}`
	v, err := Parse([]byte(in), ParseOpt{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer v.Release()
	out, err := Generate(v, GenCompact)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	v2, err := Parse(out, ParseOpt{})
	if err != nil {
		t.Fatalf("re-parsing generated output failed: %v (output: %s)", err, out)
	}
	defer v2.Release()
	if !Equal(v, v2) {
		t.Fatalf("round trip changed structure: %s -> %s", in, out)
	}
}

func TestGeneratePrettyIndentsNestedContainers(t *testing.T) {
	v := NewObjectFrom(KV{"a", NewArrayFrom(Int(1), Int(2))})
	defer v.Release()
	out, err := Generate(v, GenPretty)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if s[0] != '{' {
		t.Fatalf("expected output to start with '{', got %q", s)
	}
	// Pretty mode must contain newlines between siblings.
	hasNewline := false
	for _, c := range s {
		if c == '\n' {
			hasNewline = true
			break
		}
	}
	if !hasNewline {
		t.Fatalf("expected pretty output to contain newlines, got %q", s)
	}
}

func TestGenerateEmptyContainers(t *testing.T) {
	v := NewObjectFrom(KV{"empty_arr", NewArray(0)}, KV{"empty_obj", NewObject(0)})
	defer v.Release()
	out, err := Generate(v, GenCompact)
	if err != nil {
		t.Fatal(err)
	}
	v2, err := Parse(out, ParseOpt{})
	if err != nil {
		t.Fatalf("re-parsing failed: %v (output %s)", err, out)
	}
	defer v2.Release()
	if v2.ObjectGet("empty_arr").ArrayLen() != 0 {
		t.Fatal("expected empty_arr to round-trip as an empty array")
	}
	if v2.ObjectGet("empty_obj").ObjectLen() != 0 {
		t.Fatal("expected empty_obj to round-trip as an empty object")
	}
}

func TestGenerateRejectsInvalidUTF8InStringValue(t *testing.T) {
	v := String("valid-prefix-\xff\xfe-invalid")
	defer v.Release()
	if _, err := Generate(v, GenCompact); err == nil {
		t.Fatal("expected Generate to reject an invalid UTF-8 byte sequence")
	}
}

func TestWriteStringRejectsInvalidUTF8(t *testing.T) {
	g := NewGenerator(GenCompact, "")
	g.WriteString("\xc0\xaf")
	if _, err := g.Finish(); err == nil {
		t.Fatal("expected WriteString to reject an invalid UTF-8 byte sequence")
	}
}

func TestWriteStringEscapesControlCharacters(t *testing.T) {
	g := NewGenerator(GenCompact, "")
	g.WriteString("a\tb\nc\"d\\e")
	out, err := g.Finish()
	if err != nil {
		t.Fatal(err)
	}
	want := `"a\tb\nc\"d\\e"`
	if string(out) != want {
		t.Fatalf("got %q, want %q", out, want)
	}
}
