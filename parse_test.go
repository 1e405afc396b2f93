package pbnjson

import "testing"

func TestParseRoundTripsScalarsAndContainers(t *testing.T) {
	const in = `{"a":1,"b":[true,false,null,"s"],"c":{"nested":2.5}}`
	v, err := Parse([]byte(in), ParseOpt{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	defer v.Release()
	if v.Kind() != KindObject {
		t.Fatalf("expected object root, got %v", v.Kind())
	}
	arr := v.ObjectGet("b")
	if arr.ArrayLen() != 4 {
		t.Fatalf("expected 4 elements in b, got %d", arr.ArrayLen())
	}
	if !arr.ArrayGet(0).AsBool() {
		t.Fatal("b[0] should be true")
	}
	nested := v.ObjectGet("c").ObjectGet("nested")
	f, res := nested.AsNumber().GetDouble()
	if res != ConvOK || f != 2.5 {
		t.Fatalf("expected c.nested == 2.5, got (%v, %v)", f, res)
	}
}

func TestParseDuplicateKeyPolicyError(t *testing.T) {
	const in = `{"a":1,"a":2}`
	_, err := Parse([]byte(in), ParseOpt{Strictness: Strictness{OnDuplicateKey: Error}})
	if err == nil {
		t.Fatal("expected an error under DuplicateKeyPolicy Error")
	}
}

func TestParseMaxDepthEnforced(t *testing.T) {
	const in = `[[[[[1]]]]]`
	_, err := Parse([]byte(in), ParseOpt{MaxDepth: 2})
	if err == nil {
		t.Fatal("expected MaxDepth to reject deeply nested input")
	}
}

func TestParseInvalidJSONReturnsInvalidValue(t *testing.T) {
	v, err := Parse([]byte(`{not json`), ParseOpt{})
	if err == nil {
		t.Fatal("expected an error for malformed input")
	}
	if v.IsValid() {
		t.Fatal("a failed parse must return the Invalid sentinel, not a partial tree")
	}
}

func TestStreamParseBeginFeedEnd(t *testing.T) {
	sp := Begin(ParseOpt{})
	if err := sp.Feed([]byte(`{"x":`)); err != nil {
		t.Fatal(err)
	}
	if err := sp.Feed([]byte(`42}`)); err != nil {
		t.Fatal(err)
	}
	v, err := sp.End()
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	defer v.Release()
	got, _ := v.ObjectGet("x").AsNumber().GetInt64()
	if got != 42 {
		t.Fatalf("expected x == 42, got %d", got)
	}
}

func TestNumberFloat64ModeConvertsEagerly(t *testing.T) {
	v, err := Parse([]byte(`3.5`), ParseOpt{NumMode: NumberFloat64})
	if err != nil {
		t.Fatal(err)
	}
	defer v.Release()
	f, res := v.AsNumber().GetDouble()
	if res != ConvOK || f != 3.5 {
		t.Fatalf("expected eagerly-converted 3.5, got (%v, %v)", f, res)
	}
}
