package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	pbnjson "github.com/webosce/pbnjson"
)

func feedTokens(t *testing.T, sink pbnjson.EventSink, toks []pbnjson.Token) error {
	t.Helper()
	for _, tok := range toks {
		if err := sink.OnEvent(tok); err != nil {
			return err
		}
	}
	return sink.End()
}

func TestStreamValidatorAcceptsMatchingDocument(t *testing.T) {
	s, err := Compile([]byte(`{"type":"object","required":["name"],"properties":{"name":{"type":"string"}}}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	sink := s.NewSink()
	toks := []pbnjson.Token{
		{Kind: pbnjson.TokenBeginObject},
		{Kind: pbnjson.TokenKey, String: "name"},
		{Kind: pbnjson.TokenString, String: "Ada"},
		{Kind: pbnjson.TokenEndObject},
	}
	if err := feedTokens(t, sink, toks); err != nil {
		t.Fatalf("expected a matching document to validate cleanly, got %v", err)
	}
}

func TestStreamValidatorReportsTheSameIssuesAsDirectCheckValue(t *testing.T) {
	s, err := Compile([]byte(`{"type":"object","required":["name"]}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	sink := s.NewSink()
	toks := []pbnjson.Token{
		{Kind: pbnjson.TokenBeginObject},
		{Kind: pbnjson.TokenKey, String: "other"},
		{Kind: pbnjson.TokenNumber, Number: "1"},
		{Kind: pbnjson.TokenEndObject},
	}
	streamErr := feedTokens(t, sink, toks)
	if streamErr == nil {
		t.Fatal("expected the missing 'name' property to be reported")
	}

	v := pbnjson.NewObjectFrom(pbnjson.KV{Key: "other", Value: pbnjson.Int(1)})
	defer v.Release()
	var direct pbnjson.Issues
	s.CheckValue(v, &direct)

	streamIssues, ok := pbnjson.AsIssues(streamErr)
	if !ok {
		t.Fatalf("expected the stream error to be an Issues value, got %v", streamErr)
	}
	opts := cmpopts.IgnoreFields(pbnjson.Issue{}, "Cause")
	if diff := cmp.Diff([]pbnjson.Issue(direct), []pbnjson.Issue(streamIssues), opts); diff != "" {
		t.Fatalf("stream validator issues differ from direct CheckValue issues (-direct +stream):\n%s", diff)
	}
}

func TestStreamValidatorRejectsValueWithoutPrecedingKey(t *testing.T) {
	s, err := Compile([]byte(`{"type":"object"}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	sink := s.NewSink()
	toks := []pbnjson.Token{
		{Kind: pbnjson.TokenBeginObject},
		{Kind: pbnjson.TokenString, String: "orphan"},
		{Kind: pbnjson.TokenEndObject},
	}
	if err := feedTokens(t, sink, toks); err == nil {
		t.Fatal("expected an error for a value with no preceding key")
	}
}

func TestStreamValidatorHandlesNestedArrays(t *testing.T) {
	s, err := Compile([]byte(`{"type":"array","items":{"type":"number"}}`), nil)
	if err != nil {
		t.Fatal(err)
	}
	sink := s.NewSink()
	toks := []pbnjson.Token{
		{Kind: pbnjson.TokenBeginArray},
		{Kind: pbnjson.TokenNumber, Number: "1"},
		{Kind: pbnjson.TokenNumber, Number: "2"},
		{Kind: pbnjson.TokenEndArray},
	}
	if err := feedTokens(t, sink, toks); err != nil {
		t.Fatalf("expected a numeric array to validate cleanly, got %v", err)
	}
}
