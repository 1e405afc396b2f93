package schema

import (
	"testing"

	pbnjson "github.com/webosce/pbnjson"
)

func TestCombinatorAllOfRequiresEveryChild(t *testing.T) {
	minLen := 3
	n := &CombinatorNode{kind: CombAllOf, children: []Node{&StringNode{minLen: &minLen}, &StringNode{pattern: nil}}}
	if issues := checkValue(n, pbnjson.String("ab")); len(issues) == 0 {
		t.Fatal("expected allOf to fail when one child fails")
	}
	if issues := checkValue(n, pbnjson.String("abc")); len(issues) != 0 {
		t.Fatalf("expected allOf to pass when every child passes, got %v", issues)
	}
}

func TestCombinatorAnyOfPassesOnFirstMatch(t *testing.T) {
	n := &CombinatorNode{kind: CombAnyOf, children: []Node{&NumberNode{}, &StringNode{}}}
	if issues := checkValue(n, pbnjson.String("s")); len(issues) != 0 {
		t.Fatalf("expected anyOf to pass via the StringNode branch, got %v", issues)
	}
	if issues := checkValue(n, pbnjson.Bool(true)); len(issues) == 0 {
		t.Fatal("expected anyOf to fail when no branch matches")
	}
}

func TestCombinatorOneOfRequiresExactlyOneMatch(t *testing.T) {
	n := &CombinatorNode{kind: CombOneOf, children: []Node{&NumberNode{}, &AnyNode{}}}
	// AnyNode always matches, NumberNode also matches a number: 2 matches, should fail.
	if issues := checkValue(n, pbnjson.Int(1)); len(issues) == 0 {
		t.Fatal("expected oneOf to fail when two children match")
	}
	if issues := checkValue(n, pbnjson.String("s")); len(issues) != 0 {
		t.Fatalf("expected oneOf to pass when exactly one child (AnyNode) matches, got %v", issues)
	}
}

func TestCombinatorOneOfFailsWhenZeroMatch(t *testing.T) {
	n := &CombinatorNode{kind: CombOneOf, children: []Node{&NumberNode{}, &BoolNode{}}}
	if issues := checkValue(n, pbnjson.String("s")); len(issues) == 0 {
		t.Fatal("expected oneOf to fail when zero children match")
	}
}

func TestCombinatorNotInvertsChild(t *testing.T) {
	n := &CombinatorNode{kind: CombNot, children: []Node{&NumberNode{}}}
	if issues := checkValue(n, pbnjson.String("s")); len(issues) != 0 {
		t.Fatalf("expected not(Number) to pass for a string, got %v", issues)
	}
	if issues := checkValue(n, pbnjson.Int(1)); len(issues) == 0 {
		t.Fatal("expected not(Number) to fail for a number")
	}
}

func TestEnumNodeMatchesStructurally(t *testing.T) {
	n := &EnumNode{members: []*pbnjson.Value{pbnjson.String("red"), pbnjson.String("green"), pbnjson.Int(1)}}
	if issues := checkValue(n, pbnjson.String("green")); len(issues) != 0 {
		t.Fatalf("expected green to be in the enum, got %v", issues)
	}
	if issues := checkValue(n, pbnjson.String("blue")); len(issues) == 0 {
		t.Fatal("expected blue to be rejected, it is not in the enum")
	}
	if issues := checkValue(n, pbnjson.Int(1)); len(issues) != 0 {
		t.Fatalf("expected the integer member 1 to match, got %v", issues)
	}
}
