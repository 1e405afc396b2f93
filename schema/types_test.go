package schema

import (
	"regexp"
	"testing"

	pbnjson "github.com/webosce/pbnjson"
)

func checkValue(n Node, v *pbnjson.Value) pbnjson.Issues {
	var issues pbnjson.Issues
	n.CheckValue(v, pbnjson.RootPath(), &issues)
	return issues
}

func TestAnyNodeAcceptsEverything(t *testing.T) {
	for _, v := range []*pbnjson.Value{pbnjson.Null(), pbnjson.Bool(true), pbnjson.Int(1), pbnjson.String("x")} {
		if issues := checkValue(&AnyNode{}, v); len(issues) != 0 {
			t.Fatalf("AnyNode rejected %v: %v", v.Kind(), issues)
		}
	}
}

func TestNullNodeRejectsNonNull(t *testing.T) {
	if issues := checkValue(&NullNode{}, pbnjson.Null()); len(issues) != 0 {
		t.Fatalf("expected null to pass, got %v", issues)
	}
	if issues := checkValue(&NullNode{}, pbnjson.Bool(false)); len(issues) == 0 {
		t.Fatal("expected a type mismatch for a bool against NullNode")
	}
}

func TestBoolNodeRejectsNonBool(t *testing.T) {
	if issues := checkValue(&BoolNode{}, pbnjson.Bool(true)); len(issues) != 0 {
		t.Fatalf("expected bool to pass, got %v", issues)
	}
	if issues := checkValue(&BoolNode{}, pbnjson.Int(1)); len(issues) == 0 {
		t.Fatal("expected a type mismatch for a number against BoolNode")
	}
}

func TestNumberNodeRangeAndExclusivity(t *testing.T) {
	min, max := 0.0, 10.0
	n := &NumberNode{min: &min, max: &max}
	if issues := checkValue(n, pbnjson.Double(5)); len(issues) != 0 {
		t.Fatalf("5 should be within [0,10], got %v", issues)
	}
	if issues := checkValue(n, pbnjson.Double(-1)); len(issues) == 0 {
		t.Fatal("expected -1 to violate minimum")
	}
	if issues := checkValue(n, pbnjson.Double(11)); len(issues) == 0 {
		t.Fatal("expected 11 to violate maximum")
	}

	excl := &NumberNode{min: &min, exclMin: true}
	if issues := checkValue(excl, pbnjson.Double(0)); len(issues) == 0 {
		t.Fatal("expected exclusiveMinimum to reject a value equal to the bound")
	}
	if issues := checkValue(excl, pbnjson.Double(0.001)); len(issues) != 0 {
		t.Fatalf("expected a value just above an exclusive minimum to pass, got %v", issues)
	}
}

func TestNumberNodeIntegerOnly(t *testing.T) {
	n := &NumberNode{integerOnly: true}
	if issues := checkValue(n, pbnjson.Int(4)); len(issues) != 0 {
		t.Fatalf("expected an integer to pass integerOnly, got %v", issues)
	}
	if issues := checkValue(n, pbnjson.Double(4.5)); len(issues) == 0 {
		t.Fatal("expected a fractional number to fail integerOnly")
	}
}

func TestNumberNodeMultipleOf(t *testing.T) {
	m := 2.0
	n := &NumberNode{multipleOf: &m}
	if issues := checkValue(n, pbnjson.Double(6)); len(issues) != 0 {
		t.Fatalf("6 is a multiple of 2, got %v", issues)
	}
	if issues := checkValue(n, pbnjson.Double(5)); len(issues) == 0 {
		t.Fatal("expected 5 to fail multipleOf 2")
	}
}

func TestStringNodeLengthAndPattern(t *testing.T) {
	minLen, maxLen := 2, 4
	n := &StringNode{minLen: &minLen, maxLen: &maxLen}
	if issues := checkValue(n, pbnjson.String("abc")); len(issues) != 0 {
		t.Fatalf("abc should satisfy [2,4], got %v", issues)
	}
	if issues := checkValue(n, pbnjson.String("a")); len(issues) == 0 {
		t.Fatal("expected 'a' to violate minLength")
	}
	if issues := checkValue(n, pbnjson.String("abcde")); len(issues) == 0 {
		t.Fatal("expected 'abcde' to violate maxLength")
	}

	withPattern := &StringNode{pattern: regexp.MustCompile(`^[a-z]+$`)}
	if issues := checkValue(withPattern, pbnjson.String("abc")); len(issues) != 0 {
		t.Fatalf("abc should match the pattern, got %v", issues)
	}
	if issues := checkValue(withPattern, pbnjson.String("ABC")); len(issues) == 0 {
		t.Fatal("expected ABC to fail the lowercase-only pattern")
	}
}

func TestStringNodeLengthCountsRunesNotBytes(t *testing.T) {
	minLen := 3
	n := &StringNode{minLen: &minLen}
	// "日本語" is 3 runes but 9 bytes; must pass a minLength of 3.
	if issues := checkValue(n, pbnjson.String("日本語")); len(issues) != 0 {
		t.Fatalf("expected a 3-rune string to satisfy minLength 3, got %v", issues)
	}
}

func TestVisitLeafCallsEnterAndExitOnce(t *testing.T) {
	n := &NullNode{}
	var entered, exited int
	n.Visit(func(v Node) bool { entered++; return true }, func(v Node) bool { exited++; return true })
	if entered != 1 || exited != 1 {
		t.Fatalf("expected exactly one enter/exit, got %d/%d", entered, exited)
	}
}

func TestVisitLeafSkipsExitWhenEnterReturnsFalse(t *testing.T) {
	n := &BoolNode{}
	exited := false
	n.Visit(func(v Node) bool { return false }, func(v Node) bool { exited = true; return true })
	if exited {
		t.Fatal("exit must not be called when enter returns false")
	}
}
