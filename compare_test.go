package pbnjson

import "testing"

func TestEqualAndCompareConsistency(t *testing.T) {
	a := NewObjectFrom(KV{"a", Int(1)}, KV{"b", Int(2)})
	b := NewObjectFrom(KV{"b", Int(2)}, KV{"a", Int(1)})
	if !Equal(a, b) {
		t.Fatal("objects with the same entries in different insertion order must be Equal")
	}
	if Compare(a, b) != 0 {
		t.Fatal("Equal(a, b) must imply Compare(a, b) == 0")
	}
	a.Release()
	b.Release()
}

func TestCompareCrossKindUsesKindRank(t *testing.T) {
	if Compare(Null(), Bool(true)) >= 0 {
		t.Fatal("Null should sort before Bool")
	}
	if Compare(Int(1), String("x")) >= 0 {
		t.Fatal("Number should sort before String")
	}
}

func TestCompareArraysShorterOnTie(t *testing.T) {
	short := NewArrayFrom(Int(1), Int(2))
	long := NewArrayFrom(Int(1), Int(2), Int(3))
	if Compare(short, long) >= 0 {
		t.Fatal("a strict prefix should sort before the longer array")
	}
	short.Release()
	long.Release()
}

func TestHashKeyOnlyForStrings(t *testing.T) {
	if _, ok := HashKey(Int(1)); ok {
		t.Fatal("HashKey should report ok=false for a non-string value")
	}
	h1, ok1 := HashKey(String("abc"))
	h2, ok2 := HashKey(String("abc"))
	if !ok1 || !ok2 || h1 != h2 {
		t.Fatal("HashKey should be deterministic for equal strings")
	}
}
