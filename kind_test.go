package tagparse

import "testing"

func TestClassify(t *testing.T) {
	tests := map[string]Kind{
		"br":       Void,
		"img":      Void,
		"wbr":      Void,
		"keygen":   Void,
		"script":   Raw,
		"style":    Raw,
		"textarea": EscapableRaw,
		"title":    EscapableRaw,
		"div":      Normal,
		"BR":       Normal,
		"":         Normal,
	}

	for name, want := range tests {
		if got := Classify(name); got != want {
			t.Fatalf("Classify(%q) = %v, want %v", name, got, want)
		}
	}
}

func TestKindString(t *testing.T) {
	if Void.String() != "void" || EscapableRaw.String() != "escapable-raw" {
		t.Fatalf("unexpected names %q %q", Void, EscapableRaw)
	}

	if Kind(42).String() != "unknown" {
		t.Fatal("expected unknown for out-of-range kind")
	}
}
