package pattern

import "testing"

func TestMatches(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		path     string
		want     bool
	}{
		{"exact", []string{"name"}, "name", true},
		{"exact nested", []string{"address.zip"}, "address.zip", true},
		{"no partial prefix", []string{"address"}, "address.zip", false},
		{"no partial suffix", []string{"zip"}, "address.zip", false},
		{"star spans segments", []string{"address.*"}, "address.zip", true},
		{"star alone", []string{"*"}, "anything.at.all", true},
		{"star mid-segment", []string{"addr*zip"}, "address.zip", true},
		{"dot is literal", []string{"a.b"}, "aXb", false},
		{"first of many wins", []string{"nope", "a.b", "also.nope"}, "a.b", true},
		{"empty list", nil, "a.b", false},
		{"empty pattern empty path", []string{""}, "", true},
		{"star crosses dots", []string{"items.*"}, "items.inner.deep", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Matches(tt.patterns, tt.path); got != tt.want {
				t.Errorf("Matches(%v, %q) = %v, want %v", tt.patterns, tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchesOrderIndependentResult(t *testing.T) {
	// Declared order affects only short-circuit cost, never the verdict.
	a := []string{"a.*", "nope"}
	b := []string{"nope", "a.*"}
	if Matches(a, "a.b") != Matches(b, "a.b") {
		t.Error("pattern order changed the verdict")
	}
}
