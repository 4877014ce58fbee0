package tokens

import (
	"strings"
	"testing"
)

func TestEstimate(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 0},
		{"one", 1},
		{"two words", 2},
		{"  padded   whitespace \n across lines ", 4},
	}
	for _, tc := range cases {
		if got := Estimate(tc.text); got != tc.want {
			t.Errorf("Estimate(%q) = %d, want %d", tc.text, got, tc.want)
		}
	}
}

func TestEstimateScales(t *testing.T) {
	text := strings.Repeat("word ", 5000)
	if got := Estimate(text); got != 5000 {
		t.Errorf("expected 5000, got %d", got)
	}
}

func TestCountNonEmpty(t *testing.T) {
	// Count must produce a positive number whether or not the tiktoken
	// encoding data is available.
	if got := Count("def calculate_basic_premium(policy): return 100"); got <= 0 {
		t.Errorf("expected positive count, got %d", got)
	}
}
