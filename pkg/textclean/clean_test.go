package textclean

import "testing"

func TestCleanStopSequence(t *testing.T) {
	got := Clean("Documentation here.\nHuman: next question", []string{"Human:"})
	if got != "Documentation here." {
		t.Errorf("got %q, want %q", got, "Documentation here.")
	}
}

func TestCleanEarliestMarkerWins(t *testing.T) {
	got := Clean("short answer</answer> trailing User: more", []string{"User:"})
	if got != "short answer" {
		t.Errorf("got %q, want %q", got, "short answer")
	}
}

func TestCleanArtifacts(t *testing.T) {
	got := Clean("  The function returns a premium. [/INST] ", nil)
	if got != "The function returns a premium." {
		t.Errorf("got %q", got)
	}
}

func TestCleanRoleMarkersAlwaysApply(t *testing.T) {
	got := Clean("Answer text.\nAssistant: echo", nil)
	if got != "Answer text." {
		t.Errorf("got %q", got)
	}
}

func TestCleanTripleNewline(t *testing.T) {
	got := Clean("First paragraph.\n\n\nLeftover rambling", nil)
	if got != "First paragraph." {
		t.Errorf("got %q", got)
	}
}

func TestCleanNoMarkers(t *testing.T) {
	got := Clean("Plain description with no markers", []string{"Human:"})
	if got != "Plain description with no markers" {
		t.Errorf("got %q", got)
	}
}

func TestCleanEmpty(t *testing.T) {
	if got := Clean("", []string{"Human:"}); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestCleanDeterministic(t *testing.T) {
	in := "Doc.\nUser: q"
	first := Clean(in, nil)
	second := Clean(in, nil)
	if first != second {
		t.Errorf("clean not deterministic: %q vs %q", first, second)
	}
}
