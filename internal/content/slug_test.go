package content

import "testing"

func TestNormalizeSlug(t *testing.T) {
	tests := map[string]string{
		"Best Electric Bikes": "best-electric-bikes",
		"Quantum_Flux":        "quantum-flux",
		"  spaced out  ":      "spaced-out",
		"Électrique Vélo":     "electrique-velo",
		"emoji😀test":          "emojitest",
		"already-normal":      "already-normal",
		"double--dash":        "double-dash",
	}

	for input, want := range tests {
		got, err := NormalizeSlug(input)
		if err != nil {
			t.Fatalf("NormalizeSlug(%q) unexpected error: %v", input, err)
		}
		if got != want {
			t.Fatalf("NormalizeSlug(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeSlugInvalid(t *testing.T) {
	inputs := []string{"", "../etc/passwd", "white space?", "Привет", "a/b"}
	for _, input := range inputs {
		if _, err := NormalizeSlug(input); err == nil {
			t.Fatalf("NormalizeSlug(%q) expected error", input)
		}
	}
}

func TestHumanize(t *testing.T) {
	tests := map[string]string{
		"best-electric-bikes":                "Best Electric Bikes",
		"electric-bikes/best-electric-bikes": "Electric Bikes Best Electric Bikes",
		"ebike":                              "Ebike",
		"":                                   "",
	}
	for input, want := range tests {
		if got := Humanize(input); got != want {
			t.Fatalf("Humanize(%q) = %q, want %q", input, got, want)
		}
	}
}
