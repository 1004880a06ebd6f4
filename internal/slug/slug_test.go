package slug

import "testing"

// TestGenerate exercises the slug generator with typical titles, special
// characters, and boundary conditions.
func TestGenerate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "simple two words",
			input: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "title with year",
			input: "Hello World 2026",
			want:  "hello-world-2026",
		},
		{
			name:  "already lowercase",
			input: "already lowercase",
			want:  "already-lowercase",
		},
		{
			name:  "mixed case single word",
			input: "GoLang",
			want:  "golang",
		},
		{
			name:  "punctuation collapses to hyphens",
			input: "Hello, World! How's it going?",
			want:  "hello-world-how-s-it-going",
		},
		{
			name:  "ampersand and at sign",
			input: "Rock & Roll @ the Arena",
			want:  "rock-roll-the-arena",
		},
		{
			name:  "parentheses and version dots",
			input: "Version (2.0) [Beta]",
			want:  "version-2-0-beta",
		},
		{
			name:  "consecutive separators collapse",
			input: "one  --  two",
			want:  "one-two",
		},
		{
			name:  "leading and trailing junk trimmed",
			input: "  ...Hello...  ",
			want:  "hello",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "only special characters",
			input: "!!! ??? ***",
			want:  "",
		},
		{
			name:  "digits preserved",
			input: "100 Days of Go",
			want:  "100-days-of-go",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.input)
			if got != tt.want {
				t.Errorf("Generate(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// TestGenerateDeterministic verifies the transform is stable: identical
// inputs always yield identical slugs.
func TestGenerateDeterministic(t *testing.T) {
	in := "Some Title: With Punctuation!"
	first := Generate(in)
	for i := 0; i < 5; i++ {
		if got := Generate(in); got != first {
			t.Fatalf("Generate not deterministic: got %q then %q", first, got)
		}
	}
}
