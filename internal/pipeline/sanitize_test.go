package pipeline

import (
	"testing"

	"github.com/alnah/go-docx2tex/internal/assets"
)

// newTestSanitizer loads the embedded escape and abbreviation tables.
func newTestSanitizer(t *testing.T) *Sanitizer {
	t.Helper()

	res, err := assets.LoadDefaults()
	if err != nil {
		t.Fatalf("LoadDefaults() error = %v, want nil", err)
	}
	return NewSanitizer(res)
}

// ---------------------------------------------------------------------------
// TestSanitizerEscape - LaTeX special character rewriting
// ---------------------------------------------------------------------------

func TestSanitizerEscape(t *testing.T) {
	t.Parallel()

	san := newTestSanitizer(t)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "ampersand percent euro",
			in:   "50% & 10€",
			want: `50\% \& 10\euro{}`,
		},
		{
			name: "underscore and braces",
			in:   "a_b{c}",
			want: `a\_b\{c\}`,
		},
		{
			name: "tilde and circumflex",
			in:   "x^2 ~ y",
			want: `x\textasciicircum{}2 \textasciitilde{} y`,
		},
		{
			name: "angle brackets and degree",
			in:   "<html> à 20°",
			want: `\textless{}html\textgreater{} à 20\textdegree{}`,
		},
		{
			name: "dollar and hash",
			in:   "$5 #1",
			want: `\$5 \#1`,
		},
		{
			name: "plain text untouched",
			in:   "Réunion du comité",
			want: "Réunion du comité",
		},
		{
			name: "empty",
			in:   "",
			want: "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := san.Escape(tt.in); got != tt.want {
				t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSanitizerTidy - Sentence dressing and abbreviation expansion
// ---------------------------------------------------------------------------

func TestSanitizerTidy(t *testing.T) {
	t.Parallel()

	san := newTestSanitizer(t)

	tests := []struct {
		name  string
		in    string
		edges Edge
		want  string
	}{
		{
			name:  "full sentence gets capital and period",
			in:    "le vote est terminé",
			edges: EdgeBegin | EdgeEnd,
			want:  "Le vote est terminé.",
		},
		{
			name:  "existing punctuation kept",
			in:    "on continue ?",
			edges: EdgeBegin | EdgeEnd,
			want:  "On continue ?",
		},
		{
			name:  "end only adds period without capital",
			in:    "texte sans fin",
			edges: EdgeEnd,
			want:  "texte sans fin.",
		},
		{
			name:  "begin only capitalizes",
			in:    "début de phrase",
			edges: EdgeBegin,
			want:  "Début de phrase",
		},
		{
			name:  "trailing whitespace trimmed before period",
			in:    "fin  ",
			edges: EdgeEnd,
			want:  "fin.",
		},
		{
			name:  "middle fragment only expands",
			in:    "le prez tranche",
			edges: EdgeNone,
			want:  "le président tranche",
		},
		{
			name:  "uppercase shorthand expands capitalized",
			in:    "Prez absent",
			edges: EdgeNone,
			want:  "Président absent",
		},
		{
			name:  "shorthand inside a word left alone",
			in:    "la prezidence",
			edges: EdgeNone,
			want:  "la prezidence",
		},
		{
			name:  "several shorthands in one fragment",
			in:    "vp et itw",
			edges: EdgeNone,
			want:  "vice-président et interview",
		},
		{
			name:  "accented shorthand",
			in:    "la délég part",
			edges: EdgeNone,
			want:  "la délégation part",
		},
		{
			name:  "expansion after capitalization",
			in:    "qqch reste à faire",
			edges: EdgeBegin | EdgeEnd,
			want:  "Quelque chose reste à faire.",
		},
		{
			name:  "empty",
			in:    "",
			edges: EdgeBegin | EdgeEnd,
			want:  "",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := san.Tidy(tt.in, tt.edges); got != tt.want {
				t.Errorf("Tidy(%q, %v) = %q, want %q", tt.in, tt.edges, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestCapitalizeFirst - First rune uppercasing
// ---------------------------------------------------------------------------

func TestCapitalizeFirst(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"été", "Été"},
		{"budget", "Budget"},
		{"Déjà", "Déjà"},
		{"123 fois", "123 fois"},
		{`\section`, `\section`},
		{"", ""},
	}

	for _, tt := range tests {
		if got := CapitalizeFirst(tt.in); got != tt.want {
			t.Errorf("CapitalizeFirst(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
