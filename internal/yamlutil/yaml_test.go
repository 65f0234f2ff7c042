package yamlutil_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-docx2tex/internal/yamlutil"
)

type escapeRule struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

type escapeFile struct {
	Rules []escapeRule `yaml:"rules"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses YAML into Go structs
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "rule list keeps order",
			data: []byte("rules:\n  - from: \"&\"\n    to: \"\\\\&\"\n  - from: \"%\"\n    to: \"\\\\%\"\n"),
			dest: &escapeFile{},
			check: func(t *testing.T, v any) {
				f := v.(*escapeFile)
				if len(f.Rules) != 2 {
					t.Fatalf("len(Rules) = %d, want 2", len(f.Rules))
				}
				if f.Rules[0].From != "&" || f.Rules[0].To != `\&` {
					t.Errorf("Rules[0] = %+v, want {& \\&}", f.Rules[0])
				}
				if f.Rules[1].From != "%" {
					t.Errorf("Rules[1].From = %q, want %%", f.Rules[1].From)
				}
			},
		},
		{
			name: "unicode content",
			data: []byte("rules:\n  - from: \"€\"\n    to: \"\\\\euro{}\"\n"),
			dest: &escapeFile{},
			check: func(t *testing.T, v any) {
				f := v.(*escapeFile)
				if f.Rules[0].From != "€" {
					t.Errorf("Rules[0].From = %q, want €", f.Rules[0].From)
				}
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &escapeFile{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &escapeFile{},
			wantErr: yamlutil.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("rules: []"),
			dest:    nil,
			wantErr: yamlutil.ErrNilDestination,
		},
		{
			name:    "invalid YAML syntax",
			data:    []byte("rules: [unclosed"),
			dest:    &escapeFile{},
			wantErr: errors.New("yamlutil:"), // partial match
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := yamlutil.Unmarshal(tt.data, tt.dest)

			if tt.wantErr != nil {
				if err == nil {
					t.Fatalf("Unmarshal() error = nil, want %v", tt.wantErr)
				}
				if errors.Is(err, tt.wantErr) {
					return
				}
				if !strings.Contains(err.Error(), tt.wantErr.Error()) {
					t.Fatalf("Unmarshal() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unmarshal() error = %v, want nil", err)
			}
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown field", func(t *testing.T) {
		t.Parallel()

		data := []byte("rules: []\nbogus: true\n")
		err := yamlutil.UnmarshalStrict(data, &escapeFile{})
		if err == nil {
			t.Fatal("UnmarshalStrict() error = nil, want unknown-field error")
		}
	})

	t.Run("accepts known fields", func(t *testing.T) {
		t.Parallel()

		data := []byte("rules:\n  - from: \"#\"\n    to: \"\\\\#\"\n")
		var f escapeFile
		if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
			t.Fatalf("UnmarshalStrict() error = %v, want nil", err)
		}
		if len(f.Rules) != 1 {
			t.Errorf("len(Rules) = %d, want 1", len(f.Rules))
		}
	})

	t.Run("rejects oversized input", func(t *testing.T) {
		t.Parallel()

		data := append([]byte("rules: "), make([]byte, yamlutil.MaxInputSize)...)
		err := yamlutil.UnmarshalStrict(data, &escapeFile{})
		if !errors.Is(err, yamlutil.ErrInputTooLarge) {
			t.Fatalf("UnmarshalStrict() error = %v, want ErrInputTooLarge", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMarshal - Serializes Go values to YAML
// ---------------------------------------------------------------------------

func TestMarshal(t *testing.T) {
	t.Parallel()

	out, err := yamlutil.Marshal(escapeFile{Rules: []escapeRule{{From: "_", To: `\_`}}})
	if err != nil {
		t.Fatalf("Marshal() error = %v, want nil", err)
	}
	if !strings.Contains(string(out), "from: _") {
		t.Errorf("Marshal() output %q missing rule entry", out)
	}
}
