package assets_test

import (
	"errors"
	"testing"

	"github.com/alnah/go-docx2tex/internal/assets"
)

func TestValidateResourceName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{name: "escapes file", input: "escapes.yaml", wantErr: nil},
		{name: "abbreviations file", input: "abbreviations.yaml", wantErr: nil},
		{name: "whitelist file", input: "whitelist.yaml", wantErr: nil},
		{name: "prompt file", input: "prompt.txt", wantErr: nil},
		{name: "empty", input: "", wantErr: assets.ErrInvalidResourceName},
		{name: "unknown file", input: "styles.css", wantErr: assets.ErrInvalidResourceName},
		{name: "path traversal", input: "../prompt.txt", wantErr: assets.ErrInvalidResourceName},
		{name: "absolute path", input: "/etc/passwd", wantErr: assets.ErrInvalidResourceName},
		{name: "backslash path", input: "data\\prompt.txt", wantErr: assets.ErrInvalidResourceName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := assets.ValidateResourceName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateResourceName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
