package assets_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alnah/go-docx2tex/internal/assets"
)

func TestNewFilesystemLoader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		basePath func(t *testing.T) string
		wantErr  error
	}{
		{
			name:     "valid directory",
			basePath: func(t *testing.T) string { return t.TempDir() },
			wantErr:  nil,
		},
		{
			name:     "empty path",
			basePath: func(t *testing.T) string { return "" },
			wantErr:  assets.ErrInvalidBasePath,
		},
		{
			name: "missing directory",
			basePath: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "absent")
			},
			wantErr: assets.ErrInvalidBasePath,
		},
		{
			name: "path is a file",
			basePath: func(t *testing.T) string {
				f := filepath.Join(t.TempDir(), "file")
				if err := os.WriteFile(f, []byte("x"), 0o600); err != nil {
					t.Fatal(err)
				}
				return f
			},
			wantErr: assets.ErrInvalidBasePath,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := assets.NewFilesystemLoader(tt.basePath(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewFilesystemLoader() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFilesystemLoader_Load(t *testing.T) {
	t.Parallel()

	t.Run("reads an override file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		want := "Corrige {text}"
		if err := os.WriteFile(filepath.Join(dir, assets.PromptFile), []byte(want), 0o600); err != nil {
			t.Fatal(err)
		}

		loader, err := assets.NewFilesystemLoader(dir)
		if err != nil {
			t.Fatal(err)
		}

		got, err := loader.Load(assets.PromptFile)
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}
		if string(got) != want {
			t.Errorf("Load() = %q, want %q", got, want)
		}
	})

	t.Run("missing file yields ErrResourceNotFound", func(t *testing.T) {
		t.Parallel()

		loader, err := assets.NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}

		_, err = loader.Load(assets.EscapesFile)
		if !errors.Is(err, assets.ErrResourceNotFound) {
			t.Fatalf("Load() error = %v, want ErrResourceNotFound", err)
		}
	})

	t.Run("unknown name is rejected before disk access", func(t *testing.T) {
		t.Parallel()

		loader, err := assets.NewFilesystemLoader(t.TempDir())
		if err != nil {
			t.Fatal(err)
		}

		_, err = loader.Load("../../etc/passwd")
		if !errors.Is(err, assets.ErrInvalidResourceName) {
			t.Fatalf("Load() error = %v, want ErrInvalidResourceName", err)
		}
	})

	t.Run("symlink escaping the base directory is rejected", func(t *testing.T) {
		t.Parallel()

		outside := t.TempDir()
		secret := filepath.Join(outside, "secret.txt")
		if err := os.WriteFile(secret, []byte("classified"), 0o600); err != nil {
			t.Fatal(err)
		}

		dir := t.TempDir()
		link := filepath.Join(dir, assets.PromptFile)
		if err := os.Symlink(secret, link); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}

		loader, err := assets.NewFilesystemLoader(dir)
		if err != nil {
			t.Fatal(err)
		}

		_, err = loader.Load(assets.PromptFile)
		if !errors.Is(err, assets.ErrPathTraversal) {
			t.Fatalf("Load() error = %v, want ErrPathTraversal", err)
		}
	})
}
