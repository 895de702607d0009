package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write theme: %v", err)
	}
	return path
}

func TestDefaultTheme_Valid(t *testing.T) {
	if err := DefaultTheme().Validate(); err != nil {
		t.Errorf("DefaultTheme().Validate() error = %v", err)
	}
}

func TestLoadTheme(t *testing.T) {
	path := writeTheme(t, `
name: dusk
primary: "#FFAA00"
error: "#F00"
`)

	theme, err := LoadTheme(path)
	if err != nil {
		t.Fatalf("LoadTheme() error = %v", err)
	}
	if theme.Name != "dusk" || theme.Primary != "#FFAA00" || theme.Error != "#F00" {
		t.Errorf("theme = %+v", theme)
	}
	if theme.Accent != DefaultTheme().Accent {
		t.Errorf("Accent = %s, want default %s", theme.Accent, DefaultTheme().Accent)
	}
}

func TestLoadTheme_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{"bad color", `primary: "orange"`, ErrInvalidTheme},
		{"bad yaml", "primary: [", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTheme(writeTheme(t, tt.content))
			if err == nil {
				t.Fatal("LoadTheme() should fail")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("LoadTheme() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadTheme(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTheme() on a missing file should fail")
	}
}
