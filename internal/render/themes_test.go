package render

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsBuiltinStyle(t *testing.T) {
	tests := []struct {
		style string
		want  bool
	}{
		{StyleDark, true},
		{StyleLight, true},
		{StyleAuto, true},
		{StyleTokyoNight, true},
		{StyleNoTTY, true},
		{"tokyonight", false},
		{"", false},
		{"/tmp/style.json", false},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			if got := IsBuiltinStyle(tt.style); got != tt.want {
				t.Errorf("IsBuiltinStyle(%q) = %v, want %v", tt.style, got, tt.want)
			}
		})
	}
}

func TestStyleNames(t *testing.T) {
	names := StyleNames()
	if len(names) != len(AvailableStyles()) {
		t.Fatalf("expected %d names, got %d", len(AvailableStyles()), len(names))
	}
	if names[0] != StyleDark {
		t.Errorf("expected default style first, got %q", names[0])
	}
}

func TestValidateStyle(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "style.json")
	if err := os.WriteFile(file, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		style   string
		wantErr bool
	}{
		{"empty", "", false},
		{"builtin", StyleDracula, false},
		{"file", file, false},
		{"directory", dir, true},
		{"missing", filepath.Join(dir, "missing.json"), true},
		{"unknown name", "solarized", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStyle(tt.style)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateStyle(%q) error = %v, wantErr %v", tt.style, err, tt.wantErr)
			}
		})
	}
}

func TestEveryStyleRenders(t *testing.T) {
	for _, name := range StyleNames() {
		if name == StyleAuto {
			continue
		}
		t.Run(name, func(t *testing.T) {
			if _, err := Markdown("**ok**", DefaultOptions().WithStyle(name)); err != nil {
				t.Errorf("style %q failed: %v", name, err)
			}
		})
	}
}
