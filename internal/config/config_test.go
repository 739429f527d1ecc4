package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.json")
	data := `{"pages_dir":"pages","panel_width":1000,"smoothing":"Exponential","format":"webp"}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PagesDir != "pages" || cfg.PanelWidth != 1000 || cfg.Smoothing != "Exponential" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	if err := cfg.Resolve(Flags{}); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := Config{
		OutputDir:    "frames",
		WindowWidth:  1024,
		WindowHeight: 768,
		PanelWidth:   800,
		PanelHeight:  600,
		Pages:        8,
		Smoothing:    "legacy",
		Format:       "png",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	cfg := Config{
		BaseDir:   "/data",
		PagesDir:  "pages",
		OutputDir: "/abs/out",
		Format:    "png",
		Pages:     4,
	}
	err := cfg.Resolve(Flags{Script: "demo.json", Format: "WEBP", Pages: 12})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"pages dir joined", cfg.PagesDir, filepath.Join("/data", "pages")},
		{"script from flag", cfg.Script, filepath.Join("/data", "demo.json")},
		{"absolute output kept", cfg.OutputDir, "/abs/out"},
		{"format lowered", cfg.Format, "webp"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
	if cfg.Pages != 12 {
		t.Errorf("Pages = %d, want 12", cfg.Pages)
	}
}

func TestResolveRejectsUnknownValues(t *testing.T) {
	for _, cfg := range []Config{{Smoothing: "cubic"}, {Format: "gif"}} {
		if err := cfg.Resolve(Flags{}); err == nil {
			t.Errorf("Resolve(%+v): expected error", cfg)
		}
	}
}
