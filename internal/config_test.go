package internal

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadConfig(t *testing.T) {
	dir := t.TempDir()
	font := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(font, []byte("stub"), 0644); err != nil {
		t.Fatal(err)
	}

	want := Configuration{
		Color:          "#1a2b3c",
		Tile:           true,
		ShowClock:      false,
		FontPath:       font,
		HideCursor:     false,
		RedrawOnResume: true,
	}

	for _, name := range []string{"config.json", "config.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := SaveConfig(path, want); err != nil {
				t.Fatalf("SaveConfig: %v", err)
			}

			got := DefaultConfig()
			if err := LoadConfig(path, &got); err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if got != want {
				t.Errorf("loaded %+v, want %+v", got, want)
			}
		})
	}
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"config.json", `{"color": "000000"}`},
		{"config.toml", `color = "000000"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.name)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg := DefaultConfig()
			if err := LoadConfig(path, &cfg); err != nil {
				t.Fatalf("LoadConfig: %v", err)
			}
			if cfg.Color != "000000" {
				t.Errorf("Color = %q, want 000000", cfg.Color)
			}
			if !cfg.ShowClock || !cfg.HideCursor || !cfg.RedrawOnResume {
				t.Errorf("defaults lost: %+v", cfg)
			}
		})
	}
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		content string
	}{
		{"short color", `{"color": "fff"}`},
		{"missing image", `{"color": "ffffff", "image": "/nonexistent/bg.png"}`},
		{"missing font", `{"color": "ffffff", "font_path": "/nonexistent/font.ttf"}`},
		{"malformed json", `{"color": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "config.json")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}

			cfg := DefaultConfig()
			if err := LoadConfig(path, &cfg); err == nil {
				t.Error("LoadConfig accepted an invalid config")
			}
		})
	}

	if err := LoadConfig(filepath.Join(dir, "absent.json"), new(Configuration)); err == nil {
		t.Error("LoadConfig accepted a missing file")
	}
}

func TestGenerateDefaultConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if FindConfigFile() != "" {
		t.Fatal("found a config file in an empty directory")
	}

	path, err := GenerateDefaultConfigFile()
	if err != nil {
		t.Fatalf("GenerateDefaultConfigFile: %v", err)
	}
	if found := FindConfigFile(); found != path {
		t.Errorf("FindConfigFile = %q, want %q", found, path)
	}

	cfg := Configuration{}
	if err := LoadConfig(path, &cfg); err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("generated %+v, want defaults", cfg)
	}
}
