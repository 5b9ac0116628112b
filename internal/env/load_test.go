package env

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		line, key, value string
		ok               bool
	}{
		{"SOLAR_SHOW_FPS=true", "SOLAR_SHOW_FPS", "true", true},
		{"  SOLAR_TIME_SCALE = 2 ", "SOLAR_TIME_SCALE", "2", true},
		{`SOLAR_LABEL_FONT="Go Bold"`, "SOLAR_LABEL_FONT", "Go Bold", true},
		{"export SOLAR_MSAA='false'", "SOLAR_MSAA", "false", true},
		{"# comment", "", "", false},
		{"", "", "", false},
		{"=value", "", "", false},
		{"novalue", "", "", false},
	}
	for _, tt := range tests {
		key, value, ok := parseLine(tt.line)
		if key != tt.key || value != tt.value || ok != tt.ok {
			t.Errorf("parseLine(%q) = %q, %q, %v", tt.line, key, value, ok)
		}
	}
}

func TestLoadKeepsExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	data := "SOLAR_TEST_A=file\nSOLAR_TEST_B=file\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("SOLAR_TEST_A", "shell")
	t.Setenv("SOLAR_TEST_B", "")
	os.Unsetenv("SOLAR_TEST_B")

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if len(set) != 1 || set[0] != "SOLAR_TEST_B" {
		t.Errorf("set = %v", set)
	}
	if got := os.Getenv("SOLAR_TEST_A"); got != "shell" {
		t.Errorf("SOLAR_TEST_A = %q, want shell", got)
	}
	if got := os.Getenv("SOLAR_TEST_B"); got != "file" {
		t.Errorf("SOLAR_TEST_B = %q, want file", got)
	}
}

func TestLoadMissing(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil || set != nil {
		t.Errorf("Load() = %v, %v", set, err)
	}
}
