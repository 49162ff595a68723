package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func readYAML(t *testing.T, path string) map[string]any {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	var m map[string]any
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return m
}

func TestSaveConfig_SaveGlobal(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	cfg := DefaultSaveConfig()
	path := filepath.Join(home, ".config", "buildnotify", "config.yaml")

	t.Run("creates private file", func(t *testing.T) {
		if err := cfg.SaveGlobal(KeyToken, "xoxb-1"); err != nil {
			t.Fatalf("SaveGlobal() error = %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("Stat() error = %v", err)
		}
		if perm := info.Mode().Perm(); perm != 0o600 {
			t.Errorf("perm = %o, want 600", perm)
		}
		if got := readYAML(t, path)[KeyToken]; got != "xoxb-1" {
			t.Errorf("token = %v", got)
		}
	})

	t.Run("keeps existing keys and stores booleans", func(t *testing.T) {
		if err := cfg.SaveGlobal(KeyBotUser, "TRUE"); err != nil {
			t.Fatalf("SaveGlobal() error = %v", err)
		}
		m := readYAML(t, path)
		if m[KeyToken] != "xoxb-1" || m[KeyBotUser] != true {
			t.Errorf("config = %v", m)
		}
	})

	t.Run("rejects unknown key", func(t *testing.T) {
		err := cfg.SaveGlobal("api_url", "x")
		if err == nil || !strings.Contains(err.Error(), "unknown global config key") {
			t.Errorf("SaveGlobal() error = %v", err)
		}
	})

	t.Run("round trips through resolver", func(t *testing.T) {
		rc := DefaultResolverConfig()
		rc.Getenv = func(string) string { return "" }
		got := NewResolverWithPaths(rc, path, "").Resolve()
		if v, s := got.GetWithSource(KeyBotUser); v != "true" || s != SourceGlobal {
			t.Errorf("bot_user = %q (%s)", v, s)
		}
	})
}

func TestSaveConfig_NoGlobalDir(t *testing.T) {
	if err := (SaveConfig{}).SaveGlobal("k", "v"); err == nil {
		t.Error("SaveGlobal() error = nil without GlobalConfigDir")
	}
	if err := (SaveConfig{}).DeleteGlobalKey("k"); err == nil {
		t.Error("DeleteGlobalKey() error = nil without GlobalConfigDir")
	}
}

func TestSaveConfig_SaveLocal(t *testing.T) {
	root := t.TempDir()
	cfg := DefaultSaveConfig()

	if err := cfg.SaveLocal(root, KeyRoom, "#ci"); err != nil {
		t.Fatalf("SaveLocal() error = %v", err)
	}
	path := filepath.Join(root, ".buildnotify.yaml")
	if got := readYAML(t, path)[KeyRoom]; got != "#ci" {
		t.Errorf("room = %v", got)
	}

	if err := cfg.SaveLocal(root, KeyToken, "xoxb"); err == nil {
		t.Error("SaveLocal(token) error = nil, want secrets rejected")
	}
	if err := cfg.SaveLocal("", KeyRoom, "#ci"); err == nil {
		t.Error("SaveLocal() without git root error = nil")
	}
}

func TestSaveConfig_DeleteKeys(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	root := t.TempDir()
	cfg := DefaultSaveConfig()

	t.Run("missing file", func(t *testing.T) {
		if err := cfg.DeleteGlobalKey(KeyToken); err != nil {
			t.Errorf("DeleteGlobalKey() error = %v", err)
		}
	})

	t.Run("global", func(t *testing.T) {
		if err := cfg.SaveGlobal(KeyToken, "a"); err != nil {
			t.Fatal(err)
		}
		if err := cfg.SaveGlobal(KeyRoom, "#b"); err != nil {
			t.Fatal(err)
		}
		if err := cfg.DeleteGlobalKey(KeyToken); err != nil {
			t.Fatalf("DeleteGlobalKey() error = %v", err)
		}
		path, _ := cfg.GlobalPath()
		m := readYAML(t, path)
		if _, ok := m[KeyToken]; ok {
			t.Error("token still present")
		}
		if m[KeyRoom] != "#b" {
			t.Errorf("room = %v, want kept", m[KeyRoom])
		}
	})

	t.Run("local", func(t *testing.T) {
		if err := cfg.SaveLocal(root, KeyColor, "good"); err != nil {
			t.Fatal(err)
		}
		if err := cfg.DeleteLocalKey(root, KeyColor); err != nil {
			t.Fatalf("DeleteLocalKey() error = %v", err)
		}
		if m := readYAML(t, filepath.Join(root, ".buildnotify.yaml")); len(m) != 0 {
			t.Errorf("local config = %v, want empty", m)
		}
	})
}

func TestSaveConfig_MalformedYAML(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, ".buildnotify.yaml")
	if err := os.WriteFile(path, []byte("room: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	err := DefaultSaveConfig().SaveLocal(root, KeyRoom, "#ci")
	if err == nil {
		t.Fatal("SaveLocal() error = nil, want parse error")
	}

	data, _ := os.ReadFile(path)
	if string(data) != "room: [broken\n" {
		t.Errorf("file overwritten: %q", data)
	}
}

func TestSaveConfig_CustomGlobalFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := SaveConfig{GlobalConfigDir: "custom", GlobalConfigFile: "settings.yaml"}
	if err := cfg.SaveGlobal("any_key", "v"); err != nil {
		t.Fatalf("SaveGlobal() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(home, ".config", "custom", "settings.yaml")); err != nil {
		t.Errorf("settings.yaml not created: %v", err)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"False", false},
		{"#ci", "#ci"},
		{"30s", "30s"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
