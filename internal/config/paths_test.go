package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestHomePath_Default(t *testing.T) {
	t.Setenv("GRAPHYBOOK_PATH", "")

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}

	got := HomePath()
	want := filepath.Join(home, ".graphybook")
	if got != want {
		t.Errorf("HomePath() = %q, want %q", got, want)
	}
}

func TestHomePath_EnvOverride(t *testing.T) {
	t.Setenv("GRAPHYBOOK_PATH", "/tmp/custom-studio")

	if got := HomePath(); got != "/tmp/custom-studio" {
		t.Errorf("HomePath() = %q, want %q", got, "/tmp/custom-studio")
	}
}

func TestDerivedPaths(t *testing.T) {
	t.Setenv("GRAPHYBOOK_PATH", "/tmp/test-studio")

	cases := map[string]struct {
		got, want string
	}{
		"config":    {ConfigPath(), "/tmp/test-studio/config.jsonc"},
		"dotenv":    {DotenvPath(), "/tmp/test-studio/.env"},
		"log":       {LogPath(), "/tmp/test-studio/tui.log"},
		"heartbeat": {HeartbeatPath(), "/tmp/test-studio/studio.json"},
	}
	for name, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s path = %q, want %q", name, tc.got, tc.want)
		}
	}
}
