/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd returned error: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir returned error: %v", err)
	}
	t.Cleanup(func() { os.Chdir(prev) })
}

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := LoadConfig("missing.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	chdir(t, t.TempDir())
	path := writeFile(t, "swiss.yaml", `
store_path: /var/lib/swiss/club.db
bye_points: 0.5
discord:
  app_id: "1234"
  port: 9000
`)
	t.Setenv("SWISS_DISCORD_TOKEN", "secret")
	t.Setenv("SWISS_DISCORD_PORT", "9090")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	want := Default()
	want.StorePath = "/var/lib/swiss/club.db"
	want.ByePoints = 0.5
	want.Discord.AppID = "1234"
	want.Discord.Token = "secret"
	want.Discord.Port = 9090
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("SWISS_BYE_POINTS=0\n"), 0o600); err != nil {
		t.Fatalf("WriteFile returned error: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("SWISS_BYE_POINTS") })

	cfg, err := LoadConfig("missing.yaml")
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ByePoints != 0 {
		t.Errorf("expected bye points from .env to be 0, got %v", cfg.ByePoints)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	chdir(t, t.TempDir())
	cases := map[string]struct {
		body string
		env  map[string]string
	}{
		"bad yaml":        {body: "store_path: [", env: nil},
		"negative bye":    {body: "bye_points: -1", env: nil},
		"bad env float":   {body: "", env: map[string]string{"SWISS_BYE_POINTS": "one"}},
		"bad env integer": {body: "", env: map[string]string{"SWISS_DISCORD_PORT": "x"}},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			for k, v := range c.env {
				t.Setenv(k, v)
			}
			if _, err := LoadConfig(writeFile(t, "swiss.yaml", c.body)); err == nil {
				t.Errorf("expected an error")
			}
		})
	}
}
