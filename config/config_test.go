package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadEnvReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	env := "SCOS_TEST_LOG_LEVEL=debug\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("SCOS_TEST_LOG_LEVEL", "")
	os.Unsetenv("SCOS_TEST_LOG_LEVEL")

	if !LoadEnv() {
		t.Fatal("LoadEnv did not find .env")
	}
	if got := Env("SCOS_TEST_LOG_LEVEL", "info"); got != "debug" {
		t.Errorf("SCOS_TEST_LOG_LEVEL = %q, want %q", got, "debug")
	}
}

func TestLoadEnvMissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if LoadEnv() {
		t.Error("LoadEnv reported success without a .env file")
	}
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("SCOS_TEST_PORT", "9090")
	if got := Env("SCOS_TEST_PORT", "8080"); got != "9090" {
		t.Errorf("Env = %q, want 9090", got)
	}
	if got := Env("SCOS_TEST_UNSET", "8080"); got != "8080" {
		t.Errorf("Env fallback = %q, want 8080", got)
	}
}
