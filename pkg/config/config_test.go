package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TIA_ROOT", "TIA_PROFILE", "TIA_DB_PATH", "TIA_YEAR", "DEBUG"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIA_ROOT", "/data/tia")
	t.Setenv("TIA_YEAR", "2022")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "/data/tia" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.ProfilePath != "/data/tia/profile.yaml" {
		t.Errorf("ProfilePath = %q, expected the root default", cfg.ProfilePath)
	}
	if cfg.Year != 2022 {
		t.Errorf("Year = %d", cfg.Year)
	}
	if !cfg.Debug {
		t.Error("Debug = false")
	}
}

func TestLoadExplicitProfileWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIA_ROOT", "/data/tia")
	t.Setenv("TIA_PROFILE", "/etc/tia/profile.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ProfilePath != "/etc/tia/profile.yaml" {
		t.Errorf("ProfilePath = %q", cfg.ProfilePath)
	}
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	envPath := filepath.Join(t.TempDir(), "test.env")
	content := "TIA_ROOT=/from/file\nTIA_YEAR=2023\n"
	if err := os.WriteFile(envPath, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "/from/file" || cfg.Year != 2023 {
		t.Errorf("cfg = %+v", cfg)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Load with missing explicit .env expected error")
	}
}

func TestLoadRejectsBadYear(t *testing.T) {
	clearEnv(t)
	t.Setenv("TIA_YEAR", "twentytwo")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric TIA_YEAR")
	}
}

func TestValidate(t *testing.T) {
	cfg := &Config{Root: "/data", ProfilePath: ""}

	if err := cfg.Validate("root"); err != nil {
		t.Errorf("Validate(root) = %v", err)
	}
	if err := cfg.Validate("profile"); err == nil {
		t.Error("Validate(profile) expected error")
	}
	if err := cfg.Validate("root", "profile", "db"); err == nil {
		t.Error("Validate with missing fields expected error")
	}
}
