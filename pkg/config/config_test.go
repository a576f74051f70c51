package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8089" {
		t.Errorf("Expected Port to be 8089, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.Scan.SyncWorkers != 5 {
		t.Errorf("Expected Scan.SyncWorkers to be 5, got %d", cfg.Scan.SyncWorkers)
	}

	if cfg.Scan.CandidateLimit != 8 {
		t.Errorf("Expected Scan.CandidateLimit to be 8, got %d", cfg.Scan.CandidateLimit)
	}

	if cfg.Finnhub.BaseURL != "https://finnhub.io/api/v1" {
		t.Errorf("Unexpected Finnhub base URL: %s", cfg.Finnhub.BaseURL)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("FINNHUB_API_KEY", "fh-test-key")
	os.Setenv("FINNHUB_TIMEOUT", "3s")
	os.Setenv("SCAN_SYNC_WORKERS", "3")
	os.Setenv("LOG_LEVEL", "info")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("FINNHUB_API_KEY")
		os.Unsetenv("FINNHUB_TIMEOUT")
		os.Unsetenv("SCAN_SYNC_WORKERS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Finnhub.APIKey != "fh-test-key" {
		t.Errorf("Expected Finnhub API key to be set, got %s", cfg.Finnhub.APIKey)
	}

	if cfg.Finnhub.Timeout != 3*time.Second {
		t.Errorf("Expected Finnhub timeout 3s, got %s", cfg.Finnhub.Timeout)
	}

	if cfg.Scan.SyncWorkers != 3 {
		t.Errorf("Expected Scan.SyncWorkers to be 3, got %d", cfg.Scan.SyncWorkers)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected LogLevel to be info, got %s", cfg.LogLevel)
	}
}

func TestValidateRejectsBadEnv(t *testing.T) {
	os.Setenv("ENV", "nonsense")
	defer os.Unsetenv("ENV")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for unknown ENV")
	}
}

func TestValidateRejectsZeroWorkers(t *testing.T) {
	os.Setenv("SCAN_SYNC_WORKERS", "0")
	defer os.Unsetenv("SCAN_SYNC_WORKERS")

	if _, err := Load(); err == nil {
		t.Error("Load() should fail for SCAN_SYNC_WORKERS=0")
	}
}
