package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Data.CSVFile != DefaultCSVFile {
		t.Errorf("CSVFile = %q, want %q", cfg.Data.CSVFile, DefaultCSVFile)
	}
	if cfg.Data.PreviewRows != 5 {
		t.Errorf("PreviewRows = %d, want 5", cfg.Data.PreviewRows)
	}
	if cfg.Viewer.Host != "127.0.0.1" {
		t.Errorf("Host = %q, want 127.0.0.1", cfg.Viewer.Host)
	}
	if cfg.Viewer.Port != 0 {
		t.Errorf("Port = %d, want 0", cfg.Viewer.Port)
	}
	if !cfg.Viewer.OpenBrowser {
		t.Error("OpenBrowser should default to true")
	}
	if cfg.Render.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Render.Workers)
	}
	if cfg.Logger.Format != "text" {
		t.Errorf("Format = %q, want text", cfg.Logger.Format)
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("VIEWER_PORT", "8090")
	t.Setenv("VIEWER_OPEN_BROWSER", "false")
	t.Setenv("VIEWER_SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("RENDER_WORKERS", "2")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Viewer.Port != 8090 {
		t.Errorf("Port = %d, want 8090", cfg.Viewer.Port)
	}
	if cfg.Viewer.OpenBrowser {
		t.Error("OpenBrowser should be false")
	}
	if cfg.Viewer.ShutdownTimeout != 3*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 3s", cfg.Viewer.ShutdownTimeout)
	}
	if cfg.Render.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Render.Workers)
	}
	if cfg.Logger.Level != "debug" || cfg.Logger.Format != "json" {
		t.Errorf("Logger = %+v", cfg.Logger)
	}
	if got := cfg.Address(); got != "127.0.0.1:8090" {
		t.Errorf("Address() = %q", got)
	}
}

func TestLoad_CSVPathIsNotConfigurable(t *testing.T) {
	t.Setenv("CSV_FILE", "/tmp/other.csv")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Data.CSVFile != DefaultCSVFile {
		t.Errorf("CSVFile = %q, want %q", cfg.Data.CSVFile, DefaultCSVFile)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr string
	}{
		{"public host", "VIEWER_HOST", "0.0.0.0", "loopback"},
		{"remote host", "VIEWER_HOST", "example.com", "loopback"},
		{"port too large", "VIEWER_PORT", "70000", "port"},
		{"no workers", "RENDER_WORKERS", "0", "workers"},
		{"bad level", "LOG_LEVEL", "verbose", "log level"},
		{"bad format", "LOG_FORMAT", "xml", "log format"},
		{"bad rps", "RATE_LIMIT_RPS", "0", "RPS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestIsLoopback(t *testing.T) {
	for host, want := range map[string]bool{
		"localhost":   true,
		"127.0.0.1":   true,
		"::1":         true,
		"192.168.0.1": false,
		"":            false,
	} {
		if got := isLoopback(host); got != want {
			t.Errorf("isLoopback(%q) = %v, want %v", host, got, want)
		}
	}
}
