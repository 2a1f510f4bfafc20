package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAppConfigDefaults(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.Postgres.Port != 5432 {
		t.Errorf("expected default db port 5432, got %d", cfg.Postgres.Port)
	}
	if cfg.Ingest.PageSize != 1000 {
		t.Errorf("expected default page size 1000, got %d", cfg.Ingest.PageSize)
	}
	if cfg.Ingest.CallDelay != time.Second {
		t.Errorf("expected default call delay 1s, got %v", cfg.Ingest.CallDelay)
	}
	if cfg.SeoulAPI.BaseURL != "http://openapi.seoul.go.kr:8088" {
		t.Errorf("unexpected default base url: %q", cfg.SeoulAPI.BaseURL)
	}
	if cfg.SeoulAPI.Endpoint != "GetJobInfo" {
		t.Errorf("unexpected default endpoint: %q", cfg.SeoulAPI.Endpoint)
	}
}

func TestAppConfigFromEnv(t *testing.T) {
	t.Setenv("SEOUL_API_KEY", "  test-key  ")
	t.Setenv("INGEST_PAGE_SIZE", "500")
	t.Setenv("DB_HOST", "db.internal")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.SeoulAPI.Key != "test-key" {
		t.Errorf("expected trimmed api key, got %q", cfg.SeoulAPI.Key)
	}
	if cfg.Ingest.PageSize != 500 {
		t.Errorf("expected page size 500, got %d", cfg.Ingest.PageSize)
	}
	if cfg.Postgres.Host != "db.internal" {
		t.Errorf("expected db host override, got %q", cfg.Postgres.Host)
	}
}

func TestIngestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		in       IngestConfig
		pageSize int
		maxCalls int
		delay    time.Duration
	}{
		{
			name:     "zero values clamp to minimums",
			in:       IngestConfig{},
			pageSize: 1,
			maxCalls: 1,
			delay:    0,
		},
		{
			name:     "page size above upstream ceiling is clamped",
			in:       IngestConfig{PageSize: 5000, MaxCalls: 10, CallDelay: time.Second},
			pageSize: 1000,
			maxCalls: 10,
			delay:    time.Second,
		},
		{
			name:     "negative delay clamps to zero",
			in:       IngestConfig{PageSize: 100, MaxCalls: 5, CallDelay: -time.Second},
			pageSize: 100,
			maxCalls: 5,
			delay:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Sanitize()
			if cfg.PageSize != tt.pageSize {
				t.Errorf("page size: got %d, want %d", cfg.PageSize, tt.pageSize)
			}
			if cfg.MaxCalls != tt.maxCalls {
				t.Errorf("max calls: got %d, want %d", cfg.MaxCalls, tt.maxCalls)
			}
			if cfg.CallDelay != tt.delay {
				t.Errorf("call delay: got %v, want %v", cfg.CallDelay, tt.delay)
			}
		})
	}
}

func TestSeoulAPISanitize(t *testing.T) {
	cfg := SeoulAPIConfig{
		BaseURL:  " http://openapi.seoul.go.kr:8088/ ",
		Endpoint: " /GetJobInfo/ ",
		Retries:  -1,
	}
	cfg.Sanitize()

	if cfg.BaseURL != "http://openapi.seoul.go.kr:8088" {
		t.Errorf("base url not normalized: %q", cfg.BaseURL)
	}
	if cfg.Endpoint != "GetJobInfo" {
		t.Errorf("endpoint not normalized: %q", cfg.Endpoint)
	}
	if cfg.Retries != 0 {
		t.Errorf("negative retries should clamp to 0, got %d", cfg.Retries)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("zero timeout should default to 10s, got %v", cfg.Timeout)
	}
	if cfg.MaxBodyBytes != 4<<20 {
		t.Errorf("zero body cap should default to 4MiB, got %d", cfg.MaxBodyBytes)
	}
}

func TestLockSanitize(t *testing.T) {
	cfg := LockConfig{}
	cfg.Sanitize()
	if cfg.Key == "" {
		t.Error("lock key should default to a non-empty value")
	}
	if cfg.TTL != 30*time.Minute {
		t.Errorf("lock TTL should default to 30m, got %v", cfg.TTL)
	}
}
