package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want 8080", cfg.ServerPort)
	}
	if cfg.BcryptCost != 10 {
		t.Errorf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Errorf("MaxUploadBytes = %d, want 10 MiB", cfg.MaxUploadBytes)
	}
	if cfg.SweepGracePeriod != time.Hour {
		t.Errorf("SweepGracePeriod = %v, want 1h", cfg.SweepGracePeriod)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "1")

	cfg := Load()
	if cfg.ServerPort != "9999" {
		t.Errorf("ServerPort = %q, want 9999", cfg.ServerPort)
	}
	if cfg.JWTExpiry != 2*time.Hour {
		t.Errorf("JWTExpiry = %v, want 2h", cfg.JWTExpiry)
	}
	if cfg.MaxUploadBytes != 1<<20 {
		t.Errorf("MaxUploadBytes = %d, want 1 MiB", cfg.MaxUploadBytes)
	}
}

func TestParseOrigins(t *testing.T) {
	if got := parseOrigins(""); got != nil {
		t.Errorf("empty input = %v, want nil", got)
	}

	got := parseOrigins("https://a.example.com, https://b.example.com ,")
	want := []string{"https://a.example.com", "https://b.example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("parseOrigins = %v, want %v", got, want)
	}
}

func TestCacheKeys(t *testing.T) {
	if got := CacheKey.InstructorSessionKey(5); got != "registra:instructor:5:session" {
		t.Errorf("session key = %q", got)
	}
	if got := CacheKey.CourseEnrollmentChannel(7); got != "registra:courses:7:enrollments" {
		t.Errorf("channel = %q", got)
	}
}
