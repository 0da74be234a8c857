package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("BANNER_TEST_VALUE", "set")
	if got := GetEnv("BANNER_TEST_VALUE", "fallback"); got != "set" {
		t.Errorf("expected %q, got %q", "set", got)
	}
	if got := GetEnv("BANNER_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("expected fallback, got %q", got)
	}

	t.Setenv("BANNER_TEST_EMPTY", "")
	if got := GetEnv("BANNER_TEST_EMPTY", "fallback"); got != "" {
		t.Errorf("an empty but set variable should win, got %q", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    time.Duration
		wantErr bool
	}{
		{"unset", "", time.Minute, false},
		{"seconds", "90s", 90 * time.Second, false},
		{"zero disables", "0", 0, false},
		{"garbage", "soon", time.Minute, true},
		{"negative", "-5s", time.Minute, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("BANNER_TEST_DURATION", tt.value)
			got, err := GetEnvDuration("BANNER_TEST_DURATION", time.Minute)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
			if got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}
