package cli

import (
	"strings"
	"testing"
)

func TestMask(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"abc", "****"},
		{"eyJhbGciOiJFZERTQSJ9.secret", "********cret"},
	}
	for _, tt := range tests {
		if got := mask(tt.in); got != tt.want {
			t.Errorf("mask(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestConfigCommand(t *testing.T) {
	useTestRuntime(t)
	cfg.Database.AuthToken = "super-secret-token"

	out, err := runCmd(t, runConfig)
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if strings.Contains(out, "super-secret-token") {
		t.Error("auth token must be masked")
	}
	for _, want := range []string{"BRANDKIT_DATABASE_URL", "********oken", "BRANDKIT_PALETTE_BLEND", "hsl"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
