package version

import (
	"strings"
	"testing"
)

func restore(t *testing.T) {
	t.Helper()
	v, c, b := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = v, c, b })
}

func TestGet_LinkerValuesWin(t *testing.T) {
	restore(t)
	Version, GitCommit, BuildTime = "1.2.0", "abcdef0123", "2026-01-02T03:04:05Z"

	info := Get()
	if info.Version != "1.2.0" || info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Errorf("unexpected info %+v", info)
	}
	if info.GitCommit != "abcdef0" {
		t.Errorf("expected a 7 character commit, got %q", info.GitCommit)
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", IsDirty: true}, "1.0.0-abc1234-dirty"},
		{Info{Version: "1.0.0", IsDirty: true}, "1.0.0"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	s := Info{Version: "1.0.0", BuildTime: "2026-01-02T03:04:05Z", GoVersion: "go1.25.0"}.String()
	if s != "1.0.0 (built 2026-01-02T03:04:05Z) go1.25.0" {
		t.Errorf("unexpected %q", s)
	}
}

func TestUserAgent(t *testing.T) {
	restore(t)
	Version = "3.1.4"
	if ua := UserAgent(); !strings.HasPrefix(ua, "reqkit/3.1.4") {
		t.Errorf("unexpected user agent %q", ua)
	}
}
