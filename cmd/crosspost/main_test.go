package main

import (
	"testing"

	"crosspost/internal/api"
	"crosspost/internal/notify"
)

func TestParsePlatform(t *testing.T) {
	p, err := parsePlatform("linkedin")
	if err != nil {
		t.Fatalf("parsePlatform: %v", err)
	}
	if p != api.PlatformLinkedIn {
		t.Errorf("got %q", p)
	}

	if _, err := parsePlatform("mastodon"); err == nil {
		t.Error("expected error for unknown platform")
	}
}

func TestSeverityMark(t *testing.T) {
	cases := map[notify.Severity]string{
		notify.SeveritySuccess: "✅",
		notify.SeverityError:   "❌",
		notify.SeverityInfo:    "ℹ️",
	}
	for severity, want := range cases {
		if got := severityMark(severity); got != want {
			t.Errorf("severityMark(%q) = %q, want %q", severity, got, want)
		}
	}
}

func TestCommandsRegistered(t *testing.T) {
	want := []string{"signup", "login", "logout", "status", "connect", "disconnect", "generate", "draft", "image", "publish", "history"}
	have := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		have[c.Name()] = true
	}
	for _, name := range want {
		if !have[name] {
			t.Errorf("missing command %q", name)
		}
	}
}
