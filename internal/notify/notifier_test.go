package notify

import (
	"testing"
	"time"
)

func TestShowAndCurrent(t *testing.T) {
	n := New()

	n.Success("posted")

	msg, ok := n.Current()
	if !ok {
		t.Fatal("expected a current message")
	}
	if msg.Text != "posted" {
		t.Errorf("text = %q, want %q", msg.Text, "posted")
	}
	if msg.Severity != SeveritySuccess {
		t.Errorf("severity = %q, want %q", msg.Severity, SeveritySuccess)
	}
}

func TestShowReplacesImmediately(t *testing.T) {
	n := New()

	n.Info("first")
	n.Error("second")

	msg, ok := n.Current()
	if !ok {
		t.Fatal("expected a current message")
	}
	if msg.Text != "second" {
		t.Errorf("text = %q, want %q", msg.Text, "second")
	}
}

func TestNonErrorAutoClears(t *testing.T) {
	n := NewWithTTL(20 * time.Millisecond)

	n.Success("done")

	deadline := time.Now().Add(2 * time.Second)
	for {
		if _, ok := n.Current(); !ok {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("success message was not auto-cleared")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestErrorNeverAutoClears(t *testing.T) {
	n := NewWithTTL(10 * time.Millisecond)

	n.Error("broken")
	time.Sleep(50 * time.Millisecond)

	if _, ok := n.Current(); !ok {
		t.Error("error message should persist until dismissed")
	}
}

func TestStaleTimerDoesNotClearNewerMessage(t *testing.T) {
	n := NewWithTTL(20 * time.Millisecond)

	n.Info("old")
	time.Sleep(10 * time.Millisecond)
	n.Error("new")

	// Wait well past the old message's expiry.
	time.Sleep(50 * time.Millisecond)

	msg, ok := n.Current()
	if !ok {
		t.Fatal("newer message was cleared by a stale timer")
	}
	if msg.Text != "new" {
		t.Errorf("text = %q, want %q", msg.Text, "new")
	}
}

func TestDismiss(t *testing.T) {
	n := New()

	n.Error("broken")
	n.Dismiss()

	if _, ok := n.Current(); ok {
		t.Error("expected no message after dismiss")
	}

	// Dismissing with nothing shown is a no-op.
	n.Dismiss()
}
