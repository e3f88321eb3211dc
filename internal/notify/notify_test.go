package notify

import "testing"

func TestBufferRetainsNotifications(t *testing.T) {
	b := &Buffer{}
	b.Notify(Notification{Message: "one", Severity: SeverityInfo})
	b.Notify(Notification{Message: "two", Severity: SeverityWarning})

	notes := b.Notifications()
	if len(notes) != 2 {
		t.Fatalf("notifications = %d, want 2", len(notes))
	}
	if notes[0].Message != "one" || notes[1].Message != "two" {
		t.Fatalf("expected insertion order, got %+v", notes)
	}

	// The returned slice is a copy.
	notes[0].Message = "mutated"
	if b.Notifications()[0].Message != "one" {
		t.Fatal("expected buffer unaffected by caller mutation")
	}

	b.Reset()
	if len(b.Notifications()) != 0 {
		t.Fatal("expected empty buffer after reset")
	}
}
