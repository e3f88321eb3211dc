package sync

import (
	"context"
	"encoding/json"
	"testing"
)

func TestRegistry_AttachOnce(t *testing.T) {
	r := NewRegistry()
	if err := r.Attach(map[string]Handler{FrameNotification: func(context.Context, json.RawMessage) {}}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := r.Attach(map[string]Handler{FrameNotification: func(context.Context, json.RawMessage) {}}); err == nil {
		t.Fatal("expected second attach to fail")
	}
}

func TestRegistry_DetachBeforeAttachIsSafe(t *testing.T) {
	r := NewRegistry()
	r.Detach()
	r.Detach()

	if err := r.Attach(map[string]Handler{FrameNotification: func(context.Context, json.RawMessage) {}}); err != nil {
		t.Fatalf("attach after detach: %v", err)
	}
}

func TestRegistry_DispatchAfterDetachDrops(t *testing.T) {
	r := NewRegistry()
	called := 0
	if err := r.Attach(map[string]Handler{FrameEntityChanged: func(context.Context, json.RawMessage) { called++ }}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	r.Dispatch(context.Background(), FrameEntityChanged, nil)
	r.Detach()
	r.Dispatch(context.Background(), FrameEntityChanged, nil)

	if called != 1 {
		t.Fatalf("handler calls = %d, want 1", called)
	}
}

func TestRegistry_UnknownKindDropped(t *testing.T) {
	r := NewRegistry()
	if err := r.Attach(map[string]Handler{FrameEntityChanged: func(context.Context, json.RawMessage) {}}); err != nil {
		t.Fatalf("attach: %v", err)
	}
	// Must not panic.
	r.Dispatch(context.Background(), "presence_changed", nil)
}
