package events

import (
	"context"
	"testing"
)

func TestClientIDRoundTrip(t *testing.T) {
	ctx := ContextWithClientID(context.Background(), "client-42")
	got := ClientIDFromContext(ctx)
	if got != "client-42" {
		t.Errorf("got %q, want %q", got, "client-42")
	}
}

func TestClientIDFromEmptyContext(t *testing.T) {
	got := ClientIDFromContext(context.Background())
	if got != "" {
		t.Errorf("got %q, want empty string", got)
	}
}
