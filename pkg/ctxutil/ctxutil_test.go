package ctxutil

import (
	"context"
	"testing"
)

func TestWithActor_And_ActorFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), " ana ")

	got, ok := ActorFromCtx(ctx)
	if !ok {
		t.Fatal("expected ok=true for a set actor")
	}
	if got != "ana" {
		t.Fatalf("expected ana, got %q", got)
	}
}

func TestActorFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got, ok := ActorFromCtx(context.Background())
	if ok {
		t.Fatal("expected ok=false for empty context")
	}
	if got != "" {
		t.Fatalf("expected empty actor, got %q", got)
	}
}

func TestActorFromCtx_Blank(t *testing.T) {
	t.Parallel()

	ctx := WithActor(context.Background(), "   ")

	if _, ok := ActorFromCtx(ctx); ok {
		t.Fatal("expected ok=false for blank actor")
	}
}

func TestActorFromCtx_WrongType(t *testing.T) {
	t.Parallel()

	ctx := context.WithValue(context.Background(), ctxKey("actor"), 42)

	if _, ok := ActorFromCtx(ctx); ok {
		t.Fatal("expected ok=false for wrong type")
	}
}

func TestWithRequestID_And_RequestIDFromCtx(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-123")

	got := RequestIDFromCtx(ctx)
	if got != "req-123" {
		t.Fatalf("expected req-123, got %s", got)
	}
}

func TestRequestIDFromCtx_EmptyContext(t *testing.T) {
	t.Parallel()

	got := RequestIDFromCtx(context.Background())
	if got != "" {
		t.Fatalf("expected empty string, got %s", got)
	}
}
