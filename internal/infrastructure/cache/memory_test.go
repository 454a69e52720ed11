package cache

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestMemoryFlagStore_SetAndGet(t *testing.T) {
	store := NewMemoryFlagStore(time.Minute)
	ctx := context.Background()
	session := uuid.New()
	meeting := uuid.New()

	if ok, err := store.HasFaceVerified(ctx, session, meeting); err != nil || ok {
		t.Fatalf("fresh store: ok=%v err=%v", ok, err)
	}

	if err := store.SetFaceVerified(ctx, session, meeting); err != nil {
		t.Fatalf("set: %v", err)
	}
	if ok, _ := store.HasFaceVerified(ctx, session, meeting); !ok {
		t.Fatal("flag must be readable after set")
	}

	// Flags are scoped to the (session, meeting) pair.
	if ok, _ := store.HasFaceVerified(ctx, uuid.New(), meeting); ok {
		t.Fatal("a different session must not see the flag")
	}
	if ok, _ := store.HasFaceVerified(ctx, session, uuid.New()); ok {
		t.Fatal("a different meeting must not see the flag")
	}
}

func TestMemoryFlagStore_Expiry(t *testing.T) {
	store := NewMemoryFlagStore(10 * time.Millisecond)
	ctx := context.Background()
	session := uuid.New()
	meeting := uuid.New()

	store.SetFaceVerified(ctx, session, meeting)
	time.Sleep(20 * time.Millisecond)

	if ok, _ := store.HasFaceVerified(ctx, session, meeting); ok {
		t.Fatal("flag must expire after the TTL")
	}
}

func TestMemoryFlagStore_Clear(t *testing.T) {
	store := NewMemoryFlagStore(time.Minute)
	ctx := context.Background()
	session := uuid.New()
	meeting := uuid.New()

	store.SetFaceVerified(ctx, session, meeting)
	if err := store.ClearFaceVerified(ctx, session, meeting); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if ok, _ := store.HasFaceVerified(ctx, session, meeting); ok {
		t.Fatal("flag must be gone after clear")
	}
}
