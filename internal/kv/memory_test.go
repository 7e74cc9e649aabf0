package kv

import (
	"context"
	"testing"
)

func TestMemoryStoreRoundtrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, ok, err := store.Load(ctx, "leads")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if ok {
		t.Fatal("expected absent key on a fresh store")
	}

	if err := store.Save(ctx, "leads", []byte(`[]`)); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	value, ok, err := store.Load(ctx, "leads")
	if err != nil || !ok {
		t.Fatalf("Load failed: ok=%v err=%v", ok, err)
	}
	if string(value) != `[]` {
		t.Errorf("expected [], got %q", value)
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	payload := []byte(`{"a":1}`)
	if err := store.Save(ctx, "hero", payload); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	payload[2] = 'X'

	value, _, err := store.Load(ctx, "hero")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(value) != `{"a":1}` {
		t.Errorf("stored value was aliased to caller buffer: %q", value)
	}

	// Mutating what Load handed back must not touch the stored copy either.
	value[2] = 'Y'
	again, _, _ := store.Load(ctx, "hero")
	if string(again) != `{"a":1}` {
		t.Errorf("stored value was aliased to Load result: %q", again)
	}
}
