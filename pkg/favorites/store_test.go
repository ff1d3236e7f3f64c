package favorites

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/AimceptionGian/FlexiPlan/pkg/transit"
)

func connection(from, to, departure string) transit.Connection {
	return transit.Connection{
		From:     transit.Checkpoint{Station: transit.Location{Name: from}, Departure: departure, Platform: "3"},
		To:       transit.Checkpoint{Station: transit.Location{Name: to}, Arrival: departure},
		Duration: "00d00:22:00",
		Sections: []transit.Section{
			{Journey: &transit.Journey{Category: "S", Number: "1", Operator: transit.Operator{Name: "BLS"}}},
		},
	}
}

// brokenBackend fails every call
type brokenBackend struct{}

func (brokenBackend) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (brokenBackend) Set(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

// readOnlyBackend serves reads from a memory backend and rejects writes
type readOnlyBackend struct {
	*MemoryBackend
}

func (readOnlyBackend) Set(context.Context, string, []byte) error {
	return errors.New("read-only")
}

func TestStore_AddLoadToggle(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())
	c1 := connection("Bern", "Zürich HB", "2026-02-25T08:02:00+0100")

	list, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty favorites, got %d", len(list))
	}

	if _, err := store.Add(ctx, c1); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	list, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(list) != 1 || !reflect.DeepEqual(list[0], c1) {
		t.Fatalf("expected [C1], got %+v", list)
	}

	saved, err := store.Toggle(ctx, c1)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if saved {
		t.Errorf("expected toggle of a saved record to remove it")
	}

	list, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty favorites after toggle, got %d", len(list))
	}
}

func TestStore_AddDuplicateIsNoop(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())
	c1 := connection("Bern", "Thun", "2026-02-25T09:00:00+0100")
	copyOfC1 := connection("Bern", "Thun", "2026-02-25T09:00:00+0100")

	added, err := store.Add(ctx, c1)
	if err != nil || !added {
		t.Fatalf("expected first add to succeed, got added=%v err=%v", added, err)
	}
	added, err = store.Add(ctx, copyOfC1)
	if err != nil {
		t.Fatalf("second add failed: %v", err)
	}
	if added {
		t.Errorf("expected structurally equal record to be skipped")
	}

	list, _ := store.Load(ctx)
	if len(list) != 1 {
		t.Errorf("expected favorites count to stay 1, got %d", len(list))
	}
}

func TestStore_ToggleIsSelfInverse(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend())
	a := connection("Bern", "Thun", "2026-02-25T09:00:00+0100")
	b := connection("Bern", "Basel SBB", "2026-02-25T09:30:00+0100")
	x := connection("Bern", "Zürich HB", "2026-02-25T10:00:00+0100")

	for _, c := range []transit.Connection{a, b} {
		if _, err := store.Add(ctx, c); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}
	before, _ := store.Load(ctx)

	if saved, err := store.Toggle(ctx, x); err != nil || !saved {
		t.Fatalf("expected first toggle to add, got saved=%v err=%v", saved, err)
	}
	if saved, err := store.Toggle(ctx, x); err != nil || saved {
		t.Fatalf("expected second toggle to remove, got saved=%v err=%v", saved, err)
	}

	after, _ := store.Load(ctx)
	if !reflect.DeepEqual(before, after) {
		t.Errorf("toggle twice should restore the list.\nBefore: %+v\nAfter: %+v", before, after)
	}
}

func TestStore_RemoveFirstMatchOnly(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	a := connection("Bern", "Thun", "2026-02-25T09:00:00+0100")
	b := connection("Bern", "Basel SBB", "2026-02-25T09:30:00+0100")

	// Seed a list that already contains a duplicate, as older app versions could write
	store := NewStore(backend)
	if err := store.save(ctx, []transit.Connection{a, b, a}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	removed, err := store.Remove(ctx, a)
	if err != nil || !removed {
		t.Fatalf("expected remove to succeed, got removed=%v err=%v", removed, err)
	}

	list, _ := store.Load(ctx)
	if len(list) != 2 || !transit.Equal(list[0], b) || !transit.Equal(list[1], a) {
		t.Errorf("expected [b a] after removing first a, got %+v", list)
	}

	removed, err = store.Remove(ctx, connection("Nowhere", "Else", ""))
	if err != nil || removed {
		t.Errorf("expected removing an unknown record to be a no-op, got removed=%v err=%v", removed, err)
	}
}

func TestStore_MalformedDataIsEmpty(t *testing.T) {
	ctx := context.Background()
	backend := NewMemoryBackend()
	if err := backend.Set(ctx, Key, []byte("{not json")); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	store := NewStore(backend)

	list, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("expected malformed data to be treated as empty, got error: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list, got %d", len(list))
	}

	// Adding on top of garbage replaces it with a valid list
	if _, err := store.Add(ctx, connection("Bern", "Thun", "x")); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	list, _ = store.Load(ctx)
	if len(list) != 1 {
		t.Errorf("expected 1 favorite, got %d", len(list))
	}
}

func TestStore_BackendErrors(t *testing.T) {
	ctx := context.Background()
	store := NewStore(brokenBackend{})

	if _, err := store.Load(ctx); !errors.Is(err, ErrBackend) {
		t.Errorf("expected ErrBackend from Load, got %v", err)
	}
	if _, err := store.Add(ctx, connection("Bern", "Thun", "x")); !errors.Is(err, ErrBackend) {
		t.Errorf("expected ErrBackend from Add, got %v", err)
	}

	ro := NewStore(readOnlyBackend{NewMemoryBackend()})
	if _, err := ro.Toggle(ctx, connection("Bern", "Thun", "x")); !errors.Is(err, ErrBackend) {
		t.Errorf("expected ErrBackend from a failed write, got %v", err)
	}
}

func TestStore_Contains(t *testing.T) {
	ctx := context.Background()
	store := NewStore(NewMemoryBackend(), WithKey("TEST_FAVORITES"))
	c := connection("Bern", "Thun", "2026-02-25T09:00:00+0100")

	if ok, _ := store.Contains(ctx, c); ok {
		t.Errorf("expected record not to be contained yet")
	}
	store.Add(ctx, c)
	if ok, _ := store.Contains(ctx, c); !ok {
		t.Errorf("expected record to be contained after add")
	}
}
