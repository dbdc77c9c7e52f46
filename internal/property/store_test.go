package property

import (
	"errors"
	"slices"
	"sync"
	"testing"
)

func TestNewStoreGetReturnsInsertedValues(t *testing.T) {
	t.Parallel()

	store, err := NewStore(
		Entry{Name: "mp.messaging.incoming.dummy-source.attribute", Value: "value"},
		Entry{Name: "mp.messaging.incoming.dummy-source-2.attribute", Value: "value-2"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, ok := store.Get("mp.messaging.incoming.dummy-source.attribute"); !ok || got != "value" {
		t.Fatalf("expected value, got %q (present=%v)", got, ok)
	}
	if got, ok := store.Get("mp.messaging.incoming.dummy-source-2.attribute"); !ok || got != "value-2" {
		t.Fatalf("expected value-2, got %q (present=%v)", got, ok)
	}
}

func TestGetIsExactMatchOnly(t *testing.T) {
	t.Parallel()

	store, err := NewStore(Entry{Name: "mp.messaging.connector.Dummy.common-A", Value: "Value-A"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range []string{
		"mp.messaging.connector.dummy.common-A",
		"mp.messaging.connector.Dummy",
		"mp.messaging.connector.Dummy.common-A.extra",
		"MP.MESSAGING.CONNECTOR.DUMMY.COMMON-A",
	} {
		if _, ok := store.Get(name); ok {
			t.Fatalf("expected %q to be absent", name)
		}
	}
}

func TestEmptyValueIsPresent(t *testing.T) {
	t.Parallel()

	store, err := NewStore(Entry{Name: "mp.messaging.incoming.dummy-source-2.items", Value: ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, ok := store.Get("mp.messaging.incoming.dummy-source-2.items")
	if !ok {
		t.Fatalf("expected empty value to be present")
	}
	if got != "" {
		t.Fatalf("expected empty string, got %q", got)
	}
}

func TestNewStoreLastWriteWins(t *testing.T) {
	t.Parallel()

	store, err := NewStore(
		Entry{Name: "a", Value: "1"},
		Entry{Name: "b", Value: "2"},
		Entry{Name: "a", Value: "3"},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got, _ := store.Get("a"); got != "3" {
		t.Fatalf("expected last value 3, got %q", got)
	}
	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
	if want := []string{"a", "b"}; !slices.Equal(store.Keys(), want) {
		t.Fatalf("expected keys %v, got %v", want, store.Keys())
	}
}

func TestNewStoreRejectsEmptyName(t *testing.T) {
	t.Parallel()

	if _, err := NewStore(Entry{Name: "ok", Value: "x"}, Entry{Name: "", Value: "y"}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}
	if _, err := FromMap(map[string]string{"": "y"}); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName from FromMap, got %v", err)
	}
}

func TestKeysReturnsCopy(t *testing.T) {
	t.Parallel()

	store, err := FromMap(map[string]string{"x": "1", "y": "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	keys := store.Keys()
	slices.Sort(keys)
	if want := []string{"x", "y"}; !slices.Equal(keys, want) {
		t.Fatalf("expected keys %v, got %v", want, keys)
	}

	keys[0] = "mutated"
	for _, k := range store.Keys() {
		if k == "mutated" {
			t.Fatalf("expected defensive copy of keys")
		}
	}
}

func TestNilAndEmptyStore(t *testing.T) {
	t.Parallel()

	var nilStore *Store
	if _, ok := nilStore.Get("x"); ok {
		t.Fatalf("expected nil store lookup to be absent")
	}
	if nilStore.Len() != 0 || len(nilStore.Keys()) != 0 {
		t.Fatalf("expected nil store to be empty")
	}

	empty, err := NewStore()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if keys := empty.Keys(); keys == nil || len(keys) != 0 {
		t.Fatalf("expected empty non-nil keys, got %v", keys)
	}
}

func TestStoreConcurrentReads(t *testing.T) {
	store, err := FromMap(map[string]string{"a": "1", "b": "2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got, ok := store.Get("a"); !ok || got != "1" {
				t.Errorf("unexpected lookup result %q/%v", got, ok)
			}
			if len(store.Keys()) != 2 {
				t.Errorf("unexpected key count")
			}
		}()
	}
	wg.Wait()
}
