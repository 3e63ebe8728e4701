package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_CollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "definition", nil
	}

	const readers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(readers)
	errCh := make(chan error, readers)

	for range readers {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "puzzle-definition::wordle-2026-08-31", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "definition" {
				errCh <- errors.New("unexpected loaded value")
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_ServesCachedValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "cached", nil
	}

	for i := 0; i < 3; i++ {
		if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
			t.Fatalf("GetOrLoad %d: %v", i, err)
		}
	}

	if got := loads.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_ExpiredEntryReloads(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Nanosecond)
	var loads atomic.Int32

	loader := func(context.Context) (any, error) {
		loads.Add(1)
		return "v", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad: %v", err)
	}
	time.Sleep(time.Millisecond)
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad: %v", err)
	}

	if got := loads.Load(); got != 2 {
		t.Fatalf("expected reload after expiry, loader ran %d times", got)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "puzzle-definition::wordle-2026-08-31", 1)
	store.Set(ctx, "puzzle-definition::connections-2026-08-31", 2)
	store.Set(ctx, "other::key", 3)

	store.DeletePrefix(ctx, "puzzle-definition::")

	if _, ok := store.Get(ctx, "puzzle-definition::wordle-2026-08-31"); ok {
		t.Fatal("expected prefixed entry to be deleted")
	}
	if _, ok := store.Get(ctx, "other::key"); !ok {
		t.Fatal("expected unrelated entry to survive")
	}
}
