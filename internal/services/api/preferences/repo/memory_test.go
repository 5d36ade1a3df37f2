package repo

import (
	"context"
	"sync"
	"testing"

	perr "notifygate/internal/platform/errors"
	"notifygate/internal/services/api/preferences/domain"
)

func record(start, end string) domain.Preference {
	return domain.Preference{
		Dnd:           &domain.DndWindow{Start: start, End: end},
		EventSettings: map[string]domain.EventFlag{"item_shipped": {Enabled: true}},
	}
}

// TestMemory_Roundtrip stores a record and reads back an equal copy
func TestMemory_Roundtrip(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	if err := m.Put(ctx, "usr_1", record("22:00", "07:00")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := m.Get(ctx, "usr_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Dnd == nil || got.Dnd.Start != "22:00" || got.Dnd.End != "07:00" {
		t.Fatalf("dnd = %+v", got.Dnd)
	}
	if !got.EventSettings["item_shipped"].Enabled {
		t.Fatalf("eventSettings = %+v", got.EventSettings)
	}
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
}

// TestMemory_AbsentIsNotFound an unknown user yields a not-found error, not a zero record
func TestMemory_AbsentIsNotFound(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	_, err := m.Get(context.Background(), "ghost")
	if !perr.IsNotFound(err) {
		t.Fatalf("err = %v, want not found", err)
	}
}

// TestMemory_ReadsAreCopies mutating a returned record must not affect stored state
func TestMemory_ReadsAreCopies(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	if err := m.Put(ctx, "usr_1", record("22:00", "07:00")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, _ := m.Get(ctx, "usr_1")
	got.Dnd.Start = "00:00"
	got.EventSettings["item_shipped"] = domain.EventFlag{Enabled: false}

	again, _ := m.Get(ctx, "usr_1")
	if again.Dnd.Start != "22:00" || !again.EventSettings["item_shipped"].Enabled {
		t.Fatalf("stored record mutated through a read copy: %+v", again)
	}
}

// TestMemory_PutReplaces a second Put fully replaces the record, nothing merges
func TestMemory_PutReplaces(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	_ = m.Put(ctx, "usr_1", record("22:00", "07:00"))
	_ = m.Put(ctx, "usr_1", domain.Preference{
		EventSettings: map[string]domain.EventFlag{"invoice_generated": {Enabled: false}},
	})

	got, err := m.Get(ctx, "usr_1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Dnd != nil {
		t.Fatalf("dnd survived a replace: %+v", got.Dnd)
	}
	if _, ok := got.EventSettings["item_shipped"]; ok {
		t.Fatalf("old flag survived a replace: %+v", got.EventSettings)
	}
	if got.EventSettings["invoice_generated"].Enabled {
		t.Fatalf("eventSettings = %+v", got.EventSettings)
	}
}

// TestMemory_ConcurrentAccess hammers Get/Put from many goroutines; run with -race
func TestMemory_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	m := NewMemory()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_ = m.Put(ctx, "usr_1", record("22:00", "07:00"))
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				_, _ = m.Get(ctx, "usr_1")
			}
		}()
	}
	wg.Wait()
}
