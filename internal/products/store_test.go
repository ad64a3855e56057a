package products

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"restlab/internal/testutil"
)

func newTestStore() *Store {
	return NewStore(WithLatency(Latency{}))
}

func TestListReturnsSeed(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	result, err := newTestStore().List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !result.IsOk() || result.Status() != http.StatusOK {
		t.Fatalf("unexpected result status %d", result.Status())
	}
	if got := len(result.Value()); got != 3 {
		t.Fatalf("expected 3 products, got %d", got)
	}
}

func TestGetMissingProduct(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	result, err := newTestStore().Get(ctx, 99)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if result.IsOk() || result.Err().Status != http.StatusNotFound || result.Err().Message != MessageNotFound {
		t.Fatalf("expected not found, got %+v", result.Err())
	}
}

func TestCreateValidatesAndAssignsIDs(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	store := newTestStore()

	for _, draft := range []Draft{{Price: 10}, {Name: "  ", Price: 10}, {Name: "Cabo"}, {Name: "Cabo", Price: -1}} {
		result, err := store.Create(ctx, draft)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		apiErr := result.Err()
		if apiErr == nil || apiErr.Status != http.StatusBadRequest || apiErr.Message != MessageInvalid {
			t.Fatalf("draft %+v: expected invalid data, got %+v", draft, apiErr)
		}
		if len(apiErr.Errors) != 1 || apiErr.Errors[0] != MessageNameAndPrice {
			t.Fatalf("unexpected validation errors %v", apiErr.Errors)
		}
	}

	first, err := store.Create(ctx, Draft{Name: "Monitor", Price: 899.9, Stock: 4})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Status() != http.StatusCreated || first.Value().ID != 4 || first.Message() != MessageCreated {
		t.Fatalf("unexpected create result: %+v", first.Value())
	}
	second, _ := store.Create(ctx, Draft{Name: "Webcam", Price: 199})
	if second.Value().ID != 5 {
		t.Fatalf("expected id 5, got %d", second.Value().ID)
	}
}

func TestUpdateMergesPatch(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	store := newTestStore()
	price := 279.5
	result, err := store.Update(ctx, 2, Patch{Price: &price})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	got := result.Value()
	if got.Price != 279.5 || got.Name != "Mouse Logitech" || got.Stock != 25 {
		t.Fatalf("unexpected merged product: %+v", got)
	}
	stored, _ := store.Get(ctx, 2)
	if stored.Value() != got {
		t.Fatalf("update not persisted: %+v", stored.Value())
	}
	missing, _ := store.Update(ctx, 42, Patch{Price: &price})
	if missing.IsOk() || missing.Status() != http.StatusNotFound {
		t.Fatalf("expected not found for missing product")
	}
}

func TestDeleteRemovesProduct(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	store := newTestStore()
	result, err := store.Delete(ctx, 1)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !result.IsOk() || result.Message() != MessageDeleted {
		t.Fatalf("unexpected delete result: %+v", result.Err())
	}
	again, _ := store.Delete(ctx, 1)
	if again.Status() != http.StatusNotFound {
		t.Fatalf("expected second delete to be not found, got %d", again.Status())
	}
	list, _ := store.List(ctx)
	if len(list.Value()) != 2 {
		t.Fatalf("expected 2 products left, got %d", len(list.Value()))
	}
}

func TestLatencyHonorsContext(t *testing.T) {
	store := NewStore(WithLatency(Latency{List: time.Hour}))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := store.List(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestListReturnsCopy(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	store := newTestStore()
	first, _ := store.List(ctx)
	first.Value()[0].Name = "changed"
	second, _ := store.List(ctx)
	if second.Value()[0].Name != "Notebook Dell" {
		t.Fatalf("store was mutated through a listed slice")
	}
}

func TestReplaceOverwritesAllFields(t *testing.T) {
	ctx := testutil.Context(t, time.Second)
	store := newTestStore()
	result, err := store.Replace(ctx, 3, Draft{Name: "Teclado", Price: 350})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	want := Product{ID: 3, Name: "Teclado", Price: 350}
	if result.Value() != want {
		t.Fatalf("expected %+v, got %+v", want, result.Value())
	}
	invalid, _ := store.Replace(ctx, 3, Draft{Name: "Teclado"})
	if invalid.Status() != http.StatusBadRequest {
		t.Fatalf("expected invalid replace to be rejected, got %d", invalid.Status())
	}
	missing, _ := store.Replace(ctx, 9, Draft{Name: "x", Price: 1})
	if missing.Status() != http.StatusNotFound {
		t.Fatalf("expected not found, got %d", missing.Status())
	}
}
