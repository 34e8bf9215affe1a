package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
	"github.com/mamadbah2/stockroom/internal/service/codes"
)

// racingSKUs inserts a rival record with the same code right before the
// first insert, as a concurrent writer would.
type racingSKUs struct {
	repository.SKURepository
	once sync.Once
}

func (r *racingSKUs) Insert(ctx context.Context, sku *models.SKU) error {
	r.once.Do(func() {
		rival := &models.SKU{Code: sku.Code, Name: "rival", Category: "Other", Status: models.SKUStatusActive}
		_ = r.SKURepository.Insert(ctx, rival)
	})
	return r.SKURepository.Insert(ctx, sku)
}

func newService(t *testing.T) (*Service, repository.Store) {
	t.Helper()
	store := memory.NewStore().Repositories()
	return NewService(store.SKUs, store.Retired, nil, nil), store
}

func TestCreateAssignsNextCode(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		sku, err := svc.Create(ctx, models.CreateSKURequest{Name: fmt.Sprintf("Item %d", i), Category: "Tools"})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if want := fmt.Sprintf("SKU-%03d", i); sku.Code != want {
			t.Fatalf("unexpected code: got=%q want=%q", sku.Code, want)
		}
	}
}

func TestCreateValidation(t *testing.T) {
	svc, _ := newService(t)

	tests := []struct {
		name string
		req  models.CreateSKURequest
	}{
		{name: "blank name", req: models.CreateSKURequest{Name: "  ", Category: "Tools"}},
		{name: "blank category", req: models.CreateSKURequest{Name: "Hammer"}},
		{name: "unknown status", req: models.CreateSKURequest{Name: "Hammer", Category: "Tools", Status: "gone"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.req); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateExplicitDuplicate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, models.CreateSKURequest{Code: "SKU-007", Name: "Saw", Category: "Tools"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err := svc.Create(ctx, models.CreateSKURequest{Code: "SKU-007", Name: "Drill", Category: "Tools"})
	if !errors.Is(err, models.ErrDuplicateCode) {
		t.Fatalf("expected duplicate code error, got %v", err)
	}
}

func TestDeletedCodeIsNotReused(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, _ := svc.Create(ctx, models.CreateSKURequest{Name: "Saw", Category: "Tools"})
	second, _ := svc.Create(ctx, models.CreateSKURequest{Name: "Drill", Category: "Tools"})
	if err := svc.Delete(ctx, second.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	third, err := svc.Create(ctx, models.CreateSKURequest{Name: "Level", Category: "Tools"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if third.Code != "SKU-003" {
		t.Fatalf("unexpected code: got=%q want=SKU-003 (first was %s)", third.Code, first.Code)
	}

	if _, err := svc.Create(ctx, models.CreateSKURequest{Code: second.Code, Name: "Clone", Category: "Tools"}); !errors.Is(err, models.ErrDuplicateCode) {
		t.Fatalf("retired code accepted explicitly: %v", err)
	}
}

func TestCreateRetriesAfterLostRace(t *testing.T) {
	store := memory.NewStore().Repositories()
	racing := &racingSKUs{SKURepository: store.SKUs}
	svc := NewService(racing, store.Retired, codes.NewAllocator(3, nil), nil)

	sku, err := svc.Create(context.Background(), models.CreateSKURequest{Name: "Saw", Category: "Tools"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if sku.Code != "SKU-002" {
		t.Fatalf("unexpected code: got=%q want=SKU-002", sku.Code)
	}

	all, err := store.SKUs.List(context.Background(), models.SKUFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected rival plus one created record, got %d", len(all))
	}
	saws := 0
	for _, s := range all {
		if s.Name == "Saw" {
			saws++
		}
	}
	if saws != 1 {
		t.Fatalf("retry left %d records for one create", saws)
	}
}

func TestConcurrentCreatesGetDistinctCodes(t *testing.T) {
	store := memory.NewStore().Repositories()
	const callers = 16
	svc := NewService(store.SKUs, store.Retired, codes.NewAllocator(callers, nil), nil)

	var wg sync.WaitGroup
	results := make(chan string, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sku, err := svc.Create(context.Background(), models.CreateSKURequest{Name: fmt.Sprintf("n%d", i), Category: "Tools"})
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			results <- sku.Code
		}(i)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for code := range results {
		if seen[code] {
			t.Fatalf("code %s assigned twice", code)
		}
		seen[code] = true
	}
	if len(seen) != callers {
		t.Fatalf("expected %d codes, got %d", callers, len(seen))
	}
}

func TestListAllDisablesFilters(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, _ = svc.Create(ctx, models.CreateSKURequest{Name: "Saw", Category: "Tools"})
	_, _ = svc.Create(ctx, models.CreateSKURequest{Name: "Mug", Category: "Kitchen", Status: "Draft"})

	all, err := svc.List(ctx, models.SKUFilter{Category: "All", Status: "all"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 skus, got %d", len(all))
	}

	kitchen, _ := svc.List(ctx, models.SKUFilter{Category: "Kitchen"})
	if len(kitchen) != 1 || kitchen[0].Name != "Mug" {
		t.Fatalf("unexpected category filter result: %+v", kitchen)
	}

	byCode, _ := svc.List(ctx, models.SKUFilter{Query: "sku-001"})
	if len(byCode) != 1 || byCode[0].Code != "SKU-001" {
		t.Fatalf("unexpected query result: %+v", byCode)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	sku, _ := svc.Create(ctx, models.CreateSKURequest{Name: "Saw", Category: "Tools"})
	updated, err := svc.Update(ctx, sku.ID.Hex(), models.UpdateSKURequest{Name: "Hand saw", Category: "Tools", Status: "draft"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Code != sku.Code || updated.Status != models.SKUStatusDraft || updated.Name != "Hand saw" {
		t.Fatalf("unexpected update result: %+v", updated)
	}

	if _, err := svc.Update(ctx, sku.ID.Hex(), models.UpdateSKURequest{Name: "x"}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if err := svc.Delete(ctx, "6650f1f1f1f1f1f1f1f1f1f1"); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
