package memory

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository"
)

func TestSKUInsertEnforcesUniqueCode(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	if err := repos.SKUs.Insert(ctx, &models.SKU{Code: "SKU-001", Name: "A"}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	err := repos.SKUs.Insert(ctx, &models.SKU{Code: "SKU-001", Name: "B"})
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
}

func TestListCodesMatchesPrefixAndDigits(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	for _, code := range []string{"SKU-001", "SKU-12", "SKU-ABC", "X-SKU-003", "sku-004"} {
		if err := repos.SKUs.Insert(ctx, &models.SKU{Code: code}); err != nil {
			t.Fatalf("insert %s: %v", code, err)
		}
	}

	codes, err := repos.SKUs.ListCodes(ctx, models.SKUPrefix)
	if err != nil {
		t.Fatalf("list codes: %v", err)
	}
	sort.Strings(codes)
	if len(codes) != 2 || codes[0] != "SKU-001" || codes[1] != "SKU-12" {
		t.Fatalf("unexpected codes: %v", codes)
	}
}

func TestNamesByCode(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()
	_ = repos.SKUs.Insert(ctx, &models.SKU{Code: "SKU-001", Name: "Hammer"})
	_ = repos.SKUs.Insert(ctx, &models.SKU{Code: "SKU-002", Name: "Nails"})

	names, err := repos.SKUs.NamesByCode(ctx, []string{"SKU-002", "SKU-404"})
	if err != nil {
		t.Fatalf("names: %v", err)
	}
	if len(names) != 1 || names["SKU-002"] != "Nails" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestSKUListNewestFirst(t *testing.T) {
	store := NewStore()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	repos := store.Repositories()
	ctx := context.Background()

	for _, code := range []string{"SKU-001", "SKU-002", "SKU-003"} {
		_ = repos.SKUs.Insert(ctx, &models.SKU{Code: code})
	}
	list, err := repos.SKUs.List(ctx, models.SKUFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Code != "SKU-003" || list[2].Code != "SKU-001" {
		t.Fatalf("unexpected order: %+v", list)
	}
}

func TestWarehouseReplaceRejectsTakenCode(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	a := &models.Warehouse{Code: "WH-001", Name: "A"}
	b := &models.Warehouse{Code: "WH-002", Name: "B"}
	_ = repos.Warehouses.Insert(ctx, a)
	_ = repos.Warehouses.Insert(ctx, b)

	next := *a
	next.Code = "WH-002"
	if _, err := repos.Warehouses.Replace(ctx, a.ID.Hex(), next); !errors.Is(err, repository.ErrDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}

	next.Code = "WH-009"
	replaced, err := repos.Warehouses.Replace(ctx, a.ID.Hex(), next)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if replaced.Code != "WH-009" || !replaced.CreatedAt.Equal(a.CreatedAt) {
		t.Fatalf("unexpected replace result: %+v", replaced)
	}

	if _, err := repos.Warehouses.Replace(ctx, "zzz", next); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected not found for bad id, got %v", err)
	}
}

func TestTotalsByCode(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	for _, row := range []*models.InventoryRow{
		{SKU: "SKU-001", Location: "WH-001", Available: 4},
		{SKU: "SKU-001", Location: "WH-002", Available: 6},
		{SKU: "SKU-002", Location: "WH-001"},
	} {
		_ = repos.Inventory.Insert(ctx, row)
	}

	totals, err := repos.Inventory.TotalsByCode(ctx)
	if err != nil {
		t.Fatalf("totals: %v", err)
	}
	got := make(map[string]int64, len(totals))
	for _, total := range totals {
		got[total.Code] = total.TotalAvailable
	}
	if len(got) != 2 || got["SKU-001"] != 10 || got["SKU-002"] != 0 {
		t.Fatalf("unexpected totals: %v", got)
	}
}

func TestRetiredCodesArePerPrefix(t *testing.T) {
	repos := NewStore().Repositories()
	ctx := context.Background()

	_ = repos.Retired.Retire(ctx, models.SKUPrefix, "SKU-001")
	_ = repos.Retired.Retire(ctx, models.SKUPrefix, "SKU-001")
	_ = repos.Retired.Retire(ctx, models.WarehousePrefix, "WH-001")

	codes, err := repos.Retired.ListCodes(ctx, models.SKUPrefix)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(codes) != 1 || codes[0] != "SKU-001" {
		t.Fatalf("unexpected retired codes: %v", codes)
	}
}
