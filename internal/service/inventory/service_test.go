package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/stockroom/internal/domain/models"
	"github.com/mamadbah2/stockroom/internal/repository/memory"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }

func TestCreateValidation(t *testing.T) {
	svc := NewService(memory.NewStore().Repositories().Inventory, nil)

	tests := []struct {
		name string
		req  models.CreateInventoryRequest
	}{
		{name: "missing sku", req: models.CreateInventoryRequest{Location: "WH-001"}},
		{name: "missing location", req: models.CreateInventoryRequest{SKU: "SKU-001"}},
		{name: "negative available", req: models.CreateInventoryRequest{SKU: "SKU-001", Location: "WH-001", Available: int64Ptr(-1)}},
		{name: "negative reserved", req: models.CreateInventoryRequest{SKU: "SKU-001", Location: "WH-001", Reserved: int64Ptr(-2)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), tt.req); !errors.Is(err, models.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateUpdateListDelete(t *testing.T) {
	svc := NewService(memory.NewStore().Repositories().Inventory, nil)
	ctx := context.Background()

	row, err := svc.Create(ctx, models.CreateInventoryRequest{SKU: " SKU-001 ", Location: "WH-001"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if row.SKU != "SKU-001" || row.Available != 0 || row.Reserved != 0 {
		t.Fatalf("unexpected row: %+v", row)
	}
	if _, err := svc.Create(ctx, models.CreateInventoryRequest{SKU: "SKU-002", Location: "WH-002", Available: int64Ptr(9)}); err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := svc.Update(ctx, row.ID.Hex(), models.UpdateInventoryRequest{Available: int64Ptr(12), Location: strPtr("WH-003")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Available != 12 || updated.Location != "WH-003" || updated.SKU != "SKU-001" {
		t.Fatalf("unexpected update: %+v", updated)
	}

	if _, err := svc.Update(ctx, row.ID.Hex(), models.UpdateInventoryRequest{Reserved: int64Ptr(-1)}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := svc.Update(ctx, row.ID.Hex(), models.UpdateInventoryRequest{SKU: strPtr(" ")}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	filtered, err := svc.List(ctx, models.InventoryFilter{Location: "wh-003"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(filtered) != 1 || filtered[0].ID != row.ID {
		t.Fatalf("unexpected filter result: %+v", filtered)
	}

	if err := svc.Delete(ctx, row.ID.Hex()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := svc.Delete(ctx, row.ID.Hex()); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
