package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// stubInventoryRepo enforces the non-negative stock contract the real
// repository implements with a conditional update.
type stubInventoryRepo struct {
	parts map[string]*domain.Part
}

func newStubInventoryRepo() *stubInventoryRepo {
	return &stubInventoryRepo{parts: map[string]*domain.Part{}}
}

func (r *stubInventoryRepo) Create(_ context.Context, p *domain.Part) (*domain.Part, error) {
	if _, ok := r.parts[p.SKU]; ok {
		return nil, domain.ErrPartExists
	}
	r.parts[p.SKU] = p
	return p, nil
}

func (r *stubInventoryRepo) FindBySKU(_ context.Context, sku string) (*domain.Part, error) {
	if p, ok := r.parts[sku]; ok {
		return p, nil
	}
	return nil, domain.ErrPartNotFound
}

func (r *stubInventoryRepo) List(_ context.Context, _ ports.ListPartsFilter) ([]*domain.Part, int64, error) {
	out := make([]*domain.Part, 0, len(r.parts))
	for _, p := range r.parts {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (r *stubInventoryRepo) AdjustStock(_ context.Context, sku string, delta int) (*domain.Part, error) {
	p, ok := r.parts[sku]
	if !ok {
		return nil, domain.ErrPartNotFound
	}
	if p.Stock+delta < 0 {
		return nil, domain.ErrInsufficientStock
	}
	p.Stock += delta
	return p, nil
}

func (r *stubInventoryRepo) Delete(_ context.Context, sku string) error {
	if _, ok := r.parts[sku]; !ok {
		return domain.ErrPartNotFound
	}
	delete(r.parts, sku)
	return nil
}

func TestInventoryService_CreatePart_NormalizesSKU(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo, zerolog.Nop())

	part, err := svc.CreatePart(context.Background(), ports.CreatePartInput{
		SKU:          "  brk-001 ",
		Name:         "Brake pad set",
		InitialStock: 10,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if part.SKU != "BRK-001" {
		t.Fatalf("expected upper-cased SKU, got %q", part.SKU)
	}

	// Lookup through any casing resolves the same part.
	if _, err := svc.GetPart(context.Background(), "brk-001"); err != nil {
		t.Fatalf("get with lower-case sku: %v", err)
	}
}

func TestInventoryService_AdjustStock(t *testing.T) {
	repo := newStubInventoryRepo()
	svc := NewInventoryService(repo, zerolog.Nop())

	if _, err := svc.CreatePart(context.Background(), ports.CreatePartInput{
		SKU:          "BRK-001",
		Name:         "Brake pad set",
		InitialStock: 5,
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	part, err := svc.AdjustStock(context.Background(), "BRK-001", -3)
	if err != nil {
		t.Fatalf("adjust: %v", err)
	}
	if part.Stock != 2 {
		t.Fatalf("expected stock 2, got %d", part.Stock)
	}

	// Driving stock below zero must fail and leave the count unchanged.
	if _, err := svc.AdjustStock(context.Background(), "BRK-001", -3); !errors.Is(err, domain.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}
	current, _ := svc.GetPart(context.Background(), "BRK-001")
	if current.Stock != 2 {
		t.Fatalf("stock changed after rejected adjustment: %d", current.Stock)
	}
}

func TestInventoryService_AdjustStock_UnknownPart(t *testing.T) {
	svc := NewInventoryService(newStubInventoryRepo(), zerolog.Nop())

	if _, err := svc.AdjustStock(context.Background(), "NOPE-1", 1); !errors.Is(err, domain.ErrPartNotFound) {
		t.Fatalf("expected ErrPartNotFound, got %v", err)
	}
}
