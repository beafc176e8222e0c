package ports

import (
	"context"

	"github.com/voltworks/ev-service-api/internal/core/domain"
)

// ListPartsFilter carries query parameters for the parts inventory.
type ListPartsFilter struct {
	Category string
	Search   string // partial match on SKU or name
	Page     int
	Limit    int
}

// PartRepository defines persistence operations for parts.
type PartRepository interface {
	Create(ctx context.Context, p *domain.Part) (*domain.Part, error)
	FindBySKU(ctx context.Context, sku string) (*domain.Part, error)
	List(ctx context.Context, filter ListPartsFilter) ([]*domain.Part, int64, error)
	// AdjustStock atomically applies delta to the stock count. The update
	// must fail with domain.ErrInsufficientStock rather than drive the
	// count negative.
	AdjustStock(ctx context.Context, sku string, delta int) (*domain.Part, error)
	Delete(ctx context.Context, sku string) error
}

// CreatePartInput carries the data for a new inventory part.
type CreatePartInput struct {
	SKU          string
	Name         string
	Category     string
	UnitPrice    float64
	InitialStock int
}

// InventoryService defines use-case operations over parts and stock.
type InventoryService interface {
	CreatePart(ctx context.Context, input CreatePartInput) (*domain.Part, error)
	GetPart(ctx context.Context, sku string) (*domain.Part, error)
	ListParts(ctx context.Context, filter ListPartsFilter) ([]*domain.Part, int64, error)
	AdjustStock(ctx context.Context, sku string, delta int) (*domain.Part, error)
	DeletePart(ctx context.Context, sku string) error
}
