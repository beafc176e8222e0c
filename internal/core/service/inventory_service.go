package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/voltworks/ev-service-api/internal/core/domain"
	"github.com/voltworks/ev-service-api/internal/core/ports"
)

// InventoryService manages parts and their stock counts.
type InventoryService struct {
	repo   ports.PartRepository
	logger zerolog.Logger
}

func NewInventoryService(repo ports.PartRepository, logger zerolog.Logger) *InventoryService {
	return &InventoryService{repo: repo, logger: logger}
}

func (s *InventoryService) CreatePart(ctx context.Context, input ports.CreatePartInput) (*domain.Part, error) {
	if input.InitialStock < 0 {
		return nil, domain.ErrInsufficientStock
	}

	now := time.Now().UTC()
	return s.repo.Create(ctx, &domain.Part{
		SKU:       strings.ToUpper(strings.TrimSpace(input.SKU)),
		Name:      input.Name,
		Category:  input.Category,
		UnitPrice: input.UnitPrice,
		Stock:     input.InitialStock,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (s *InventoryService) GetPart(ctx context.Context, sku string) (*domain.Part, error) {
	return s.repo.FindBySKU(ctx, strings.ToUpper(strings.TrimSpace(sku)))
}

func (s *InventoryService) ListParts(ctx context.Context, filter ports.ListPartsFilter) ([]*domain.Part, int64, error) {
	filter.Page, filter.Limit = clampPage(filter.Page, filter.Limit)
	return s.repo.List(ctx, filter)
}

func (s *InventoryService) AdjustStock(ctx context.Context, sku string, delta int) (*domain.Part, error) {
	part, err := s.repo.AdjustStock(ctx, strings.ToUpper(strings.TrimSpace(sku)), delta)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("sku", part.SKU).Int("delta", delta).Int("stock", part.Stock).Msg("stock adjusted")
	return part, nil
}

func (s *InventoryService) DeletePart(ctx context.Context, sku string) error {
	return s.repo.Delete(ctx, strings.ToUpper(strings.TrimSpace(sku)))
}
