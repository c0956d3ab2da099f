package service

import (
	"context"
	"log/slog"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
	apperrors "github.com/Design-Arena-Gens/agentic-a37cca32/pkg/errors"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/pagination"
)

// ProductCatalog is the read side of the product list.
type ProductCatalog interface {
	All() []domain.Product
	Lookup(ref string) (domain.Product, bool)
	Len() int
}

// ProductService serves the catalog endpoints.
type ProductService struct {
	catalog ProductCatalog
	logger  *slog.Logger
}

// NewProductService creates a product service over catalog.
func NewProductService(catalog ProductCatalog, logger *slog.Logger) *ProductService {
	return &ProductService{
		catalog: catalog,
		logger:  logger,
	}
}

// ListProducts returns one page of the catalog in catalog order.
func (s *ProductService) ListProducts(_ context.Context, params pagination.Params) pagination.Result[domain.Product] {
	return pagination.Slice(s.catalog.All(), params)
}

// GetProduct resolves ref as a product ID or slug.
func (s *ProductService) GetProduct(ctx context.Context, ref string) (domain.Product, error) {
	p, ok := s.catalog.Lookup(ref)
	if !ok {
		s.logger.DebugContext(ctx, "product not found", slog.String("ref", ref))
		return domain.Product{}, apperrors.NotFound("product", ref)
	}
	return p, nil
}

// Ready reports whether there is anything to sell.
func (s *ProductService) Ready(_ context.Context) error {
	if s.catalog.Len() == 0 {
		return apperrors.ServiceUnavailable("catalog is empty")
	}
	return nil
}
