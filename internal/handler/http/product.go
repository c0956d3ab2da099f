package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/service"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/httputil"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/pagination"
)

// ProductHandler handles HTTP requests for product endpoints.
type ProductHandler struct {
	service *service.ProductService
	logger  *slog.Logger
}

// NewProductHandler creates a new product HTTP handler.
func NewProductHandler(svc *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		service: svc,
		logger:  logger,
	}
}

// productResponse is the wire shape of a product. Prices are JSON numbers.
type productResponse struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

func toProductResponse(p domain.Product) productResponse {
	return productResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       p.Price.InexactFloat64(),
		Image:       p.Image,
	}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.FromRequest(r)
	page := h.service.ListProducts(r.Context(), params)

	data := make([]productResponse, len(page.Data))
	for i, p := range page.Data {
		data[i] = toProductResponse(p)
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: pagination.NewResult(data, page.TotalCount, params),
	})
}

// GetProduct handles GET /api/products/{ref} where ref is an ID or a slug.
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	ref := chi.URLParam(r, "ref")

	product, err := h.service.GetProduct(r.Context(), ref)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: toProductResponse(product)})
}
