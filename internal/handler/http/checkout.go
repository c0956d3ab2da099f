package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/service"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/httputil"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/validator"
)

// CheckoutHandler handles the checkout endpoint.
type CheckoutHandler struct {
	service *service.CheckoutService
	logger  *slog.Logger
}

// NewCheckoutHandler creates a new checkout HTTP handler.
func NewCheckoutHandler(svc *service.CheckoutService, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		service: svc,
		logger:  logger,
	}
}

// --- Request DTOs ---

// CheckoutRequest is the JSON request body for a checkout. Item entries are
// counted but their shape is not checked.
type CheckoutRequest struct {
	Name    string            `json:"name" validate:"required"`
	Email   string            `json:"email" validate:"required"`
	Address string            `json:"address" validate:"required"`
	Items   []json.RawMessage `json:"items" validate:"required"`
	Total   *float64          `json:"total" validate:"required,finite"`
}

func (r CheckoutRequest) toDomain() domain.CheckoutRequest {
	return domain.CheckoutRequest{
		Contact: domain.Contact{
			Name:    r.Name,
			Email:   r.Email,
			Address: r.Address,
		},
		Items: r.Items,
		Total: *r.Total,
	}
}

// --- Handlers ---

// Checkout handles /api/checkout. Only POST is accepted.
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.service.RecordRejected(service.OutcomeMethodNotAllowed)
		httputil.SetAllow(w, http.MethodPost)
		httputil.WriteJSON(w, http.StatusMethodNotAllowed, domain.FailedResult(domain.MessageMethodNotAllowed))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, validator.MaxBodyBytes)

	var req CheckoutRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		h.service.RecordRejected(service.OutcomeInvalidRequest)
		h.logger.DebugContext(r.Context(), "rejected checkout request", slog.String("error", err.Error()))
		httputil.WriteJSON(w, http.StatusBadRequest, domain.FailedResult(domain.MessageInvalidRequest))
		return
	}

	result := h.service.PlaceOrder(r.Context(), req.toDomain())
	httputil.WriteJSON(w, http.StatusOK, result)
}
