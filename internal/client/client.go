// Package client talks to the storefront HTTP API on behalf of the shop.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
	apperrors "github.com/Design-Arena-Gens/agentic-a37cca32/pkg/errors"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/httpclient"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/logger"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/middleware"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/pagination"
)

const serviceName = "storefront"

// maxResultBody caps how much of a checkout response is read.
const maxResultBody = 64 << 10

// HTTPDoer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy it.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// CircuitOpenFallback turns an open breaker into a ServiceUnavailable error.
func CircuitOpenFallback(_ context.Context, _ error) (*http.Response, error) {
	return nil, apperrors.ServiceUnavailable("storefront is temporarily unavailable")
}

// Client calls the storefront catalog and checkout endpoints.
type Client struct {
	baseURL string
	http    HTTPDoer
	logger  *slog.Logger
}

// New builds a client that sends every request once, with the given
// timeout, behind a circuit breaker.
func New(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	base := httpclient.New(httpclient.DefaultConfig(timeout))
	cb := httpclient.NewCircuitBreakerClient(base, httpclient.DefaultCircuitBreakerConfig(serviceName), logger).
		WithFallback(CircuitOpenFallback)
	return NewWithDoer(baseURL, cb, logger)
}

// NewWithDoer builds a client on top of an existing HTTPDoer.
func NewWithDoer(baseURL string, doer HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    doer,
		logger:  logger,
	}
}

// productDTO is the wire shape of a product.
type productDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

func (p productDTO) toDomain() domain.Product {
	return domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		Price:       decimal.NewFromFloat(p.Price),
		Image:       p.Image,
	}
}

type productPage struct {
	Data pagination.Result[productDTO] `json:"data"`
}

type productEnvelope struct {
	Data productDTO `json:"data"`
}

// Products fetches the whole catalog, following pagination.
func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("per_page", strconv.Itoa(pagination.MaxPerPage))

		var body productPage
		if err := c.getJSON(ctx, "/api/products?"+q.Encode(), &body); err != nil {
			return nil, fmt.Errorf("list products: %w", err)
		}

		for _, p := range body.Data.Data {
			products = append(products, p.toDomain())
		}
		if !body.Data.HasNext {
			break
		}
	}

	return products, nil
}

// Product fetches one product by ID or slug.
func (c *Client) Product(ctx context.Context, ref string) (domain.Product, error) {
	var body productEnvelope
	if err := c.getJSON(ctx, "/api/products/"+url.PathEscape(ref), &body); err != nil {
		return domain.Product{}, fmt.Errorf("get product %s: %w", ref, err)
	}
	return body.Data.toDomain(), nil
}

func (c *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	setCorrelationID(ctx, req)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("call %s: %w", serviceName, err)
	}
	if resp.StatusCode != http.StatusOK {
		return httpclient.ParseResponseError(resp, serviceName)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// checkoutItem mirrors a cart line on the wire: the product fields plus the
// quantity.
type checkoutItem struct {
	productDTO
	Quantity int `json:"quantity"`
}

type checkoutRequest struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Address string         `json:"address"`
	Items   []checkoutItem `json:"items"`
	Total   float64        `json:"total"`
}

// Checkout posts sub to the checkout endpoint. Any JSON answer, including a
// 400 or 405, is returned as a result; only transport and decoding failures
// are errors.
func (c *Client) Checkout(ctx context.Context, sub domain.CheckoutSubmission) (domain.CheckoutResult, error) {
	payload := checkoutRequest{
		Name:    sub.Contact.Name,
		Email:   sub.Contact.Email,
		Address: sub.Contact.Address,
		Items:   make([]checkoutItem, 0, len(sub.Lines)),
		Total:   sub.Total.InexactFloat64(),
	}
	for _, l := range sub.Lines {
		payload.Items = append(payload.Items, checkoutItem{
			productDTO: productDTO{
				ID:          l.Product.ID,
				Name:        l.Product.Name,
				Slug:        l.Product.Slug,
				Description: l.Product.Description,
				Price:       l.Product.Price.InexactFloat64(),
				Image:       l.Product.Image,
			},
			Quantity: l.Quantity,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("marshal checkout request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/checkout", bytes.NewReader(body))
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("create checkout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setCorrelationID(ctx, req)

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("call checkout: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result domain.CheckoutResult
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResultBody)).Decode(&result); err != nil {
		return domain.CheckoutResult{}, fmt.Errorf("decode checkout response (status %d): %w", resp.StatusCode, err)
	}

	c.logger.DebugContext(ctx, "checkout answered",
		slog.Int("status", resp.StatusCode),
		slog.Bool("success", result.Success),
		slog.String("order_id", result.OrderID),
	)

	return result, nil
}

func setCorrelationID(ctx context.Context, req *http.Request) {
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.CorrelationIDHeader, id)
	}
}
