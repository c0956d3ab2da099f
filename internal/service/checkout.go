package service

import (
	"context"
	"encoding/binary"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/logger"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/tracing"
)

const tracerName = "github.com/Design-Arena-Gens/agentic-a37cca32/internal/service"

// CheckoutDelay is how long every accepted checkout is held before the
// confirmation is returned.
const CheckoutDelay = 600 * time.Millisecond

// OrderEventTimeout bounds publishing one order.placed event.
const OrderEventTimeout = 5 * time.Second

// OrderIDLength is the number of characters in an order ID.
const OrderIDLength = 8

// orderIDSpace is 36^8, the number of distinct order IDs.
const orderIDSpace = 2821109907456

// OrderEventPublisher announces placed orders.
type OrderEventPublisher interface {
	PublishOrderPlaced(ctx context.Context, orderID string, req domain.CheckoutRequest) error
}

// CheckoutService confirms validated checkout requests. It holds no
// per-request state and never fails once the input is valid.
type CheckoutService struct {
	events  OrderEventPublisher
	logger  *slog.Logger
	sleep   func(time.Duration)
	orderID func() string

	// publishing tracks order events still in flight.
	publishing sync.WaitGroup
}

// CheckoutOption configures a CheckoutService.
type CheckoutOption func(*CheckoutService)

// WithSleeper replaces time.Sleep for the checkout delay.
func WithSleeper(fn func(time.Duration)) CheckoutOption {
	return func(s *CheckoutService) { s.sleep = fn }
}

// WithOrderIDGenerator replaces NewOrderID.
func WithOrderIDGenerator(fn func() string) CheckoutOption {
	return func(s *CheckoutService) { s.orderID = fn }
}

// NewCheckoutService creates a checkout service. events may be nil, in which
// case no order events are published.
func NewCheckoutService(events OrderEventPublisher, logger *slog.Logger, opts ...CheckoutOption) *CheckoutService {
	s := &CheckoutService{
		events:  events,
		logger:  logger,
		sleep:   time.Sleep,
		orderID: NewOrderID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceOrder waits CheckoutDelay and confirms the order. The wait is not
// cut short when ctx is cancelled. The submitted total is reported as sent.
// The order.placed event is published in the background; see Wait.
func (s *CheckoutService) PlaceOrder(ctx context.Context, req domain.CheckoutRequest) domain.CheckoutResult {
	ctx, span := tracing.StartSpan(ctx, tracerName, "checkout.place_order",
		attribute.Int("checkout.item_count", req.ItemCount()),
		attribute.Float64("checkout.total", req.Total),
	)
	defer span.End()

	s.sleep(CheckoutDelay)

	orderID := s.orderID()
	ctx = logger.WithOrderID(ctx, orderID)
	span.SetAttributes(attribute.String("order.id", orderID))

	if s.events != nil {
		s.publishing.Add(1)
		go s.publishOrderPlaced(context.WithoutCancel(ctx), orderID, req)
	}

	checkoutRequestsTotal.WithLabelValues(OutcomePlaced).Inc()
	logger.WithContext(ctx, s.logger).InfoContext(ctx, "order placed",
		slog.Int("item_count", req.ItemCount()),
		slog.Float64("total", req.Total),
	)

	return domain.CheckoutResult{
		Success: true,
		Message: domain.OrderPlacedMessage(req.Name, req.ItemCount(), req.Total),
		OrderID: orderID,
	}
}

// publishOrderPlaced sends the order.placed event off the request path,
// bounded by OrderEventTimeout. Failures are logged and counted only.
func (s *CheckoutService) publishOrderPlaced(ctx context.Context, orderID string, req domain.CheckoutRequest) {
	defer s.publishing.Done()

	ctx, cancel := context.WithTimeout(ctx, OrderEventTimeout)
	defer cancel()

	ctx, span := tracing.StartSpan(ctx, tracerName, "checkout.publish_order_placed")
	defer span.End()

	if err := s.events.PublishOrderPlaced(ctx, orderID, req); err != nil {
		orderEventFailuresTotal.Inc()
		tracing.RecordError(span, err)
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "failed to publish order.placed event",
			slog.String("error", err.Error()),
		)
	}
}

// Wait blocks until every order event started by PlaceOrder has been
// published or has failed.
func (s *CheckoutService) Wait() {
	s.publishing.Wait()
}

// RecordRejected counts a checkout request that never reached PlaceOrder.
func (s *CheckoutService) RecordRejected(outcome string) {
	checkoutRequestsTotal.WithLabelValues(outcome).Inc()
}

// NewOrderID returns OrderIDLength lowercase alphanumeric characters drawn
// from a random UUID. IDs are not guaranteed to be unique.
func NewOrderID() string {
	u := uuid.New()
	// Mask off the two RFC 4122 variant bits; the remaining 62 are random.
	n := binary.BigEndian.Uint64(u[8:]) & (1<<62 - 1)
	id := strconv.FormatUint(n%orderIDSpace, 36)
	return strings.Repeat("0", OrderIDLength-len(id)) + id
}
