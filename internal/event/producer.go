package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Design-Arena-Gens/agentic-a37cca32/internal/domain"
	pkgkafka "github.com/Design-Arena-Gens/agentic-a37cca32/pkg/kafka"
	"github.com/Design-Arena-Gens/agentic-a37cca32/pkg/logger"
)

// EventOrderPlaced is the event type of a confirmed checkout.
const EventOrderPlaced = "order.placed"

// AggregateTypeOrder is the aggregate type for order events.
const AggregateTypeOrder = "order"

// SourceStorefront identifies events emitted by the storefront server.
const SourceStorefront = "storefront"

// DefaultOrdersTopic is where order events go unless configured otherwise.
var DefaultOrdersTopic = pkgkafka.Topic("order", "placed")

// Publisher sends an event to a Kafka topic. *pkgkafka.Producer satisfies it.
type Publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// OrderPlacedData is the payload of an order.placed event. The total is the
// one the shopper submitted.
type OrderPlacedData struct {
	OrderID       string    `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	ItemCount     int       `json:"item_count"`
	Total         float64   `json:"total"`
	PlacedAt      time.Time `json:"placed_at"`
}

// Producer publishes storefront domain events.
type Producer struct {
	kafka  Publisher
	topic  string
	logger *slog.Logger
}

// NewProducer creates a producer that writes order events to topic.
func NewProducer(kafka Publisher, topic string, logger *slog.Logger) *Producer {
	if topic == "" {
		topic = DefaultOrdersTopic
	}
	return &Producer{
		kafka:  kafka,
		topic:  topic,
		logger: logger,
	}
}

// PublishOrderPlaced publishes an order.placed event for a confirmed checkout.
func (p *Producer) PublishOrderPlaced(ctx context.Context, orderID string, req domain.CheckoutRequest) error {
	data := OrderPlacedData{
		OrderID:       orderID,
		CustomerName:  req.Name,
		CustomerEmail: req.Email,
		ItemCount:     req.ItemCount(),
		Total:         req.Total,
		PlacedAt:      time.Now().UTC(),
	}

	event, err := pkgkafka.NewEvent(EventOrderPlaced, orderID, AggregateTypeOrder, SourceStorefront, data)
	if err != nil {
		return fmt.Errorf("create order.placed event: %w", err)
	}
	if id := logger.CorrelationIDFromContext(ctx); id != "" {
		event.WithCorrelationID(id)
	}

	if err := p.kafka.Publish(ctx, p.topic, event); err != nil {
		return fmt.Errorf("publish order.placed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published order.placed event",
		slog.String("order_id", orderID),
		slog.String("topic", p.topic),
	)

	return nil
}
