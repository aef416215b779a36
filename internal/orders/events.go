package orders

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"storefront/internal/domain/order"
	"storefront/internal/kafka"
	"storefront/internal/pricing"
)

const (
	EventOrderCreated = "OrderCreated"
	TopicOrderCreated = "order.created"
)

type Envelope struct {
	EventID      string          `json:"event_id"`
	EventType    string          `json:"event_type"`
	EventVersion int             `json:"event_version"`
	OccurredAt   time.Time       `json:"occurred_at"`
	Producer     string          `json:"producer"`
	Payload      json.RawMessage `json:"payload"`
}

type OrderCreatedPayload struct {
	OrderID     int64       `json:"order_id"`
	Reference   string      `json:"reference"`
	UserID      int64       `json:"user_id"`
	Items       []EventItem `json:"items"`
	TotalAmount string      `json:"total_amount"`
}

type EventItem struct {
	ProductID int64  `json:"product_id"`
	VariantID *int64 `json:"variant_id,omitempty"`
	FlavorID  *int64 `json:"flavor_id,omitempty"`
	Qty       int    `json:"qty"`
	UnitPrice string `json:"unit_price"`
}

// Publisher emits order lifecycle events. A nil Publisher is a no-op so the
// service runs without a broker configured.
type Publisher struct {
	producer *kafka.Producer
	name     string
	log      *zap.Logger
}

func NewPublisher(producer *kafka.Producer, serviceName string, log *zap.Logger) *Publisher {
	return &Publisher{producer: producer, name: serviceName, log: log}
}

// OrderCreated publishes the confirmed order, keyed by its reference so all
// events of one order stay ordered within a partition.
func (p *Publisher) OrderCreated(ctx context.Context, o order.Order) {
	if p == nil || p.producer == nil {
		return
	}

	items := make([]EventItem, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, EventItem{
			ProductID: it.ProductID,
			VariantID: it.VariantID,
			FlavorID:  it.FlavorID,
			Qty:       it.Quantity,
			UnitPrice: pricing.Display(it.UnitPrice),
		})
	}
	payload, err := json.Marshal(OrderCreatedPayload{
		OrderID:     o.ID,
		Reference:   o.Reference,
		UserID:      o.UserID,
		Items:       items,
		TotalAmount: pricing.Display(o.TotalAmount),
	})
	if err != nil {
		p.log.Error("orders: marshal event payload", zap.Error(err))
		return
	}
	env, err := json.Marshal(Envelope{
		EventID:      uuid.NewString(),
		EventType:    EventOrderCreated,
		EventVersion: 1,
		OccurredAt:   o.CreatedAt,
		Producer:     p.name,
		Payload:      payload,
	})
	if err != nil {
		p.log.Error("orders: marshal event envelope", zap.Error(err))
		return
	}
	p.producer.Publish(ctx, []byte(o.Reference), env)
}
