package subscriber

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jcmexdev/storefront/internal/core/domain/event"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

// orderMessage is the wire shape published to the external topic. It is a
// flat JSON snapshot so consumers never depend on domain types.
type orderMessage struct {
	OrderID    string             `json:"order_id"`
	CustomerID string             `json:"customer_id"`
	Total      string             `json:"total"`
	Items      []orderMessageItem `json:"items"`
	CreatedAt  time.Time          `json:"created_at"`
}

type orderMessageItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// OrderBrokerPublisher forwards created orders to an external topic so other
// systems (ERP, analytics) can react outside this process.
type OrderBrokerPublisher struct {
	broker ports.BrokerGateway
	topic  string
	log    *slog.Logger
}

func NewOrderBrokerPublisher(events ports.EventManager, broker ports.BrokerGateway, topic string, log *slog.Logger) *OrderBrokerPublisher {
	p := &OrderBrokerPublisher{broker: broker, topic: topic, log: log}
	events.Subscribe(event.KindOrderCreated, p.handle)
	return p
}

func (p *OrderBrokerPublisher) handle(ctx context.Context, payload any) error {
	evt, ok := payload.(event.OrderCreated)
	if !ok {
		p.log.ErrorContext(ctx, "broker publisher got unexpected payload", "payload", fmt.Sprintf("%T", payload))
		return nil
	}

	order := evt.Order
	msg := orderMessage{
		OrderID:    order.ID().String(),
		CustomerID: order.Customer().ID.String(),
		Total:      order.Total().String(),
		CreatedAt:  order.CreatedAt(),
	}
	for _, item := range order.Items() {
		msg.Items = append(msg.Items, orderMessageItem{
			ProductID: item.Product.ID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.Price.String(),
		})
	}

	if err := p.broker.Publish(ctx, p.topic, msg); err != nil {
		p.log.ErrorContext(ctx, "order broker publish failed", "order_id", msg.OrderID, "topic", p.topic, "error", err)
		return nil
	}
	p.log.InfoContext(ctx, "order published to topic", "order_id", msg.OrderID, "topic", p.topic)
	return nil
}

// SimilarityFeeder streams sold line items into the recommendation model so
// future Predict calls learn from real sales.
type SimilarityFeeder struct {
	similarity ports.SimilarityGateway
	log        *slog.Logger
}

func NewSimilarityFeeder(events ports.EventManager, similarity ports.SimilarityGateway, log *slog.Logger) *SimilarityFeeder {
	f := &SimilarityFeeder{similarity: similarity, log: log}
	events.Subscribe(event.KindOrderCreated, f.handle)
	return f
}

func (f *SimilarityFeeder) handle(ctx context.Context, payload any) error {
	evt, ok := payload.(event.OrderCreated)
	if !ok {
		f.log.ErrorContext(ctx, "similarity feeder got unexpected payload", "payload", fmt.Sprintf("%T", payload))
		return nil
	}

	order := evt.Order
	samples := make([]ports.TrainingSample, 0, len(order.Items()))
	for _, item := range order.Items() {
		samples = append(samples, ports.TrainingSample{
			SellID:    order.ID().String(),
			ProductID: item.Product.ID.String(),
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
		})
	}

	if err := f.similarity.Train(ctx, samples); err != nil {
		f.log.ErrorContext(ctx, "similarity training feed failed", "order_id", order.ID().String(), "error", err)
	}
	return nil
}
