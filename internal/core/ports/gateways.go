package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
)

// EventHandler reacts to one published event. A returned error is logged by
// the bus and never propagated to the publisher.
type EventHandler func(ctx context.Context, payload any) error

// EventManager is the in-process publish/subscribe contract. Delivery is
// at most once, best effort, fire and forget: Publish does not wait for
// handlers to finish. Clear removes every subscription (test isolation).
type EventManager interface {
	Publish(ctx context.Context, kind string, payload any)
	Subscribe(kind string, handler EventHandler)
	Clear()
}

// SendReceipt is the provider acknowledgement for a sent e-mail.
type SendReceipt struct {
	MessageID string `json:"message_id"`
	Status    string `json:"status"`
}

// EmailSender delivers templated e-mail through an external provider.
type EmailSender interface {
	Send(ctx context.Context, to, subject, template string, content map[string]any) (SendReceipt, error)
}

// BrokerGateway publishes a payload to an external topic (message broker).
type BrokerGateway interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// TrainingSample is one sold line item fed to the similarity model.
type TrainingSample struct {
	SellID    string          `json:"sell_id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// SimilarityGateway talks to the product recommendation model service.
type SimilarityGateway interface {
	Predict(ctx context.Context, productID vo.ID) ([]vo.ID, error)
	Train(ctx context.Context, samples []TrainingSample) error
}

// PasswordHasher hides the hashing scheme from the core.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// ProductCache is a read-through cache for showcase products. Get reports a
// miss with ok=false; Set failures are non-fatal and left to the caller to
// log.
type ProductCache interface {
	Get(ctx context.Context, id vo.ID) (*entity.ShowcaseProduct, bool)
	Set(ctx context.Context, product *entity.ShowcaseProduct) error
}
