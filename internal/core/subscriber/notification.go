// Package subscriber holds the event reactions that run after a use case
// publishes a domain event. Every subscriber registers itself on the bus at
// construction time and swallows its own errors after logging them, so one
// failing side effect never reaches the publisher or a sibling.
package subscriber

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jcmexdev/storefront/internal/core/domain/event"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

// OrderEmailNotifier mails the customer an order confirmation.
type OrderEmailNotifier struct {
	sender ports.EmailSender
	log    *slog.Logger
}

func NewOrderEmailNotifier(events ports.EventManager, sender ports.EmailSender, log *slog.Logger) *OrderEmailNotifier {
	n := &OrderEmailNotifier{sender: sender, log: log}
	events.Subscribe(event.KindOrderCreated, n.handle)
	return n
}

func (n *OrderEmailNotifier) handle(ctx context.Context, payload any) error {
	evt, ok := payload.(event.OrderCreated)
	if !ok {
		n.log.ErrorContext(ctx, "order e-mail notifier got unexpected payload", "payload", fmt.Sprintf("%T", payload))
		return nil
	}

	order := evt.Order
	receipt, err := n.sender.Send(ctx,
		order.Customer().Email.String(),
		"We received your order",
		"order-created",
		map[string]any{
			"customer_name": order.Customer().Name,
			"order_id":      order.ID().String(),
			"total":         order.Total().String(),
			"item_count":    len(order.Items()),
		},
	)
	if err != nil {
		n.log.ErrorContext(ctx, "order confirmation e-mail failed", "order_id", order.ID().String(), "error", err)
		return nil
	}

	n.log.InfoContext(ctx, "order confirmation e-mail sent",
		"order_id", order.ID().String(),
		"message_id", receipt.MessageID,
		"status", receipt.Status,
	)
	return nil
}

// WelcomeEmailNotifier mails a greeting to freshly signed-up users.
type WelcomeEmailNotifier struct {
	sender ports.EmailSender
	log    *slog.Logger
}

func NewWelcomeEmailNotifier(events ports.EventManager, sender ports.EmailSender, log *slog.Logger) *WelcomeEmailNotifier {
	n := &WelcomeEmailNotifier{sender: sender, log: log}
	events.Subscribe(event.KindUserSignedUp, n.handle)
	return n
}

func (n *WelcomeEmailNotifier) handle(ctx context.Context, payload any) error {
	evt, ok := payload.(event.UserSignedUp)
	if !ok {
		n.log.ErrorContext(ctx, "welcome notifier got unexpected payload", "payload", fmt.Sprintf("%T", payload))
		return nil
	}

	if _, err := n.sender.Send(ctx,
		evt.User.Email.String(),
		"Welcome to the store",
		"welcome",
		map[string]any{"name": evt.User.Name},
	); err != nil {
		n.log.ErrorContext(ctx, "welcome e-mail failed", "user_id", evt.User.ID.String(), "error", err)
	}
	return nil
}
