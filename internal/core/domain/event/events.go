// Package event defines the domain events published on the in-process bus.
// Kinds are plain strings so subscribers and the bus stay decoupled from the
// payload types.
package event

import (
	"time"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
)

const (
	KindOrderCreated = "order.created"
	KindUserSignedUp = "user.signed_up"
)

// OrderCreated carries the full order so subscribers never need a repository
// round trip.
type OrderCreated struct {
	Order      *entity.Order
	OccurredAt time.Time
}

// UserSignedUp announces a new account for the welcome-mail subscriber.
type UserSignedUp struct {
	User       *entity.User
	OccurredAt time.Time
}
