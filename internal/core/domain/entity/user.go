package entity

import (
	"strings"
	"time"

	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
)

// User is an account able to sign in and place orders. PasswordHash is an
// opaque string produced by the ports.PasswordHasher gateway; the entity never
// sees a plaintext password.
type User struct {
	ID           vo.ID     `json:"id"`
	Name         string    `json:"name"`
	Email        vo.Email  `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewUser(name string, email vo.Email, passwordHash string, now time.Time) (*User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.Validation("invalid_user", "user name is required")
	}
	if passwordHash == "" {
		return nil, fault.Validation("invalid_user", "password hash is required")
	}
	return &User{
		ID:           vo.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// AsCustomer copies the identifying fields into an order-time snapshot.
func (u *User) AsCustomer() Customer {
	return Customer{ID: u.ID, Name: u.Name, Email: u.Email}
}
