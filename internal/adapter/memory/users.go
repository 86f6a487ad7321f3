package memory

import (
	"context"
	"sync"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.UsersRepository = (*UsersRepository)(nil)

type UsersRepository struct {
	mu    sync.RWMutex
	users map[vo.ID]*entity.User
}

func NewUsersRepository() *UsersRepository {
	return &UsersRepository{users: make(map[vo.ID]*entity.User)}
}

func (r *UsersRepository) Save(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *UsersRepository) FindByID(_ context.Context, id vo.ID) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.users[id]
	if !ok {
		return nil, fault.NotFound("user_not_found", "user %s not found", id)
	}
	return user, nil
}

func (r *UsersRepository) FindByEmail(_ context.Context, email vo.Email) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, fault.NotFound("user_not_found", "no user with e-mail %s", email)
}
