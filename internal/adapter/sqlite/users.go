package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

var _ ports.UsersRepository = (*UsersRepository)(nil)

type UsersRepository struct {
	db *DB
}

func NewUsersRepository(db *DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) Save(ctx context.Context, user *entity.User) error {
	_, err := r.db.conn.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			password_hash = excluded.password_hash,
			updated_at = excluded.updated_at`,
		user.ID.String(),
		user.Name,
		user.Email.String(),
		user.PasswordHash,
		formatTime(user.CreatedAt),
		formatTime(user.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: save user %s: %w", user.ID, err)
	}
	return nil
}

func (r *UsersRepository) FindByID(ctx context.Context, id vo.ID) (*entity.User, error) {
	row := r.db.conn.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE id = ?`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.NotFound("user_not_found", "user %s not found", id)
	}
	return user, err
}

func (r *UsersRepository) FindByEmail(ctx context.Context, email vo.Email) (*entity.User, error) {
	row := r.db.conn.QueryRowContext(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE email = ?`, email.String())

	user, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fault.NotFound("user_not_found", "no user with e-mail %s", email)
	}
	return user, err
}

func scanUser(row rowScanner) (*entity.User, error) {
	var (
		rawID, name, email, passwordHash string
		createdAt, updatedAt             string
	)
	if err := row.Scan(&rawID, &name, &email, &passwordHash, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("sqlite: scan user: %w", err)
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:           vo.ID(rawID),
		Name:         name,
		Email:        vo.Email(email),
		PasswordHash: passwordHash,
		CreatedAt:    created,
		UpdatedAt:    updated,
	}, nil
}
