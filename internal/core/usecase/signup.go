package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/jcmexdev/storefront/internal/core/domain/entity"
	"github.com/jcmexdev/storefront/internal/core/domain/event"
	"github.com/jcmexdev/storefront/internal/core/domain/vo"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/ports"
)

// SignUpInput registers a new account.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
}

// SignUp creates an account with a hashed password and announces it on the
// bus so the welcome mail goes out without coupling.
type SignUp struct {
	users  ports.UsersRepository
	hasher ports.PasswordHasher
	events ports.EventManager
	log    *slog.Logger
	now    func() time.Time
}

func NewSignUp(users ports.UsersRepository, hasher ports.PasswordHasher, events ports.EventManager, log *slog.Logger) *SignUp {
	return &SignUp{users: users, hasher: hasher, events: events, log: log, now: time.Now}
}

func (uc *SignUp) Execute(ctx context.Context, in SignUpInput) (*entity.User, error) {
	email, err := vo.NewEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < 8 {
		return nil, fault.Validation("invalid_password", "password must be at least 8 characters")
	}

	if _, err := uc.users.FindByEmail(ctx, email); err == nil {
		return nil, fault.Conflict("email_taken", "an account with e-mail %s already exists", email)
	} else if !fault.IsKind(err, fault.KindNotFound) {
		return nil, err
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user, err := entity.NewUser(in.Name, email, hash, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.users.Save(ctx, user); err != nil {
		uc.log.ErrorContext(ctx, "signup failed to persist user", "email", email.String(), "error", err)
		return nil, err
	}

	uc.events.Publish(ctx, event.KindUserSignedUp, event.UserSignedUp{
		User:       user,
		OccurredAt: uc.now().UTC(),
	})

	uc.log.InfoContext(ctx, "user signed up", "user_id", user.ID.String())
	return user, nil
}

// Session is the result of a successful sign-in. Token is an opaque handle;
// token verification machinery lives outside this core.
type Session struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
}

// SignIn checks credentials. Both "unknown e-mail" and "wrong password" map
// to the same forbidden fault so the response does not leak which one failed.
type SignIn struct {
	users  ports.UsersRepository
	hasher ports.PasswordHasher
	log    *slog.Logger
}

func NewSignIn(users ports.UsersRepository, hasher ports.PasswordHasher, log *slog.Logger) *SignIn {
	return &SignIn{users: users, hasher: hasher, log: log}
}

func (uc *SignIn) Execute(ctx context.Context, rawEmail, password string) (Session, error) {
	denied := fault.Forbidden("invalid_credentials", "e-mail or password is incorrect")

	email, err := vo.NewEmail(rawEmail)
	if err != nil {
		return Session{}, denied
	}
	user, err := uc.users.FindByEmail(ctx, email)
	if err != nil {
		if fault.IsKind(err, fault.KindNotFound) {
			return Session{}, denied
		}
		return Session{}, err
	}
	if err := uc.hasher.Compare(user.PasswordHash, password); err != nil {
		uc.log.WarnContext(ctx, "sign-in rejected", "user_id", user.ID.String())
		return Session{}, denied
	}

	return Session{Token: vo.NewID().String(), UserID: user.ID.String()}, nil
}
