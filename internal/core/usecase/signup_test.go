package usecase_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/storefront/internal/adapter/memory"
	"github.com/jcmexdev/storefront/internal/bus"
	"github.com/jcmexdev/storefront/internal/core/domain/event"
	"github.com/jcmexdev/storefront/internal/core/fault"
	"github.com/jcmexdev/storefront/internal/core/usecase"
)

// fakeHasher keeps passwords recognizable so tests can assert on the hash.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return errors.New("hash mismatch")
	}
	return nil
}

func newSignUp(t *testing.T) (*usecase.SignUp, *usecase.SignIn, *bus.Manager) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := memory.NewUsersRepository()
	events := bus.NewManager(log)
	return usecase.NewSignUp(users, fakeHasher{}, events, log),
		usecase.NewSignIn(users, fakeHasher{}, log),
		events
}

func TestSignUp_Execute(t *testing.T) {
	signup, _, events := newSignUp(t)

	published := make(chan event.UserSignedUp, 1)
	events.Subscribe(event.KindUserSignedUp, func(_ context.Context, payload any) error {
		published <- payload.(event.UserSignedUp)
		return nil
	})

	user, err := signup.Execute(context.Background(), usecase.SignUpInput{
		Name:     "Ana",
		Email:    "Ana@Example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", user.Email.String())
	assert.Equal(t, "hashed:correct-horse", user.PasswordHash)

	select {
	case evt := <-published:
		assert.Equal(t, user.ID, evt.User.ID)
	case <-time.After(time.Second):
		t.Fatal("user.signed_up was not published")
	}
}

func TestSignUp_Execute_RejectsShortPassword(t *testing.T) {
	signup, _, _ := newSignUp(t)

	_, err := signup.Execute(context.Background(), usecase.SignUpInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "short",
	})
	require.Error(t, err)
	assert.Equal(t, fault.KindValidation, fault.KindOf(err))
}

func TestSignUp_Execute_DuplicateEmailConflicts(t *testing.T) {
	signup, _, _ := newSignUp(t)

	in := usecase.SignUpInput{Name: "Ana", Email: "ana@example.com", Password: "correct-horse"}
	_, err := signup.Execute(context.Background(), in)
	require.NoError(t, err)

	in.Name = "Other Ana"
	_, err = signup.Execute(context.Background(), in)
	require.Error(t, err)
	assert.Equal(t, fault.KindConflict, fault.KindOf(err))
	assert.ErrorContains(t, err, "ana@example.com")
}

func TestSignIn_Execute(t *testing.T) {
	signup, signin, _ := newSignUp(t)

	user, err := signup.Execute(context.Background(), usecase.SignUpInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	session, err := signin.Execute(context.Background(), "ana@example.com", "correct-horse")
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), session.UserID)
	assert.NotEmpty(t, session.Token)
}

// Wrong password, unknown account and malformed e-mail must be
// indistinguishable to the caller.
func TestSignIn_Execute_UniformDenial(t *testing.T) {
	signup, signin, _ := newSignUp(t)

	_, err := signup.Execute(context.Background(), usecase.SignUpInput{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	tests := []struct {
		name, email, password string
	}{
		{"wrong password", "ana@example.com", "wrong-horse"},
		{"unknown account", "nobody@example.com", "correct-horse"},
		{"malformed email", "not-an-email", "correct-horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := signin.Execute(context.Background(), tt.email, tt.password)
			require.Error(t, err)
			assert.Equal(t, fault.KindForbidden, fault.KindOf(err))
			assert.ErrorContains(t, err, "e-mail or password is incorrect")
		})
	}
}
