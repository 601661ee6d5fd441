package auth

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	apperrors "github.com/linjia/ai-closet/pkg/errors"
)

func TestRegisterLoginVerifyRoundtrip(t *testing.T) {
	svc := newTestAuth(newFakeRepo())

	session, err := svc.Register(context.Background(), Credentials{Email: "Ada@Example.com", Password: "correct horse"})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token)
	require.Equal(t, "ada@example.com", session.User.Email)
	require.NotEmpty(t, session.User.PasswordHash)

	login, err := svc.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	user, err := svc.Verify(context.Background(), login.Token)
	require.NoError(t, err)
	require.Equal(t, session.User.ID, user.ID)
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestAuth(newFakeRepo())

	_, err := svc.Register(context.Background(), Credentials{Email: "not-an-email", Password: "longenough"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Register(context.Background(), Credentials{Email: "a@b.co", Password: "short"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc := newTestAuth(newFakeRepo())

	_, err := svc.Register(context.Background(), Credentials{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), Credentials{Email: "ADA@example.com", Password: "another pass"})
	require.True(t, apperrors.IsCode(err, "conflict"))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuth(newFakeRepo())

	_, err := svc.Register(context.Background(), Credentials{Email: "ada@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), Credentials{Email: "ada@example.com", Password: "wrong horse"})
	require.True(t, apperrors.IsCode(err, "unauthorized"))

	_, err = svc.Login(context.Background(), Credentials{Email: "nobody@example.com", Password: "whatever"})
	require.True(t, apperrors.IsCode(err, "unauthorized"))
}

func TestVerifyRejectsGarbageAndExpiredTokens(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestAuth(repo)

	_, err := svc.Verify(context.Background(), "not.a.token")
	require.True(t, apperrors.IsCode(err, "unauthorized"))

	// issue a token that is already expired
	expired := newTestAuth(repo)
	expired.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	session, err := expired.Register(context.Background(), Credentials{Email: "old@example.com", Password: "correct horse"})
	require.NoError(t, err)

	_, err = svc.Verify(context.Background(), session.Token)
	require.True(t, apperrors.IsCode(err, "unauthorized"))
}

func newTestAuth(repo Repository) *service {
	return &service{
		cfg:    Config{Enabled: true, Secret: "test-secret", TokenTTL: 24 * time.Hour},
		repo:   repo,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
		newID:  uuid.New,
	}
}

type fakeRepo struct {
	users   map[uuid.UUID]User
	byEmail map[string]uuid.UUID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uuid.UUID]User), byEmail: make(map[string]uuid.UUID)}
}

func (r *fakeRepo) Insert(_ context.Context, user User) error {
	r.users[user.ID] = user
	r.byEmail[strings.ToLower(user.Email)] = user.ID
	return nil
}

func (r *fakeRepo) FindByEmail(_ context.Context, email string) (User, bool, error) {
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, false, nil
	}
	return r.users[id], true, nil
}

func (r *fakeRepo) FindByID(_ context.Context, id uuid.UUID) (User, bool, error) {
	user, ok := r.users[id]
	return user, ok, nil
}
