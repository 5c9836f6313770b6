package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/freshmart/pkg/auth"
	"github.com/example/freshmart/pkg/models"
	"github.com/example/freshmart/pkg/repository"
	"github.com/example/freshmart/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newService(t *testing.T) (*auth.Service, *repository.UserRepository) {
	t.Helper()
	users := repository.NewUserRepository(testutil.OpenDB(t))
	svc := auth.NewService(users,
		auth.PasswordHasher{Cost: bcrypt.MinCost},
		auth.NewTokenIssuer("secret", time.Hour),
		zap.NewNop())
	return svc, users
}

func TestService_RegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc, users := newService(t)

	session, err := svc.Register(ctx, "Jane", "jane@example.com", "pw")
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.Equal(t, "jane@example.com", session.User.Email)

	stored, err := users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", stored.Password)

	id, err := svc.Authenticate(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, id)

	login, err := svc.Login(ctx, "jane@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, session.User.ID, login.User.ID)

	_, err = svc.Login(ctx, "jane@example.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = svc.Login(ctx, "nobody@example.com", "pw")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc, users := newService(t)

	_, err := svc.Register(ctx, "Jane", "jane@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Impostor", "jane@example.com", "pw2")
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	u, err := users.FindByEmail(ctx, "jane@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Jane", u.Name)
}

func TestService_RegisterMissingFields(t *testing.T) {
	svc, _ := newService(t)
	for _, in := range [][3]string{
		{"", "a@example.com", "pw"},
		{"A", " ", "pw"},
		{"A", "a@example.com", ""},
	} {
		_, err := svc.Register(context.Background(), in[0], in[1], in[2])
		assert.ErrorIs(t, err, repository.ErrInvalidInput)
	}
}

func TestService_LoginRejectsLegacyPlaintextRow(t *testing.T) {
	ctx := context.Background()
	svc, users := newService(t)

	require.NoError(t, users.Create(ctx, &models.User{Email: "old@example.com", Name: "Old", Password: "pw"}))

	_, err := svc.Login(ctx, "old@example.com", "pw")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
