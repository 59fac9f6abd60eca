package auth

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/muniworks/overtime/internal/shared"
)

type memoryClientRepo struct {
	clients map[int64]*Client
}

func (r *memoryClientRepo) FindByID(ctx context.Context, id int64) (*Client, error) {
	c, ok := r.clients[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func hash(t *testing.T, secret string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthenticateResolvesScope(t *testing.T) {
	secretariatID := int64(3)
	repo := &memoryClientRepo{clients: map[int64]*Client{
		1: {ID: 1, Name: "admin", TokenHash: hash(t, "topsecret"), IsAdmin: true, IsActive: true},
		2: {ID: 2, Name: "hacienda", TokenHash: hash(t, "scoped"), SecretariatID: &secretariatID, IsActive: true},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	scope, err := svc.Authenticate(ctx, "1.topsecret")
	require.NoError(t, err)
	require.True(t, scope.Admin)
	require.True(t, scope.Unrestricted())

	scope, err = svc.Authenticate(ctx, "2.scoped")
	require.NoError(t, err)
	require.False(t, scope.Admin)
	require.NotNil(t, scope.SecretariatID)
	require.EqualValues(t, 3, *scope.SecretariatID)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	repo := &memoryClientRepo{clients: map[int64]*Client{
		1: {ID: 1, Name: "admin", TokenHash: hash(t, "topsecret"), IsAdmin: true, IsActive: true},
		2: {ID: 2, Name: "revoked", TokenHash: hash(t, "gone"), IsActive: false},
	}}
	svc := NewService(repo)
	ctx := context.Background()

	for _, token := range []string{
		"",
		"no-separator",
		"1.wrong-secret",
		"abc.topsecret",
		"99.topsecret",
		"2.gone",
	} {
		t.Run(fmt.Sprintf("token=%q", token), func(t *testing.T) {
			_, err := svc.Authenticate(ctx, token)
			require.ErrorIs(t, err, shared.ErrInvalidToken)
		})
	}
}
