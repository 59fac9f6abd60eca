package auth

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/muniworks/overtime/internal/shared"
)

// Service validates API tokens and resolves caller scopes.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Authenticate validates a bearer token of the form "<clientID>.<secret>" and
// returns the visibility scope granted to the client.
func (s *Service) Authenticate(ctx context.Context, token string) (shared.Scope, error) {
	idPart, secret, ok := strings.Cut(token, ".")
	if !ok {
		return shared.Scope{}, shared.ErrInvalidToken
	}
	id, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		return shared.Scope{}, shared.ErrInvalidToken
	}
	client, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return shared.Scope{}, shared.ErrInvalidToken
	}
	if !client.IsActive {
		return shared.Scope{}, shared.ErrInvalidToken
	}
	if err := bcrypt.CompareHashAndPassword([]byte(client.TokenHash), []byte(secret)); err != nil {
		return shared.Scope{}, shared.ErrInvalidToken
	}
	return shared.Scope{Admin: client.IsAdmin, SecretariatID: client.SecretariatID}, nil
}
