package departments

import (
	"context"
	"fmt"

	orgshared "github.com/muniworks/overtime/internal/org/shared"
	"github.com/muniworks/overtime/internal/platform/httpx"
	"github.com/muniworks/overtime/internal/shared"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters orgshared.ListFilters) ([]Department, int, error) {
	return s.repo.List(ctx, shared.ScopeFromContext(ctx), filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Department, error) {
	if id <= 0 {
		return Department{}, fmt.Errorf("%w: invalid department id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, shared.ScopeFromContext(ctx), id)
}

func (s *Service) Create(ctx context.Context, dep Department) (Department, error) {
	if err := s.validate(dep); err != nil {
		return Department{}, err
	}
	return s.repo.Create(ctx, dep)
}

func (s *Service) Update(ctx context.Context, id int64, dep Department) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid department id", httpx.ErrValidation)
	}
	if err := s.validate(dep); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, dep)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid department id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
