package employees

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

func (s *Service) List(ctx context.Context, filters orgshared.ListFilters) ([]Employee, int, error) {
	return s.repo.List(ctx, shared.ScopeFromContext(ctx), filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	if id <= 0 {
		return Employee{}, fmt.Errorf("%w: invalid employee id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, shared.ScopeFromContext(ctx), id)
}

func (s *Service) Create(ctx context.Context, emp Employee) (Employee, error) {
	if err := s.validate(emp); err != nil {
		return Employee{}, err
	}
	return s.repo.Create(ctx, emp)
}

func (s *Service) Update(ctx context.Context, id int64, emp Employee) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid employee id", httpx.ErrValidation)
	}
	if err := s.validate(emp); err != nil {
		return err
	}
	return s.repo.Update(ctx, id, emp)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid employee id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
