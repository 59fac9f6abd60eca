package secretariats

import (
	"context"
	"fmt"
	"strings"

	"github.com/muniworks/overtime/internal/org/shared"
	"github.com/muniworks/overtime/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, filters shared.ListFilters) ([]Secretariat, int, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Secretariat, error) {
	if id <= 0 {
		return Secretariat{}, fmt.Errorf("%w: invalid secretariat id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, sec Secretariat) (Secretariat, error) {
	sec.Name = strings.TrimSpace(sec.Name)
	if sec.Name == "" {
		return Secretariat{}, fmt.Errorf("%w: secretariat name is required", httpx.ErrValidation)
	}
	return s.repo.Create(ctx, sec)
}

func (s *Service) Update(ctx context.Context, id int64, sec Secretariat) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid secretariat id", httpx.ErrValidation)
	}
	sec.Name = strings.TrimSpace(sec.Name)
	if sec.Name == "" {
		return fmt.Errorf("%w: secretariat name is required", httpx.ErrValidation)
	}
	return s.repo.Update(ctx, id, sec)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid secretariat id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}
