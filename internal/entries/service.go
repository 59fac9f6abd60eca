package entries

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/muniworks/overtime/internal/platform/httpx"
	"github.com/muniworks/overtime/internal/shared"
)

// Invalidator is notified after successful writes so cached dashboard series
// get rebuilt.
type Invalidator interface {
	Bump(ctx context.Context) error
}

// Service owns the hour-entry write path. Every persist runs the same three
// stages inside one transaction: normalize, validate, write.
type Service struct {
	repo   Repository
	cache  Invalidator
	logger *slog.Logger
}

// NewService constructs a Service instance.
func NewService(repo Repository, cache Invalidator, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, logger: logger}
}

func (s *Service) List(ctx context.Context, filters ListFilters) ([]Entry, int, error) {
	return s.repo.List(ctx, shared.ScopeFromContext(ctx), filters)
}

func (s *Service) Get(ctx context.Context, id int64) (Entry, error) {
	if id <= 0 {
		return Entry{}, fmt.Errorf("%w: invalid entry id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, shared.ScopeFromContext(ctx), id)
}

// Create persists a new entry. Defaults are resolved and validated inside the
// same transaction as the insert, so a period closing concurrently cannot let
// the entry through.
func (s *Service) Create(ctx context.Context, entry Entry) (Entry, error) {
	var created Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		employee, err := tx.GetEmployeeRef(ctx, entry.EmployeeID)
		if err != nil {
			return fmt.Errorf("employee %d: %w", entry.EmployeeID, err)
		}

		period, err := s.resolvePeriod(ctx, tx, &entry, employee)
		if err != nil {
			return err
		}
		if err := validate(entry, period); err != nil {
			return err
		}

		created, err = tx.Insert(ctx, entry)
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	s.bump(ctx)
	return created, nil
}

// Update rewrites an entry. Both the period the entry currently belongs to
// and the one it would move to must be open.
func (s *Service) Update(ctx context.Context, id int64, entry Entry) (Entry, error) {
	var updated Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		existing, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if existing.PeriodID != nil {
			current, err := tx.GetPeriodRef(ctx, *existing.PeriodID)
			if err != nil {
				return err
			}
			if err := validatePeriodOpen(current); err != nil {
				return err
			}
		}

		employee, err := tx.GetEmployeeRef(ctx, entry.EmployeeID)
		if err != nil {
			return fmt.Errorf("employee %d: %w", entry.EmployeeID, err)
		}

		period, err := s.resolvePeriod(ctx, tx, &entry, employee)
		if err != nil {
			return err
		}
		if err := validate(entry, period); err != nil {
			return err
		}

		if err := tx.Update(ctx, id, entry); err != nil {
			return err
		}
		updated = entry
		updated.ID = id
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	s.bump(ctx)
	return updated, nil
}

// Delete removes an entry unless its period has been closed. The guard runs
// in the delete transaction.
func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		existing, err := tx.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if existing.PeriodID != nil {
			period, err := tx.GetPeriodRef(ctx, *existing.PeriodID)
			if err != nil {
				return err
			}
			if err := validatePeriodOpen(period); err != nil {
				return err
			}
		}
		return tx.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.bump(ctx)
	return nil
}

// resolvePeriod runs the normalize stage and returns the period the entry
// will be saved against (nil when periodless).
func (s *Service) resolvePeriod(ctx context.Context, tx TxRepository, entry *Entry, employee EmployeeRef) (*PeriodRef, error) {
	var period *PeriodRef
	var err error
	if entry.PeriodID != nil {
		period, err = tx.GetPeriodRef(ctx, *entry.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("period %d: %w", *entry.PeriodID, err)
		}
	} else {
		period, err = tx.CurrentActivePeriod(ctx)
		if err != nil {
			return nil, err
		}
	}
	normalize(entry, employee, period)
	return period, nil
}

func (s *Service) bump(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Bump(ctx); err != nil && s.logger != nil {
		s.logger.Warn("dashboard cache bump failed", slog.Any("error", err))
	}
}
