package periods

import (
	"context"
	"fmt"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

// Service orchestrates period lifecycle transitions.
type Service struct {
	repo Repository
}

// NewService constructs a Service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context) ([]Period, error) {
	return s.repo.List(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Period, error) {
	return s.repo.Get(ctx, id)
}

// CurrentActive is the single lookup used wherever "the working period" is
// needed. Returns nil when no period is active.
func (s *Service) CurrentActive(ctx context.Context) (*Period, error) {
	return s.repo.CurrentActive(ctx)
}

// Create inserts a new period. Saving with the active flag set demotes every
// other period inside the same transaction.
func (s *Service) Create(ctx context.Context, in CreatePeriodInput) (Period, error) {
	if err := in.Validate(); err != nil {
		return Period{}, err
	}
	var period Period
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var e error
		period, e = tx.Insert(ctx, in)
		if e != nil {
			return e
		}
		if in.Active {
			if e := tx.ClearActive(ctx, period.ID); e != nil {
				return e
			}
			if e := tx.SetActive(ctx, period.ID, true); e != nil {
				return e
			}
			period.Active = true
		}
		return nil
	})
	if err != nil {
		return Period{}, err
	}
	return period, nil
}

// Update changes name and date range. Activation and closing have their own
// transitions and are not reachable through a plain update.
func (s *Service) Update(ctx context.Context, id int64, in CreatePeriodInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if _, err := tx.GetForUpdate(ctx, id); err != nil {
			return err
		}
		return tx.UpdateFields(ctx, id, in)
	})
}

// Activate flags the period as the current working cycle, demoting every
// other period atomically so two concurrent activations can never leave two
// active periods behind.
func (s *Service) Activate(ctx context.Context, id int64) (Period, error) {
	var period Period
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var e error
		period, e = tx.GetForUpdate(ctx, id)
		if e != nil {
			return e
		}
		if e := tx.ClearActive(ctx, id); e != nil {
			return e
		}
		if e := tx.SetActive(ctx, id, true); e != nil {
			return e
		}
		period.Active = true
		return nil
	})
	if err != nil {
		return Period{}, err
	}
	return period, nil
}

// Deactivate unsets the active flag without promoting another period.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	return s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		if _, err := tx.GetForUpdate(ctx, id); err != nil {
			return err
		}
		return tx.SetActive(ctx, id, false)
	})
}

// Close finalises the period. From here on no hour entry referencing it can
// be created, modified, or deleted.
func (s *Service) Close(ctx context.Context, id int64) (Period, error) {
	return s.setClosed(ctx, id, true)
}

// Reopen lifts the close gate. Kept as an administrative escape hatch.
func (s *Service) Reopen(ctx context.Context, id int64) (Period, error) {
	return s.setClosed(ctx, id, false)
}

func (s *Service) setClosed(ctx context.Context, id int64, closed bool) (Period, error) {
	var period Period
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var e error
		period, e = tx.GetForUpdate(ctx, id)
		if e != nil {
			return e
		}
		if e := tx.SetClosed(ctx, id, closed); e != nil {
			return e
		}
		period.Closed = closed
		return nil
	})
	if err != nil {
		return Period{}, err
	}
	return period, nil
}

// Delete removes a period; its entries cascade away with it. Closed periods
// cannot be deleted.
func (s *Service) Delete(ctx context.Context, id int64) error {
	period, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if period.Closed {
		return fmt.Errorf("%w: period %q is closed", httpx.ErrValidation, period.Name)
	}
	return s.repo.Delete(ctx, id)
}
