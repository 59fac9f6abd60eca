package periods

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/muniworks/overtime/internal/platform/httpx"
)

type memoryPeriodRepo struct {
	periods map[int64]Period
	nextID  int64
}

type memoryPeriodTx struct {
	repo *memoryPeriodRepo
}

func newMemoryPeriodRepo() *memoryPeriodRepo {
	return &memoryPeriodRepo{periods: make(map[int64]Period)}
}

func (r *memoryPeriodRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryPeriodTx{repo: r})
}

func (r *memoryPeriodRepo) List(ctx context.Context) ([]Period, error) {
	var out []Period
	for _, p := range r.periods {
		out = append(out, p)
	}
	return out, nil
}

func (r *memoryPeriodRepo) Get(ctx context.Context, id int64) (Period, error) {
	p, ok := r.periods[id]
	if !ok {
		return Period{}, httpx.ErrNotFound
	}
	return p, nil
}

func (r *memoryPeriodRepo) CurrentActive(ctx context.Context) (*Period, error) {
	for _, p := range r.periods {
		if p.Active {
			clone := p
			return &clone, nil
		}
	}
	return nil, nil
}

func (r *memoryPeriodRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.periods[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.periods, id)
	return nil
}

func (t *memoryPeriodTx) GetForUpdate(ctx context.Context, id int64) (Period, error) {
	return t.repo.Get(ctx, id)
}

func (t *memoryPeriodTx) Insert(ctx context.Context, in CreatePeriodInput) (Period, error) {
	t.repo.nextID++
	p := Period{
		ID:        t.repo.nextID,
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	t.repo.periods[p.ID] = p
	return p, nil
}

func (t *memoryPeriodTx) UpdateFields(ctx context.Context, id int64, in CreatePeriodInput) error {
	p, ok := t.repo.periods[id]
	if !ok {
		return httpx.ErrNotFound
	}
	p.Name, p.StartDate, p.EndDate = in.Name, in.StartDate, in.EndDate
	t.repo.periods[id] = p
	return nil
}

func (t *memoryPeriodTx) ClearActive(ctx context.Context, exceptID int64) error {
	for id, p := range t.repo.periods {
		if p.Active && id != exceptID {
			p.Active = false
			t.repo.periods[id] = p
		}
	}
	return nil
}

func (t *memoryPeriodTx) SetActive(ctx context.Context, id int64, active bool) error {
	p, ok := t.repo.periods[id]
	if !ok {
		return httpx.ErrNotFound
	}
	p.Active = active
	t.repo.periods[id] = p
	return nil
}

func (t *memoryPeriodTx) SetClosed(ctx context.Context, id int64, closed bool) error {
	p, ok := t.repo.periods[id]
	if !ok {
		return httpx.ErrNotFound
	}
	p.Closed = closed
	t.repo.periods[id] = p
	return nil
}

func seedPeriod(t *testing.T, svc *Service, name string, active bool) Period {
	t.Helper()
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	period, err := svc.Create(context.Background(), CreatePeriodInput{
		Name:      name,
		StartDate: start,
		EndDate:   start.AddDate(0, 1, -1),
		Active:    active,
	})
	require.NoError(t, err)
	return period
}

func countActive(repo *memoryPeriodRepo) int {
	n := 0
	for _, p := range repo.periods {
		if p.Active {
			n++
		}
	}
	return n
}

func TestActivateDemotesOthers(t *testing.T) {
	repo := newMemoryPeriodRepo()
	svc := NewService(repo)
	ctx := context.Background()

	first := seedPeriod(t, svc, "Periodo 01", true)
	second := seedPeriod(t, svc, "Periodo 02", false)

	require.Equal(t, 1, countActive(repo))

	_, err := svc.Activate(ctx, second.ID)
	require.NoError(t, err)

	require.Equal(t, 1, countActive(repo))
	got, err := svc.Get(ctx, first.ID)
	require.NoError(t, err)
	require.False(t, got.Active)
}

func TestAtMostOneActiveAfterRandomActivations(t *testing.T) {
	repo := newMemoryPeriodRepo()
	svc := NewService(repo)
	ctx := context.Background()

	var ids []int64
	for i := 0; i < 8; i++ {
		p := seedPeriod(t, svc, "Periodo", i == 0)
		ids = append(ids, p.ID)
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		id := ids[rng.Intn(len(ids))]
		if rng.Intn(4) == 0 {
			require.NoError(t, svc.Deactivate(ctx, id))
		} else {
			_, err := svc.Activate(ctx, id)
			require.NoError(t, err)
		}
		require.LessOrEqual(t, countActive(repo), 1, "activation %d left multiple active periods", i)
	}
}

func TestCreateActiveDemotesExisting(t *testing.T) {
	repo := newMemoryPeriodRepo()
	svc := NewService(repo)

	first := seedPeriod(t, svc, "Periodo 01", true)
	second := seedPeriod(t, svc, "Periodo 02", true)

	require.Equal(t, 1, countActive(repo))
	require.True(t, repo.periods[second.ID].Active)
	require.False(t, repo.periods[first.ID].Active)
}

func TestCloseAndReopen(t *testing.T) {
	repo := newMemoryPeriodRepo()
	svc := NewService(repo)
	ctx := context.Background()

	period := seedPeriod(t, svc, "Periodo 01", true)

	closed, err := svc.Close(ctx, period.ID)
	require.NoError(t, err)
	require.True(t, closed.Closed)

	reopened, err := svc.Reopen(ctx, period.ID)
	require.NoError(t, err)
	require.False(t, reopened.Closed)
}

func TestDeleteClosedPeriodRejected(t *testing.T) {
	repo := newMemoryPeriodRepo()
	svc := NewService(repo)
	ctx := context.Background()

	period := seedPeriod(t, svc, "Periodo 01", false)
	_, err := svc.Close(ctx, period.ID)
	require.NoError(t, err)

	err = svc.Delete(ctx, period.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateValidatesDates(t *testing.T) {
	svc := NewService(newMemoryPeriodRepo())
	_, err := svc.Create(context.Background(), CreatePeriodInput{
		Name:      "Periodo 01",
		StartDate: time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}
