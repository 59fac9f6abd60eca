package entries

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/muniworks/overtime/internal/platform/httpx"
	"github.com/muniworks/overtime/internal/shared"
)

type memoryEntryRepo struct {
	employees    map[int64]EmployeeRef
	periods      map[int64]PeriodRef
	entries      map[int64]Entry
	secretariats map[int64]int64
	nextID       int64
}

type memoryEntryTx struct {
	repo *memoryEntryRepo
}

func newMemoryEntryRepo() *memoryEntryRepo {
	return &memoryEntryRepo{
		employees:    make(map[int64]EmployeeRef),
		periods:      make(map[int64]PeriodRef),
		entries:      make(map[int64]Entry),
		secretariats: make(map[int64]int64),
	}
}

func (r *memoryEntryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryEntryTx{repo: r})
}

func (r *memoryEntryRepo) List(ctx context.Context, scope shared.Scope, filters ListFilters) ([]Entry, int, error) {
	var out []Entry
	for _, e := range r.entries {
		if filters.PeriodID != nil && (e.PeriodID == nil || *e.PeriodID != *filters.PeriodID) {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (r *memoryEntryRepo) Get(ctx context.Context, scope shared.Scope, id int64) (Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return Entry{}, httpx.ErrNotFound
	}
	if !scope.Unrestricted() {
		if e.ChargedDepartmentID == nil || r.secretariats[*e.ChargedDepartmentID] != *scope.SecretariatID {
			return Entry{}, httpx.ErrNotFound
		}
	}
	return e, nil
}

func (t *memoryEntryTx) GetEmployeeRef(ctx context.Context, id int64) (EmployeeRef, error) {
	ref, ok := t.repo.employees[id]
	if !ok {
		return EmployeeRef{}, httpx.ErrNotFound
	}
	return ref, nil
}

func (t *memoryEntryTx) GetPeriodRef(ctx context.Context, id int64) (*PeriodRef, error) {
	ref, ok := t.repo.periods[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	return &ref, nil
}

func (t *memoryEntryTx) CurrentActivePeriod(ctx context.Context) (*PeriodRef, error) {
	for _, p := range t.repo.periods {
		if p.Active {
			clone := p
			return &clone, nil
		}
	}
	return nil, nil
}

func (t *memoryEntryTx) GetForUpdate(ctx context.Context, id int64) (Entry, error) {
	e, ok := t.repo.entries[id]
	if !ok {
		return Entry{}, httpx.ErrNotFound
	}
	return e, nil
}

func (t *memoryEntryTx) Insert(ctx context.Context, entry Entry) (Entry, error) {
	t.repo.nextID++
	entry.ID = t.repo.nextID
	t.repo.entries[entry.ID] = entry
	return entry, nil
}

func (t *memoryEntryTx) Update(ctx context.Context, id int64, entry Entry) error {
	if _, ok := t.repo.entries[id]; !ok {
		return httpx.ErrNotFound
	}
	entry.ID = id
	t.repo.entries[id] = entry
	return nil
}

func (t *memoryEntryTx) Delete(ctx context.Context, id int64) error {
	if _, ok := t.repo.entries[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(t.repo.entries, id)
	return nil
}

func ptr[T any](v T) *T { return &v }

func hours(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testRepo() *memoryEntryRepo {
	repo := newMemoryEntryRepo()
	repo.employees[1] = EmployeeRef{ID: 1, FullName: "GOMEZ, MARIA", HomeDepartmentID: ptr(int64(10))}
	repo.employees[2] = EmployeeRef{ID: 2, FullName: "PEREZ, JUAN"}
	repo.periods[100] = PeriodRef{ID: 100, Name: "Periodo 01", Active: true}
	repo.periods[101] = PeriodRef{ID: 101, Name: "Periodo 00", Closed: true}
	return repo
}

func TestCreateDefaultsPeriodAndDepartment(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), Entry{EmployeeID: 1, Hours: hours("5.5")})
	require.NoError(t, err)
	require.NotNil(t, created.PeriodID)
	require.EqualValues(t, 100, *created.PeriodID)
	require.NotNil(t, created.ChargedDepartmentID)
	require.EqualValues(t, 10, *created.ChargedDepartmentID)
}

func TestCreateWithoutActivePeriodStaysPeriodless(t *testing.T) {
	repo := testRepo()
	p := repo.periods[100]
	p.Active = false
	repo.periods[100] = p
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), Entry{EmployeeID: 2, Hours: hours("3.0")})
	require.NoError(t, err)
	require.Nil(t, created.PeriodID)
	require.Nil(t, created.ChargedDepartmentID)
}

func TestCreateRejectsClosedPeriod(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)

	_, err := svc.Create(context.Background(), Entry{
		EmployeeID: 1,
		PeriodID:   ptr(int64(101)),
		Hours:      hours("2.0"),
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateRejectsDefaultedClosedPeriod(t *testing.T) {
	// The active period was closed without being deactivated. The default
	// must still be rejected, so normalize has to run before validate.
	repo := testRepo()
	p := repo.periods[100]
	p.Closed = true
	repo.periods[100] = p
	svc := NewService(repo, nil, nil)

	_, err := svc.Create(context.Background(), Entry{EmployeeID: 1, Hours: hours("2.0")})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestExcessHoursRequireConfirmation(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, Entry{EmployeeID: 1, Hours: hours("181.0")})
	require.Error(t, err)
	var fieldErrs *httpx.FieldErrors
	require.True(t, errors.As(err, &fieldErrs))
	require.Contains(t, fieldErrs.Fields, "hours")
	require.Contains(t, fieldErrs.Fields, "exceeded_confirmed")
	require.ErrorIs(t, err, httpx.ErrValidation)

	created, err := svc.Create(ctx, Entry{EmployeeID: 1, Hours: hours("181.0"), ExceededConfirmed: true})
	require.NoError(t, err)
	require.Equal(t, "181", created.Hours.String())
}

func TestThresholdBoundaryNeedsNoConfirmation(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)

	_, err := svc.Create(context.Background(), Entry{EmployeeID: 1, Hours: hours("180.0")})
	require.NoError(t, err)
}

func TestCreateUnknownEmployee(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)

	_, err := svc.Create(context.Background(), Entry{EmployeeID: 99, Hours: hours("1.0")})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateRejectedWhenCurrentPeriodClosed(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, Entry{EmployeeID: 1, Hours: hours("4.0")})
	require.NoError(t, err)

	p := repo.periods[100]
	p.Closed = true
	repo.periods[100] = p

	_, err = svc.Update(ctx, created.ID, Entry{EmployeeID: 1, PeriodID: created.PeriodID, Hours: hours("6.0")})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestDeleteGuardedByClosedPeriod(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, Entry{EmployeeID: 1, Hours: hours("4.0")})
	require.NoError(t, err)

	p := repo.periods[100]
	p.Closed = true
	repo.periods[100] = p

	err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, httpx.ErrValidation)

	// Reopening lifts the guard.
	p.Closed = false
	repo.periods[100] = p
	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestDeletePeriodlessEntryAlwaysSucceeds(t *testing.T) {
	repo := testRepo()
	p := repo.periods[100]
	p.Active = false
	repo.periods[100] = p
	svc := NewService(repo, nil, nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, Entry{EmployeeID: 2, Hours: hours("1.5")})
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID))
}

func TestCreateRejectsNonPositiveHours(t *testing.T) {
	repo := testRepo()
	svc := NewService(repo, nil, nil)

	_, err := svc.Create(context.Background(), Entry{EmployeeID: 1, Hours: decimal.Zero})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestGetHidesEntriesOutsideCallerSecretariat(t *testing.T) {
	repo := testRepo()
	repo.secretariats[10] = 1
	svc := NewService(repo, nil, nil)

	created, err := svc.Create(context.Background(), Entry{EmployeeID: 1, Hours: hours("4.0")})
	require.NoError(t, err)

	ctx := shared.ContextWithScope(context.Background(), shared.Scope{SecretariatID: ptr(int64(999))})
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	ctx = shared.ContextWithScope(context.Background(), shared.Scope{SecretariatID: ptr(int64(1))})
	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.ID, got.ID)
}
