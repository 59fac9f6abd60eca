package secretariats

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/muniworks/overtime/internal/org/shared"
	"github.com/muniworks/overtime/internal/platform/httpx"
)

type memorySecretariatRepo struct {
	items  map[int64]Secretariat
	nextID int64
}

func newMemorySecretariatRepo() *memorySecretariatRepo {
	return &memorySecretariatRepo{items: make(map[int64]Secretariat)}
}

func (r *memorySecretariatRepo) List(ctx context.Context, filters shared.ListFilters) ([]Secretariat, int, error) {
	var out []Secretariat
	for _, s := range r.items {
		out = append(out, s)
	}
	return out, len(out), nil
}

func (r *memorySecretariatRepo) Get(ctx context.Context, id int64) (Secretariat, error) {
	s, ok := r.items[id]
	if !ok {
		return Secretariat{}, httpx.ErrNotFound
	}
	return s, nil
}

func (r *memorySecretariatRepo) Create(ctx context.Context, sec Secretariat) (Secretariat, error) {
	for _, existing := range r.items {
		if existing.Name == sec.Name {
			return Secretariat{}, httpx.ErrDuplicate
		}
	}
	r.nextID++
	sec.ID = r.nextID
	r.items[sec.ID] = sec
	return sec, nil
}

func (r *memorySecretariatRepo) Update(ctx context.Context, id int64, sec Secretariat) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	sec.ID = id
	r.items[id] = sec
	return nil
}

func (r *memorySecretariatRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func TestCreateTrimsAndValidatesName(t *testing.T) {
	svc := NewService(newMemorySecretariatRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Secretariat{Name: "   "})
	require.ErrorIs(t, err, httpx.ErrValidation)

	created, err := svc.Create(ctx, Secretariat{Name: "  Hacienda  "})
	require.NoError(t, err)
	require.Equal(t, "Hacienda", created.Name)
}

func TestCreateDuplicateName(t *testing.T) {
	svc := NewService(newMemorySecretariatRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, Secretariat{Name: "Gobierno"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, Secretariat{Name: "Gobierno"})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestGetRejectsInvalidID(t *testing.T) {
	svc := NewService(newMemorySecretariatRepo())

	_, err := svc.Get(context.Background(), 0)
	require.ErrorIs(t, err, httpx.ErrValidation)
}
