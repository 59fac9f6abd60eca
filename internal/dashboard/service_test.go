package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type memoryDashboardRepo struct {
	bars   []Point
	totals []SecretariatTotal
	loads  int
}

func (r *memoryDashboardRepo) PeriodTotals(ctx context.Context) ([]Point, error) {
	r.loads++
	return r.bars, nil
}

func (r *memoryDashboardRepo) ActiveSecretariatTotals(ctx context.Context) ([]SecretariatTotal, error) {
	return r.totals, nil
}

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client, time.Minute)
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func strPtr(s string) *string { return &s }

func TestGetSeriesEmitsPlaceholderPie(t *testing.T) {
	repo := &memoryDashboardRepo{
		bars: []Point{{Label: "Noviembre 2025", Hours: dec("42.5")}},
	}
	svc := NewService(repo, newTestCache(t))

	series, err := svc.GetSeries(context.Background())
	require.NoError(t, err)
	require.Len(t, series.Bars, 1)
	require.Len(t, series.Pie, 1)
	require.Equal(t, NoDataLabel, series.Pie[0].Label)
	require.True(t, series.Pie[0].Hours.IsZero())
}

func TestGetSeriesCachesUntilBump(t *testing.T) {
	repo := &memoryDashboardRepo{
		bars:   []Point{{Label: "Noviembre 2025", Hours: dec("10.0")}},
		totals: []SecretariatTotal{{Name: strPtr("Hacienda"), Hours: dec("10.0")}},
	}
	cache := newTestCache(t)
	svc := NewService(repo, cache)
	ctx := context.Background()

	_, err := svc.GetSeries(ctx)
	require.NoError(t, err)
	_, err = svc.GetSeries(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, repo.loads)

	require.NoError(t, cache.Bump(ctx))
	_, err = svc.GetSeries(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, repo.loads)
}

func TestGetSeriesSurvivesMissingRedis(t *testing.T) {
	repo := &memoryDashboardRepo{
		totals: []SecretariatTotal{{Name: strPtr("Gobierno"), Hours: dec("7.5")}},
	}
	svc := NewService(repo, NewCache(nil, time.Minute))

	series, err := svc.GetSeries(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Gobierno", series.Pie[0].Label)
}

func TestPieExcludesDepartmentsWithoutSecretariat(t *testing.T) {
	repo := &memoryDashboardRepo{
		totals: []SecretariatTotal{
			{Name: strPtr("Gobierno"), Hours: dec("12.0")},
			{Name: nil, Hours: dec("99.0")},
			{Name: strPtr("Hacienda"), Hours: dec("4.5")},
		},
	}
	svc := NewService(repo, NewCache(nil, time.Minute))

	series, err := svc.GetSeries(context.Background())
	require.NoError(t, err)
	require.Len(t, series.Pie, 2)
	require.Equal(t, "Gobierno", series.Pie[0].Label)
	require.Equal(t, "Hacienda", series.Pie[1].Label)
}

func TestPieWithOnlyUnassignedHoursFallsBackToPlaceholder(t *testing.T) {
	repo := &memoryDashboardRepo{
		totals: []SecretariatTotal{{Name: nil, Hours: dec("6.0")}},
	}
	svc := NewService(repo, NewCache(nil, time.Minute))

	series, err := svc.GetSeries(context.Background())
	require.NoError(t, err)
	require.Len(t, series.Pie, 1)
	require.Equal(t, NoDataLabel, series.Pie[0].Label)
	require.True(t, series.Pie[0].Hours.IsZero())
}
