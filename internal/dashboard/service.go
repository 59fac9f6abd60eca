package dashboard

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// Service assembles the dashboard series, caching the result until the next
// entry write bumps the cache version.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

// NewService wires a Repository with a Cache helper.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// GetSeries returns both chart datasets. Concurrent callers share one load.
func (s *Service) GetSeries(ctx context.Context) (Series, error) {
	key, err := s.cache.BuildKey(ctx)
	if err != nil {
		return Series{}, err
	}
	result, err, _ := s.group.Do(key, func() (interface{}, error) {
		var series Series
		err := s.cache.FetchJSON(ctx, key, &series, func(ctx context.Context) (interface{}, error) {
			return s.load(ctx)
		})
		return series, err
	})
	if err != nil {
		return Series{}, err
	}
	return result.(Series), nil
}

func (s *Service) load(ctx context.Context) (Series, error) {
	bars, err := s.repo.PeriodTotals(ctx)
	if err != nil {
		return Series{}, err
	}
	totals, err := s.repo.ActiveSecretariatTotals(ctx)
	if err != nil {
		return Series{}, err
	}
	pie := assignedTotals(totals)
	if len(pie) == 0 {
		pie = []Point{{Label: NoDataLabel, Hours: decimal.Zero}}
	}
	return Series{Bars: bars, Pie: pie}, nil
}

// assignedTotals keeps only totals attributed to a secretariat. Hours charged
// to a department without one stay off the pie chart.
func assignedTotals(totals []SecretariatTotal) []Point {
	var pie []Point
	for _, t := range totals {
		if t.Name == nil {
			continue
		}
		pie = append(pie, Point{Label: *t.Name, Hours: t.Hours})
	}
	return pie
}
