package cache

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/peter9889466/midori-view-sub000/internal/domain"
)

//go:generate mockgen -source internal/cache/cache.go -destination=internal/cache/cache_mock_test.go -package=cache

type repo interface {
	FindByPeriod(ctx context.Context, period string) ([]domain.TradeRecord, error)
	RecentPeriods(ctx context.Context, limit int) ([]string, error)
}

// Cache keeps the row sets of recently served periods in memory so a popular
// dashboard period does not hit the database on every request. The store stays
// the source of truth; entries are replaced after every fetch run.
type Cache struct {
	size int
	lru  *lru.Cache[string, []domain.TradeRecord]
}

func New(size int) (*Cache, error) {
	c, err := lru.New[string, []domain.TradeRecord](size)
	if err != nil {
		return nil, err
	}
	return &Cache{
		size: size,
		lru:  c,
	}, nil
}

// Warm preloads the most recent periods from the store. Errors are ignored;
// a cold cache is only a performance issue.
func (c *Cache) Warm(ctx context.Context, repo repo) {
	if periods, err := repo.RecentPeriods(ctx, c.size); err == nil {
		for _, p := range periods {
			if recs, err := repo.FindByPeriod(ctx, p); err == nil && len(recs) > 0 {
				c.Set(p, recs)
			}
		}
	}
}

func (c *Cache) Get(period string) ([]domain.TradeRecord, bool) {
	return c.lru.Get(period)
}

func (c *Cache) Set(period string, records []domain.TradeRecord) {
	c.lru.Add(period, records)
}

func (c *Cache) Invalidate(period string) {
	c.lru.Remove(period)
}
