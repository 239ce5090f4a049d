package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/peter9889466/midori-view-sub000/internal/domain"
	"github.com/peter9889466/midori-view-sub000/internal/observability"
)

//go:generate mockgen -source internal/application/service/service.go -destination=internal/application/service/service_mock_test.go -package=service

type Cache interface {
	Get(period string) ([]domain.TradeRecord, bool)
	Set(period string, records []domain.TradeRecord)
	Invalidate(period string)
}

type Storage interface {
	FindByPeriod(ctx context.Context, period string) ([]domain.TradeRecord, error)
	Upsert(ctx context.Context, rec *domain.TradeRecord) error
}

type Fetcher interface {
	Fetch(ctx context.Context, req domain.FetchRequest) (domain.FetchOutcome, error)
}

type Pacer interface {
	Wait(ctx context.Context) error
}

// Service is the cache-or-fetch orchestrator: serve a period from the store
// when any row for it exists, otherwise drive the throttled fetch loop over
// products x countries, persist the successes and report run statistics.
// Stateless between runs apart from the injected collaborators.
type Service struct {
	cache   Cache
	storage Storage
	fetcher Fetcher
	pacer   Pacer
	logger  *zap.Logger
	metrics observability.Metrics

	// group collapses concurrent runs for the same period into one fetch loop.
	group singleflight.Group
}

func NewService(cache Cache, storage Storage, fetcher Fetcher, pacer Pacer, logger *zap.Logger, metrics observability.Metrics) *Service {
	return &Service{
		cache:   cache,
		storage: storage,
		fetcher: fetcher,
		pacer:   pacer,
		logger:  logger,
		metrics: metrics,
	}
}

// GetTradeData returns the full result set for a period: from memory or the
// store when the period is already cached, otherwise by fetching every
// product x country pair from the external source and persisting successes.
func (s *Service) GetTradeData(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*Result, error) {
	if err := validateInput(period, products, countries); err != nil {
		return nil, err
	}

	tCacheStart := time.Now()
	if records, ok := s.cache.Get(period); ok {
		st := LookupStats{Source: SourceMemory, CacheMs: convertToMs(tCacheStart)}
		s.metrics.IncCacheHit()
		s.metrics.ObserveLookup(string(st.Source), st.CacheMs)

		s.logger.Info("period served from memory",
			zap.String("period", period),
			zap.Int("records", len(records)),
			zap.Float64("cache_ms", st.CacheMs),
		)
		return &Result{
			Summary: hitSummary(period, len(records), time.Since(tCacheStart)),
			Records: records,
			Lookup:  st,
		}, nil
	}
	s.metrics.IncCacheMiss()
	cacheMs := convertToMs(tCacheStart)

	v, err, shared := s.group.Do(period, func() (any, error) {
		// A started run completes even if the requesting client goes away.
		return s.lookupOrFetch(context.WithoutCancel(ctx), period, products, countries)
	})
	if err != nil {
		return nil, err
	}

	// The result is shared between every caller collapsed into this run;
	// copy before attaching per-caller timings.
	res := *(v.(*Result))
	res.Lookup.CacheMs = cacheMs
	if shared {
		s.logger.Debug("run shared with concurrent caller", zap.String("period", period))
	}
	return &res, nil
}

// Refresh bypasses the cache check and re-runs the full fetch loop for the
// period, repairing periods a partially failed run left looking complete.
func (s *Service) Refresh(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*Result, error) {
	if err := validateInput(period, products, countries); err != nil {
		return nil, err
	}

	// A distinct flight key: a forced refresh must never join an in-progress
	// lookup flight and come back with its cached result.
	v, err, _ := s.group.Do("refresh:"+period, func() (any, error) {
		return s.runFetch(context.WithoutCancel(ctx), period, products, countries)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Result), nil
}

// lookupOrFetch is the singleflight body: by the time a queued caller gets in,
// the period may already be in the store.
func (s *Service) lookupOrFetch(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*Result, error) {
	tDbStart := time.Now()
	stored, err := s.storage.FindByPeriod(ctx, period)
	if err != nil {
		s.logger.Error("period lookup failed",
			zap.String("period", period),
			zap.Error(err),
		)
		return nil, fmt.Errorf("find by period: %w", err)
	}

	// Any row for the period means it was already processed; partial runs are
	// repaired through Refresh, never retried here.
	if len(stored) > 0 {
		st := LookupStats{Source: SourceDatabase, DBMs: convertToMs(tDbStart)}
		s.metrics.ObserveLookup(string(st.Source), st.DBMs)
		s.cache.Set(period, stored)

		s.logger.Info("period served from database",
			zap.String("period", period),
			zap.Int("records", len(stored)),
			zap.Float64("db_ms", st.DBMs),
		)
		return &Result{
			Summary: hitSummary(period, len(stored), time.Since(tDbStart)),
			Records: stored,
			Lookup:  st,
		}, nil
	}

	return s.runFetch(ctx, period, products, countries)
}

func (s *Service) runFetch(ctx context.Context, period string, products []domain.Product, countries []domain.Country) (*Result, error) {
	runID := uuid.NewString()
	start := time.Now()

	s.logger.Info("starting fetch run",
		zap.String("run_id", runID),
		zap.String("period", period),
		zap.Int("products", len(products)),
		zap.Int("countries", len(countries)),
	)

	records := make([]domain.TradeRecord, 0, len(products)*len(countries))
	calls, successes, errCount := 0, 0, 0

	for _, product := range products {
		for _, country := range countries {
			calls++
			outcome, err := s.fetcher.Fetch(ctx, domain.FetchRequest{
				Period:      period,
				ProductCode: product.Code,
				CountryCode: country.Code,
			})
			switch {
			case err != nil:
				errCount++
				s.logger.Warn("pair fetch failed",
					zap.String("run_id", runID),
					zap.String("product", product.Code),
					zap.String("country", country.Code),
					zap.Error(err),
				)
			case outcome.Total() > 0:
				successes++
				records = append(records, domain.TradeRecord{
					ID:          domain.RecordID(country.Code, product.Code, period),
					Country:     country.Name,
					Product:     product.Name,
					Category:    product.Category,
					ExportValue: outcome.ExportValue,
					ImportValue: outcome.ImportValue,
					Period:      period,
				})
			}
			// Throttle applies after every call, the last one included.
			if err := s.pacer.Wait(ctx); err != nil {
				return nil, fmt.Errorf("pacer: %w", err)
			}
		}
	}

	saved, persistErrs := s.persist(ctx, runID, records)

	elapsed := time.Since(start)
	s.metrics.ObserveFetchRun(calls, successes, errCount, float64(elapsed.Microseconds())/1000.0)

	s.cache.Invalidate(period)
	if len(records) > 0 {
		s.cache.Set(period, records)
	}

	s.logger.Info("fetch run finished",
		zap.String("run_id", runID),
		zap.String("period", period),
		zap.Int("calls", calls),
		zap.Int("successes", successes),
		zap.Int("errors", errCount),
		zap.Int("saved", saved),
		zap.Int("persist_errors", persistErrs),
		zap.Duration("elapsed", elapsed),
	)

	return &Result{
		Summary: RunSummary{
			DataSource:     DataSourceAPI,
			TotalAPICalls:  calls,
			SuccessfulData: successes,
			ErrorCount:     errCount,
			SavedToDB:      saved,
			PersistErrors:  persistErrs,
			SuccessRate:    formatSuccessRate(successes, calls),
			ExecutionTime:  formatExecutionTime(elapsed),
			Period:         period,
		},
		Records: records,
		Lookup:  LookupStats{Source: SourceAPI, APIMs: float64(elapsed.Microseconds()) / 1000.0},
	}, nil
}

// persist upserts each accumulated record best-effort; one failure never stops
// the rest, it is only counted.
func (s *Service) persist(ctx context.Context, runID string, records []domain.TradeRecord) (saved, failed int) {
	for i := range records {
		t0 := time.Now()
		if err := s.storage.Upsert(ctx, &records[i]); err != nil {
			failed++
			s.logger.Error("record upsert failed",
				zap.String("run_id", runID),
				zap.String("id", records[i].ID),
				zap.Error(err),
			)
			continue
		}
		saved++
		s.metrics.ObserveUpsert(convertToMs(t0))
	}
	return saved, failed
}

func hitSummary(period string, count int, elapsed time.Duration) RunSummary {
	return RunSummary{
		DataSource:     DataSourceDatabase,
		TotalAPICalls:  0,
		SuccessfulData: count,
		ErrorCount:     0,
		SavedToDB:      0,
		PersistErrors:  0,
		SuccessRate:    formatSuccessRate(0, 0),
		ExecutionTime:  formatExecutionTime(elapsed),
		Period:         period,
	}
}

func validateInput(period string, products []domain.Product, countries []domain.Country) error {
	if period == "" {
		return fmt.Errorf("%w: period is required", domain.ErrInvalidInput)
	}
	if !domain.ValidPeriod(period) {
		return fmt.Errorf("%w: period must be YYYY.MM", domain.ErrInvalidInput)
	}
	if len(products) == 0 {
		return fmt.Errorf("%w: products are required", domain.ErrInvalidInput)
	}
	if len(countries) == 0 {
		return fmt.Errorf("%w: countries are required", domain.ErrInvalidInput)
	}
	return nil
}
