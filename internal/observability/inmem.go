package observability

import "sync"

// Inmem keeps the last N observations in a ring; enough for the debug endpoint
// and for tests, without an external metrics backend.
type Inmem struct {
	mu     sync.Mutex
	last   []any
	max    int
	totals struct {
		cacheHits, cacheMiss int
	}
}

func NewInmem(max int) *Inmem {
	return &Inmem{
		max: max,
	}
}

func (m *Inmem) push(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.last = append(m.last, v)
	if len(m.last) > m.max {
		m.last = m.last[1:]
	}
}

func (m *Inmem) ObserveLookup(source string, durMs float64) {
	m.push(struct {
		Kind   string
		Source string
		DurMs  float64
	}{"lookup", source, durMs})
}

func (m *Inmem) ObserveFetchRun(calls, successes, errors int, durMs float64) {
	m.push(struct {
		Kind                     string
		Calls, Successes, Errors int
		DurMs                    float64
	}{"fetch_run", calls, successes, errors, durMs})
}

func (m *Inmem) ObserveUpsert(dbWriteMs float64) {
	m.push(struct {
		Kind      string
		DbWriteMs float64
	}{"upsert", dbWriteMs})
}

func (m *Inmem) ObserveHTTP(method, route string, status int, durMs float64) {
	m.push(struct {
		Kind          string
		Method, Route string
		Status        int
		Dur           float64
	}{"http", method, route, status, durMs})
}

func (m *Inmem) ObserveKafka(processMs float64, ok bool) {
	m.push(struct {
		Kind string
		Dur  float64
		OK   bool
	}{"kafka", processMs, ok})
}

func (m *Inmem) IncCacheHit() {
	m.mu.Lock()
	m.totals.cacheHits++
	m.mu.Unlock()
}

func (m *Inmem) IncCacheMiss() {
	m.mu.Lock()
	m.totals.cacheMiss++
	m.mu.Unlock()
}

// CacheTotals returns hit/miss counters accumulated so far.
func (m *Inmem) CacheTotals() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totals.cacheHits, m.totals.cacheMiss
}
