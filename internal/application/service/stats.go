package service

import (
	"fmt"
	"time"

	"github.com/peter9889466/midori-view-sub000/internal/domain"
)

type LookupSource string

const (
	SourceMemory   LookupSource = "memory"
	SourceDatabase LookupSource = "database"
	SourceAPI      LookupSource = "api"
)

// DataSource values exposed in the run summary. A memory hit still reports
// "database": the rows originated there and the contract has two values.
const (
	DataSourceDatabase = "database"
	DataSourceAPI      = "api_and_database"
)

// RunSummary describes one orchestration run the way the dashboard renders it.
type RunSummary struct {
	DataSource     string `json:"dataSource"`
	TotalAPICalls  int    `json:"totalApiCalls"`
	SuccessfulData int    `json:"successfulData"`
	ErrorCount     int    `json:"errorCount"`
	SavedToDB      int    `json:"savedToDb"`
	PersistErrors  int    `json:"persistErrors"`
	SuccessRate    string `json:"successRate"`
	ExecutionTime  string `json:"executionTime"`
	Period         string `json:"period"`
}

// LookupStats carries per-stage timings for Server-Timing headers and metrics;
// it is not part of the response body.
type LookupStats struct {
	Source  LookupSource
	CacheMs float64
	DBMs    float64
	APIMs   float64
}

type Result struct {
	Summary RunSummary
	Records []domain.TradeRecord
	Lookup  LookupStats
}

// formatSuccessRate renders successfulData/totalApiCalls as a percentage with
// one decimal. A run with zero calls (cache hit) had nothing fail.
func formatSuccessRate(successful, total int) string {
	if total == 0 {
		return "100.0%"
	}
	return fmt.Sprintf("%.1f%%", 100*float64(successful)/float64(total))
}

func formatExecutionTime(d time.Duration) string {
	return fmt.Sprintf("%.2fs", d.Seconds())
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
