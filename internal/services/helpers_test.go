package services

import (
	"io"
	"log/slog"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/models"
)

// testLogger discards all output so assertions stay readable
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// noopMetrics satisfies MetricsRecorderInterface without touching the
// process-wide prometheus registry, which tolerates only one registration
// per metric name.
type noopMetrics struct{}

func (noopMetrics) RecordAnalyticsRequest(operation, status string)           {}
func (noopMetrics) RecordAnalyticsDuration(operation string, d time.Duration) {}
func (noopMetrics) RecordAnomaliesDetected(count int)                         {}
func (noopMetrics) RecordAnomalyDismissed()                                   {}
func (noopMetrics) RecordExpenseCreated(category string)                      {}
func (noopMetrics) RecordExpenseDeleted()                                     {}
func (noopMetrics) SetLedgerMonths(months int)                                {}
func (noopMetrics) RecordAuthenticationEvent(event, status string)            {}

// stubSufficiency reports a fixed months-of-data count
type stubSufficiency struct {
	months  int
	records int64
}

func (s stubSufficiency) CheckDataSufficiency() (*models.DataSufficiency, error) {
	return &models.DataSufficiency{
		MonthsOfData: s.months,
		RecordCount:  s.records,
	}, nil
}

// testAnalyticsConfig mirrors the production defaults
func testAnalyticsConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		MinBaselineSamples:       3,
		AnomalyZScoreThreshold:   2.5,
		RecurringAmountTolerance: 0.15,
		DefaultLookbackDays:      90,
	}
}
