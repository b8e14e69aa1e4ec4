package monitor

import (
	"context"
	"log/slog"
	"time"

	"linkstat/internal/models"
	"linkstat/internal/probe"
)

// Prober performs a single probe against a URL
type Prober interface {
	Probe(ctx context.Context, url string, headers *probe.HeaderSet) (models.Metrics, error)
}

// Monitor runs probes sequentially and averages their timings
type Monitor struct {
	prober Prober
	store  models.SampleStore
	log    *slog.Logger
	now    func() time.Time
}

// New creates a new Monitor. store may be nil when no sample log is kept.
func New(prober Prober, store models.SampleStore, log *slog.Logger) *Monitor {
	if log == nil {
		log = slog.Default()
	}
	return &Monitor{
		prober: prober,
		store:  store,
		log:    log,
		now:    time.Now,
	}
}

// Aggregate probes url n times and returns the mean of the four timings.
//
// The sums cover successful probes only but are divided by n, so failures
// pull the averages toward zero. Identity fields are those of the last
// successful probe, or empty when every probe failed.
func (m *Monitor) Aggregate(ctx context.Context, url string, headers *probe.HeaderSet, n int) models.Aggregate {
	if n < 1 {
		n = 1
	}

	var total, last models.Metrics
	successful := 0
	for i := 0; i < n; i++ {
		result, err := m.performProbe(ctx, i, url, headers)
		if err != nil {
			continue
		}
		successful++
		last = result
		total.NameLookupTime += result.NameLookupTime
		total.ConnectTime += result.ConnectTime
		total.StartTransferTime += result.StartTransferTime
		total.TotalTime += result.TotalTime
	}

	iterations := float64(n)
	total.NameLookupTime /= iterations
	total.ConnectTime /= iterations
	total.StartTransferTime /= iterations
	total.TotalTime /= iterations
	total.ServerIP = last.ServerIP
	total.EffectiveURL = last.EffectiveURL
	total.HTTPResponseCode = last.HTTPResponseCode

	m.log.Debug("aggregation complete", "url", url, "iterations", n, "successful", successful)
	return models.Aggregate{Metrics: total, Iterations: n}
}
