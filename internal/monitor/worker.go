package monitor

import (
	"context"

	"linkstat/internal/models"
	"linkstat/internal/probe"
)

// performProbe executes one probe and appends the outcome to the sample log
func (m *Monitor) performProbe(ctx context.Context, iteration int, url string, headers *probe.HeaderSet) (models.Metrics, error) {
	sample := models.Sample{
		Iteration: iteration,
		Timestamp: m.now(),
		URL:       url,
	}

	result, err := m.prober.Probe(ctx, url, headers)
	if err != nil {
		m.log.Debug("probe failed", "url", url, "iteration", iteration, "kind", probe.KindOf(err).String(), "error", err)
		sample.ErrorKind = probe.KindOf(err).String()
	} else {
		sample.Success = true
		sample.Metrics = result
	}

	m.saveSample(sample)
	return result, err
}

// saveSample records a sample; a failing store never affects the aggregate
func (m *Monitor) saveSample(sample models.Sample) {
	if m.store == nil {
		return
	}
	if err := m.store.SaveSample(sample); err != nil {
		m.log.Warn("failed to save sample", "iteration", sample.Iteration, "error", err)
	}
}
