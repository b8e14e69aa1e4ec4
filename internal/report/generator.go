package report

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"linkstat/internal/models"
)

// Generator writes the per-run report from the sample log
type Generator struct {
	store models.SampleStore
	log   *slog.Logger
	now   func() time.Time
}

// NewGenerator creates a new report generator
func NewGenerator(store models.SampleStore, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{store: store, log: log, now: time.Now}
}

// GenerateReport creates a report directory under outputDir holding the text
// summary and the timing chart, and returns its path
func (g *Generator) GenerateReport(outputDir string, result models.Aggregate) (string, error) {
	samples, err := g.store.GetSamples()
	if err != nil {
		return "", fmt.Errorf("failed to load samples: %w", err)
	}
	stats, err := g.store.GetStats()
	if err != nil {
		return "", fmt.Errorf("failed to load stats: %w", err)
	}

	target := "unknown"
	if len(samples) > 0 {
		target = hostOf(samples[0].URL)
	}

	timestamp := g.now().Format("2006-01-02_15-04-05")
	reportDir := filepath.Join(outputDir, fmt.Sprintf("linkstat_report_%s_%s", sanitizeFilename(target), timestamp))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateTextReport(reportDir, result, stats, samples); err != nil {
		return "", fmt.Errorf("failed to generate text report: %w", err)
	}

	if err := g.generateTimingChart(reportDir, samples); err != nil {
		g.log.Warn("failed to generate timing chart", "error", err)
	}

	g.log.Info("report generated", "dir", reportDir)
	return reportDir, nil
}

func hostOf(raw string) string {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	if u, err := url.Parse(raw); err == nil && u.Host != "" {
		return u.Host
	}
	return raw
}
