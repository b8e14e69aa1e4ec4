package models

// SampleStore defines operations for the per-run sample log
type SampleStore interface {
	SaveSample(sample Sample) error
	GetSamples() ([]Sample, error)
	GetStats() (SampleStats, error)
	Close() error
}

// ReportGenerator defines report generation operations
type ReportGenerator interface {
	GenerateReport(outputDir string, result Aggregate) (string, error)
}
