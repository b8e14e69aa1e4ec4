package models

// SampleStats represents aggregated statistics over the sample log
type SampleStats struct {
	TotalSamples int     `json:"total_samples"`
	Successful   int     `json:"successful_samples"`
	AvgTotal     float64 `json:"avg_total_time"`
	MinTotal     float64 `json:"min_total_time"`
	MaxTotal     float64 `json:"max_total_time"`
	FailureRate  float64 `json:"failure_rate"` // percentage
}
