package database

import (
	"database/sql"
	"fmt"

	"linkstat/internal/models"
)

// GetStats summarizes the sample log. Timing figures cover successful samples only.
func (db *DB) GetStats() (models.SampleStats, error) {
	query := `
        SELECT
            COUNT(*) as total_samples,
            COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END), 0) as successful_samples,
            AVG(CASE WHEN success THEN total_time ELSE NULL END) as avg_total,
            MIN(CASE WHEN success THEN total_time ELSE NULL END) as min_total,
            MAX(CASE WHEN success THEN total_time ELSE NULL END) as max_total
        FROM samples
    `

	var s models.SampleStats
	var avgTotal, minTotal, maxTotal sql.NullFloat64
	err := db.QueryRow(query).Scan(&s.TotalSamples, &s.Successful, &avgTotal, &minTotal, &maxTotal)
	if err != nil {
		return models.SampleStats{}, fmt.Errorf("query stats: %w", err)
	}

	if avgTotal.Valid {
		s.AvgTotal = avgTotal.Float64
	}
	if minTotal.Valid {
		s.MinTotal = minTotal.Float64
	}
	if maxTotal.Valid {
		s.MaxTotal = maxTotal.Float64
	}
	if s.TotalSamples > 0 {
		s.FailureRate = float64(s.TotalSamples-s.Successful) * 100 / float64(s.TotalSamples)
	}

	return s, nil
}
