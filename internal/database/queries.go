package database

import (
	"database/sql"
	"fmt"

	"linkstat/internal/models"
)

// SaveSample appends a probe outcome to the sample log
func (db *DB) SaveSample(sample models.Sample) error {
	query := `
        INSERT INTO samples (iteration, timestamp, url, success, error_kind, server_ip, effective_url,
            http_response_code, name_lookup_time, connect_time, start_transfer_time, total_time)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	var errKind sql.NullString
	if sample.ErrorKind != "" {
		errKind = sql.NullString{String: sample.ErrorKind, Valid: true}
	}

	_, err := db.Exec(query,
		sample.Iteration,
		sample.Timestamp,
		sample.URL,
		sample.Success,
		errKind,
		sample.ServerIP,
		sample.EffectiveURL,
		sample.HTTPResponseCode,
		sample.NameLookupTime,
		sample.ConnectTime,
		sample.StartTransferTime,
		sample.TotalTime,
	)
	if err != nil {
		return fmt.Errorf("save sample %d: %w", sample.Iteration, err)
	}
	return nil
}

// GetSamples retrieves every sample in iteration order
func (db *DB) GetSamples() ([]models.Sample, error) {
	query := `
        SELECT iteration, timestamp, url, success, error_kind, server_ip, effective_url,
            http_response_code, name_lookup_time, connect_time, start_transfer_time, total_time
        FROM samples
        ORDER BY iteration, id
    `

	rows, err := db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []models.Sample
	for rows.Next() {
		var s models.Sample
		var errKind sql.NullString
		err := rows.Scan(&s.Iteration, &s.Timestamp, &s.URL, &s.Success, &errKind,
			&s.ServerIP, &s.EffectiveURL, &s.HTTPResponseCode,
			&s.NameLookupTime, &s.ConnectTime, &s.StartTransferTime, &s.TotalTime)
		if err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		if errKind.Valid {
			s.ErrorKind = errKind.String
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}
