package models

import "time"

const (
	// IPBufferSize is the size of the server IP buffer, terminator included
	IPBufferSize = 50
	// EffectiveURLMaxLength is the size of the effective URL buffer, terminator included
	EffectiveURLMaxLength = 2000
)

// Unavailable marks a numeric field whose value could not be determined
const Unavailable = -1

// Metrics represents the measurements taken from a single GET response
type Metrics struct {
	ServerIP          string  `json:"server_ip"`
	EffectiveURL      string  `json:"effective_url"`
	HTTPResponseCode  int     `json:"http_response_code"`
	NameLookupTime    float64 `json:"name_lookup_time"`    // seconds
	ConnectTime       float64 `json:"connect_time"`        // seconds
	StartTransferTime float64 `json:"start_transfer_time"` // seconds
	TotalTime         float64 `json:"total_time"`          // seconds
}

// Aggregate holds timings averaged over Iterations probes
type Aggregate struct {
	Metrics
	Iterations int `json:"iterations"`
}

// Sample is one probe outcome as recorded in the sample log
type Sample struct {
	Iteration int       `json:"iteration"`
	Timestamp time.Time `json:"timestamp"`
	URL       string    `json:"url"`
	Success   bool      `json:"success"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Metrics
}
