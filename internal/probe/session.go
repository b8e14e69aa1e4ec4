package probe

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"linkstat/internal/models"
)

// Session owns the transport used by every probe of one invocation.
// It is not safe for concurrent use; run one session per concurrent prober.
type Session struct {
	transport Transport
	log       *slog.Logger
}

// NewSession creates a session backed by the net/http transport
func NewSession(opts TransportOptions, log *slog.Logger) (*Session, error) {
	transport, err := NewHTTPTransport(opts)
	if err != nil {
		return nil, err
	}
	return NewSessionWithTransport(transport, log), nil
}

// NewSessionWithTransport creates a session around an existing transport
func NewSessionWithTransport(transport Transport, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{transport: transport, log: log}
}

// Close tears the transport down. Closing twice returns NotInitialized.
func (s *Session) Close() error {
	if s == nil || s.transport == nil {
		return newError(NotInitialized, "close", "", nil)
	}
	s.transport.Close()
	s.transport = nil
	return nil
}

// Probe performs one GET against rawURL with the given headers and extracts
// its metrics. headers may be nil.
func (s *Session) Probe(ctx context.Context, rawURL string, headers *HeaderSet) (models.Metrics, error) {
	if rawURL == "" {
		return models.Metrics{}, newError(InvalidArguments, "probe", "", errors.New("url is required"))
	}
	if s == nil || s.transport == nil {
		return models.Metrics{}, newError(NotInitialized, "probe", rawURL, nil)
	}

	target, err := normalizeURL(rawURL)
	if err != nil {
		return models.Metrics{}, newError(InvalidURLFormat, "probe", rawURL, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return models.Metrics{}, newError(InvalidURLFormat, "probe", rawURL, err)
	}
	if headers.Len() > 0 {
		if err := headers.apply(req); err != nil {
			return models.Metrics{}, newError(InvalidArguments, "attach headers", rawURL, err)
		}
	}

	info, err := s.transport.Perform(req)
	if err != nil {
		var pe *Error
		if errors.As(err, &pe) {
			return models.Metrics{}, err
		}
		return models.Metrics{}, newError(classify(err), "perform", rawURL, err)
	}

	metrics := fillMetrics(info)
	s.log.Debug("probe complete",
		"url", rawURL,
		"server_ip", metrics.ServerIP,
		"code", metrics.HTTPResponseCode,
		"total_time", metrics.TotalTime)
	return metrics, nil
}

// fillMetrics queries each field on its own; a missing value leaves the
// sentinel in place instead of failing the probe.
func fillMetrics(info Info) models.Metrics {
	m := models.Metrics{
		HTTPResponseCode:  models.Unavailable,
		NameLookupTime:    models.Unavailable,
		ConnectTime:       models.Unavailable,
		StartTransferTime: models.Unavailable,
		TotalTime:         models.Unavailable,
	}

	if ip, ok := info.PrimaryIP(); ok {
		m.ServerIP = boundedCopy(ip, models.IPBufferSize)
	}
	if u, ok := info.EffectiveURL(); ok {
		m.EffectiveURL = boundedCopy(u, models.EffectiveURLMaxLength)
	}
	if code, ok := info.ResponseCode(); ok {
		m.HTTPResponseCode = code
	}
	if v, ok := info.NameLookupTime(); ok {
		m.NameLookupTime = v
	}
	if v, ok := info.ConnectTime(); ok {
		m.ConnectTime = v
	}
	if v, ok := info.StartTransferTime(); ok {
		m.StartTransferTime = v
	}
	if v, ok := info.TotalTime(); ok {
		m.TotalTime = v
	}
	return m
}

// normalizeURL defaults scheme-less targets to http and an empty path to /,
// as libcurl does
func normalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New("unsupported scheme " + u.Scheme)
	}
	if u.Hostname() == "" {
		return "", errors.New("missing host")
	}
	if u.Path == "" && u.Opaque == "" {
		u.Path = "/"
	}
	return u.String(), nil
}
