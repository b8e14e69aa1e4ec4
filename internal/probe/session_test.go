package probe

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linkstat/internal/models"
)

// stubInfo reports fixed values; fields listed in missing are unavailable.
type stubInfo struct {
	ip            string
	url           string
	code          int
	lookup        float64
	connect       float64
	startTransfer float64
	total         float64
	missing       map[string]bool
}

func (s stubInfo) PrimaryIP() (string, bool)          { return s.ip, !s.missing["ip"] }
func (s stubInfo) EffectiveURL() (string, bool)       { return s.url, !s.missing["url"] }
func (s stubInfo) ResponseCode() (int, bool)          { return s.code, !s.missing["code"] }
func (s stubInfo) NameLookupTime() (float64, bool)    { return s.lookup, !s.missing["lookup"] }
func (s stubInfo) ConnectTime() (float64, bool)       { return s.connect, !s.missing["connect"] }
func (s stubInfo) StartTransferTime() (float64, bool) { return s.startTransfer, !s.missing["start"] }
func (s stubInfo) TotalTime() (float64, bool)         { return s.total, !s.missing["total"] }

type stubTransport struct {
	info     Info
	err      error
	requests []*http.Request
	closed   int
}

func (s *stubTransport) Perform(req *http.Request) (Info, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return nil, s.err
	}
	return s.info, nil
}

func (s *stubTransport) Close() { s.closed++ }

func fixedInfo() stubInfo {
	return stubInfo{
		ip:            "1.2.3.4",
		url:           "http://example.com/",
		code:          200,
		lookup:        0.1,
		connect:       0.2,
		startTransfer: 0.3,
		total:         0.4,
	}
}

func TestSessionProbeExtractsMetrics(t *testing.T) {
	transport := &stubTransport{info: fixedInfo()}
	s := NewSessionWithTransport(transport, nil)

	m, err := s.Probe(context.Background(), "example.com", nil)
	require.NoError(t, err)

	assert.Equal(t, models.Metrics{
		ServerIP:          "1.2.3.4",
		EffectiveURL:      "http://example.com/",
		HTTPResponseCode:  200,
		NameLookupTime:    0.1,
		ConnectTime:       0.2,
		StartTransferTime: 0.3,
		TotalTime:         0.4,
	}, m)

	require.Len(t, transport.requests, 1)
	assert.Equal(t, http.MethodGet, transport.requests[0].Method)
	assert.Equal(t, "http://example.com/", transport.requests[0].URL.String())
}

func TestSessionProbePartialExtraction(t *testing.T) {
	info := fixedInfo()
	info.missing = map[string]bool{"ip": true, "code": true, "connect": true, "total": true}
	s := NewSessionWithTransport(&stubTransport{info: info}, nil)

	m, err := s.Probe(context.Background(), "http://example.com", nil)
	require.NoError(t, err)

	assert.Equal(t, "", m.ServerIP)
	assert.Equal(t, "http://example.com/", m.EffectiveURL)
	assert.Equal(t, models.Unavailable, m.HTTPResponseCode)
	assert.Equal(t, 0.1, m.NameLookupTime)
	assert.Equal(t, float64(models.Unavailable), m.ConnectTime)
	assert.Equal(t, 0.3, m.StartTransferTime)
	assert.Equal(t, float64(models.Unavailable), m.TotalTime)
}

func TestSessionProbeTruncatesIdentity(t *testing.T) {
	info := fixedInfo()
	info.ip = strings.Repeat("9", models.IPBufferSize+1)
	info.url = "http://example.com/" + strings.Repeat("p", models.EffectiveURLMaxLength)
	s := NewSessionWithTransport(&stubTransport{info: info}, nil)

	m, err := s.Probe(context.Background(), "example.com", nil)
	require.NoError(t, err)
	assert.Len(t, m.ServerIP, models.IPBufferSize-1)
	assert.Len(t, m.EffectiveURL, models.EffectiveURLMaxLength-1)
}

func TestSessionProbeAttachesHeaders(t *testing.T) {
	transport := &stubTransport{info: fixedInfo()}
	s := NewSessionWithTransport(transport, nil)

	h := NewHeaderSet()
	require.NoError(t, h.Add("X-First: 1"))
	require.NoError(t, h.Add("X-Second: 2"))

	_, err := s.Probe(context.Background(), "example.com", h)
	require.NoError(t, err)
	require.Len(t, transport.requests, 1)
	assert.Equal(t, "1", transport.requests[0].Header.Get("X-First"))
	assert.Equal(t, "2", transport.requests[0].Header.Get("X-Second"))
}

func TestSessionProbeConfigurationErrors(t *testing.T) {
	badHeaders := NewHeaderSet()
	require.NoError(t, badHeaders.Add("not a header"))

	tests := []struct {
		name    string
		url     string
		headers *HeaderSet
		want    ErrorKind
	}{
		{name: "empty url", url: "", want: InvalidArguments},
		{name: "unsupported scheme", url: "ftp://example.com", want: InvalidURLFormat},
		{name: "missing host", url: "http://", want: InvalidURLFormat},
		{name: "bad host", url: "http://exa mple.com", want: InvalidURLFormat},
		{name: "bad header", url: "example.com", headers: badHeaders, want: InvalidArguments},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := &stubTransport{info: fixedInfo()}
			s := NewSessionWithTransport(transport, nil)

			m, err := s.Probe(context.Background(), tt.url, tt.headers)
			require.Error(t, err)
			assert.Equal(t, tt.want, KindOf(err))
			assert.Equal(t, models.Metrics{}, m)
			assert.Empty(t, transport.requests, "transport must not run after a configuration failure")
		})
	}
}

func TestSessionProbeTransportErrors(t *testing.T) {
	t.Run("typed error passes through", func(t *testing.T) {
		s := NewSessionWithTransport(&stubTransport{err: newError(HostResolutionFailed, "perform", "x", nil)}, nil)
		_, err := s.Probe(context.Background(), "example.com", nil)
		assert.ErrorIs(t, err, ErrHostResolution)
	})

	t.Run("plain error is classified", func(t *testing.T) {
		s := NewSessionWithTransport(&stubTransport{err: errors.New("boom")}, nil)
		_, err := s.Probe(context.Background(), "example.com", nil)
		assert.ErrorIs(t, err, ErrGeneric)
	})
}

func TestSessionLifecycle(t *testing.T) {
	transport := &stubTransport{info: fixedInfo()}
	s := NewSessionWithTransport(transport, nil)

	require.NoError(t, s.Close())
	assert.Equal(t, 1, transport.closed)

	err := s.Close()
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = s.Probe(context.Background(), "example.com", nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Empty(t, transport.requests)

	var nilSession *Session
	_, err = nilSession.Probe(context.Background(), "example.com", nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}

func TestNewSessionRejectsBadOptions(t *testing.T) {
	_, err := NewSession(TransportOptions{Timeout: -1}, nil)
	assert.ErrorIs(t, err, ErrInvalidArguments)

	_, err = NewSession(TransportOptions{MaxRedirects: -1}, nil)
	assert.ErrorIs(t, err, ErrInvalidArguments)

	s, err := NewSession(TransportOptions{MaxRedirects: DefaultMaxRedirects}, nil)
	require.NoError(t, err)
	assert.NoError(t, s.Close())
}
