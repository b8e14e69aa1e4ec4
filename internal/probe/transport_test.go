package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransportProbe(t *testing.T) {
	var gotHeader, gotUA, gotHost string
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Probe")
		gotUA = r.Header.Get("User-Agent")
		gotHost = r.Host
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(strings.Repeat("x", 1<<20)))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	s, err := NewSession(TransportOptions{MaxRedirects: DefaultMaxRedirects}, nil)
	require.NoError(t, err)
	defer s.Close()

	h := NewHeaderSet()
	require.NoError(t, h.Add("X-Probe: abc"))
	require.NoError(t, h.Add("User-Agent: linkstat-test"))
	require.NoError(t, h.Add("Host: virtual.example"))

	m, err := s.Probe(context.Background(), srv.URL+"/start", h)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", m.ServerIP)
	assert.Equal(t, srv.URL+"/final", m.EffectiveURL)
	assert.Equal(t, http.StatusOK, m.HTTPResponseCode)
	assert.Equal(t, "abc", gotHeader)
	assert.Equal(t, "linkstat-test", gotUA)
	assert.Equal(t, "virtual.example", gotHost)

	assert.GreaterOrEqual(t, m.NameLookupTime, 0.0)
	assert.GreaterOrEqual(t, m.ConnectTime, 0.0)
	assert.GreaterOrEqual(t, m.StartTransferTime, m.ConnectTime)
	assert.GreaterOrEqual(t, m.TotalTime, m.StartTransferTime)
}

func TestHTTPTransportReusesConnection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s, err := NewSession(TransportOptions{MaxRedirects: DefaultMaxRedirects}, nil)
	require.NoError(t, err)
	defer s.Close()

	for i := 0; i < 3; i++ {
		m, err := s.Probe(context.Background(), srv.URL, nil)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNoContent, m.HTTPResponseCode)
		assert.Equal(t, srv.URL+"/", m.EffectiveURL)
		assert.GreaterOrEqual(t, m.ConnectTime, 0.0)
		assert.GreaterOrEqual(t, m.TotalTime, 0.0)
	}
}

func TestHTTPTransportRedirectLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	}))
	defer srv.Close()

	s, err := NewSession(TransportOptions{MaxRedirects: 2}, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Probe(context.Background(), srv.URL, nil)
	assert.ErrorIs(t, err, ErrGeneric)
}

func TestHTTPTransportFailOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	lenient, err := NewSession(TransportOptions{}, nil)
	require.NoError(t, err)
	defer lenient.Close()

	m, err := lenient.Probe(context.Background(), srv.URL, nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, m.HTTPResponseCode)

	strict, err := NewSession(TransportOptions{FailOnHTTPError: true}, nil)
	require.NoError(t, err)
	defer strict.Close()

	_, err = strict.Probe(context.Background(), srv.URL, nil)
	assert.ErrorIs(t, err, ErrHTTP)
}

func TestHTTPTransportConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	addr := srv.URL
	srv.Close()

	s, err := NewSession(TransportOptions{}, nil)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Probe(context.Background(), addr, nil)
	assert.ErrorIs(t, err, ErrConnection)
}

func TestHTTPTransportCanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	s, err := NewSession(TransportOptions{}, nil)
	require.NoError(t, err)
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Probe(ctx, srv.URL, nil)
	assert.Error(t, err)
}
