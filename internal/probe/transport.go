package probe

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"net/http/httptrace"
	"sync"
	"time"
)

// DefaultMaxRedirects matches the libcurl redirect limit
const DefaultMaxRedirects = 30

// Info exposes the state of a completed request. Each query is independent
// and reports false when its value is not available.
type Info interface {
	PrimaryIP() (string, bool)
	EffectiveURL() (string, bool)
	ResponseCode() (int, bool)
	NameLookupTime() (float64, bool)
	ConnectTime() (float64, bool)
	StartTransferTime() (float64, bool)
	TotalTime() (float64, bool)
}

// Transport executes one configured GET request synchronously
type Transport interface {
	Perform(req *http.Request) (Info, error)
	Close()
}

// TransportOptions configures the HTTP transport
type TransportOptions struct {
	Timeout         time.Duration
	MaxRedirects    int
	FailOnHTTPError bool
}

// HTTPTransport performs requests with net/http and times them with httptrace
type HTTPTransport struct {
	client          *http.Client
	transport       *http.Transport
	failOnHTTPError bool
}

// NewHTTPTransport creates the transport shared by every probe of a session
func NewHTTPTransport(opts TransportOptions) (*HTTPTransport, error) {
	if opts.Timeout < 0 {
		return nil, newError(InvalidArguments, "init", "", fmt.Errorf("timeout must not be negative, got %s", opts.Timeout))
	}
	if opts.MaxRedirects < 0 {
		return nil, newError(InvalidArguments, "init", "", fmt.Errorf("max redirects must not be negative, got %d", opts.MaxRedirects))
	}

	maxRedirects := opts.MaxRedirects
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		TLSHandshakeTimeout: 10 * time.Second,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 1,
		DisableCompression:  true,
	}

	return &HTTPTransport{
		transport: transport,
		client: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) > maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		failOnHTTPError: opts.FailOnHTTPError,
	}, nil
}

// Perform executes req, drains the body and returns the collected info
func (t *HTTPTransport) Perform(req *http.Request) (Info, error) {
	info := &traceInfo{}
	req = req.WithContext(httptrace.WithClientTrace(req.Context(), info.clientTrace()))

	info.start = time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, newError(classify(err), "perform", req.URL.String(), err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		return nil, newError(classify(err), "read body", req.URL.String(), err)
	}

	info.mu.Lock()
	info.end = time.Now()
	info.code = resp.StatusCode
	if resp.Request != nil && resp.Request.URL != nil {
		info.effectiveURL = resp.Request.URL.String()
	}
	info.mu.Unlock()

	if t.failOnHTTPError && resp.StatusCode >= http.StatusBadRequest {
		return nil, newError(HTTPError, "perform", req.URL.String(), fmt.Errorf("server returned %s", resp.Status))
	}
	return info, nil
}

// Close releases idle connections held by the transport
func (t *HTTPTransport) Close() {
	t.transport.CloseIdleConnections()
}

// classify maps a net/http failure onto an ErrorKind
func classify(err error) ErrorKind {
	var opErr *net.OpError
	var dnsErr *net.DNSError

	switch {
	case errors.Is(err, fs.ErrPermission):
		return AccessDenied
	case errors.As(err, &opErr) && opErr.Op == "proxyconnect":
		if errors.As(opErr.Err, &dnsErr) {
			return ProxyResolutionFailed
		}
		return ConnectionFailed
	case errors.As(err, &dnsErr):
		return HostResolutionFailed
	case errors.As(err, &opErr) && opErr.Op == "dial":
		return ConnectionFailed
	default:
		return GenericFailure
	}
}

// traceInfo records httptrace events of one request, redirects included.
// Times are measured from the start of the request, as libcurl reports them.
type traceInfo struct {
	mu sync.Mutex

	start       time.Time
	end         time.Time
	dnsDone     time.Time
	connectDone time.Time
	gotConn     time.Time
	firstByte   time.Time
	reused      bool

	remoteIP     string
	effectiveURL string
	code         int
}

func (ti *traceInfo) clientTrace() *httptrace.ClientTrace {
	return &httptrace.ClientTrace{
		DNSDone: func(httptrace.DNSDoneInfo) {
			ti.mu.Lock()
			ti.dnsDone = time.Now()
			ti.mu.Unlock()
		},
		ConnectDone: func(network, addr string, err error) {
			if err != nil {
				return
			}
			ti.mu.Lock()
			ti.connectDone = time.Now()
			ti.mu.Unlock()
		},
		GotConn: func(conn httptrace.GotConnInfo) {
			ti.mu.Lock()
			defer ti.mu.Unlock()
			ti.gotConn = time.Now()
			ti.reused = conn.Reused
			if conn.Conn == nil {
				return
			}
			if ta, ok := conn.Conn.RemoteAddr().(*net.TCPAddr); ok {
				ti.remoteIP = ta.IP.String()
			} else if host, _, err := net.SplitHostPort(conn.Conn.RemoteAddr().String()); err == nil {
				ti.remoteIP = host
			}
		},
		GotFirstResponseByte: func() {
			ti.mu.Lock()
			ti.firstByte = time.Now()
			ti.mu.Unlock()
		},
	}
}

func (ti *traceInfo) since(t time.Time) float64 {
	return t.Sub(ti.start).Seconds()
}

func (ti *traceInfo) PrimaryIP() (string, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.remoteIP, ti.remoteIP != ""
}

func (ti *traceInfo) EffectiveURL() (string, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.effectiveURL, ti.effectiveURL != ""
}

func (ti *traceInfo) ResponseCode() (int, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	return ti.code, ti.code != 0
}

// NameLookupTime is zero when no lookup happened on an established
// connection (IP literal or reused connection).
func (ti *traceInfo) NameLookupTime() (float64, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	switch {
	case !ti.dnsDone.IsZero():
		return ti.since(ti.dnsDone), true
	case !ti.gotConn.IsZero():
		return 0, true
	default:
		return 0, false
	}
}

func (ti *traceInfo) ConnectTime() (float64, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	switch {
	case !ti.connectDone.IsZero():
		return ti.since(ti.connectDone), true
	case ti.reused:
		return 0, true
	default:
		return 0, false
	}
}

func (ti *traceInfo) StartTransferTime() (float64, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	if ti.firstByte.IsZero() {
		return 0, false
	}
	return ti.since(ti.firstByte), true
}

func (ti *traceInfo) TotalTime() (float64, bool) {
	ti.mu.Lock()
	defer ti.mu.Unlock()
	if ti.end.IsZero() {
		return 0, false
	}
	return ti.since(ti.end), true
}
