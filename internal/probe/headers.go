package probe

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/net/http/httpguts"
)

// HeaderSet accumulates raw "Name: value" header strings in insertion order.
// A nil *HeaderSet is an absent handle; an empty set means "no headers".
type HeaderSet struct {
	headers []string
}

// NewHeaderSet creates an empty header set
func NewHeaderSet() *HeaderSet {
	return &HeaderSet{}
}

// Add appends one header string. Duplicates are kept.
func (h *HeaderSet) Add(header string) error {
	if h == nil || header == "" {
		return newError(InvalidArguments, "add header", "", errors.New("header set and header string are required"))
	}
	h.headers = append(h.headers, header)
	return nil
}

// Clear releases all headers. Clearing an empty set is a no-op.
func (h *HeaderSet) Clear() error {
	if h == nil {
		return newError(InvalidArguments, "clear headers", "", errors.New("header set is nil"))
	}
	h.headers = nil
	return nil
}

// Len returns the number of accumulated headers
func (h *HeaderSet) Len() int {
	if h == nil {
		return 0
	}
	return len(h.headers)
}

// Values returns a copy of the headers in insertion order
func (h *HeaderSet) Values() []string {
	if h.Len() == 0 {
		return nil
	}
	out := make([]string, len(h.headers))
	copy(out, h.headers)
	return out
}

// apply writes the headers onto an outgoing request using curl conventions:
// "Name: value" sets, "Name:" suppresses a header the transport would add, and
// "Name;" sends the header with an empty value. Host goes to req.Host since
// net/http ignores it in the header map.
func (h *HeaderSet) apply(req *http.Request) error {
	for _, raw := range h.Values() {
		name, value, remove, err := parseHeader(raw)
		if err != nil {
			return err
		}
		key := http.CanonicalHeaderKey(name)
		switch {
		case key == "Host":
			// an empty Host falls back to the URL host
			req.Host = value
		case remove && key == "User-Agent":
			// net/http omits User-Agent only when it is present and empty
			req.Header[key] = []string{""}
		case remove:
			req.Header.Del(key)
		default:
			req.Header.Add(key, value)
		}
	}
	return nil
}

func parseHeader(raw string) (name, value string, remove bool, err error) {
	if idx := strings.IndexByte(raw, ':'); idx >= 0 {
		name = strings.TrimSpace(raw[:idx])
		value = strings.TrimSpace(raw[idx+1:])
		remove = value == ""
	} else if strings.HasSuffix(raw, ";") {
		name = strings.TrimSpace(strings.TrimSuffix(raw, ";"))
	} else {
		return "", "", false, fmt.Errorf("header %q has no name/value separator", raw)
	}

	if !httpguts.ValidHeaderFieldName(name) {
		return "", "", false, fmt.Errorf("invalid header name %q", name)
	}
	if !httpguts.ValidHeaderFieldValue(value) {
		return "", "", false, fmt.Errorf("invalid value for header %q", name)
	}
	return name, value, remove, nil
}
