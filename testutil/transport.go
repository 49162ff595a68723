package testutil

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"
)

// ErrTransport is returned by RecordingTransport when configured to fail.
var ErrTransport = errors.New("testutil: transport failure")

// RecordedRequest is a snapshot of a request sent through RecordingTransport.
type RecordedRequest struct {
	Method string
	URL    string
	Header http.Header
	Body   string
}

// RecordingTransport is an HTTP client stub. It records every request and
// answers with a fixed status and body. It satisfies the Do(*http.Request)
// interface used by the dispatcher and is safe for concurrent use.
type RecordingTransport struct {
	// Status defaults to 200.
	Status int
	Body   string

	// FailAlternate makes every second call (the 2nd, 4th, ...) answer 404.
	FailAlternate bool

	// FailOn lists 1-based call numbers that answer 500.
	FailOn []int

	// ErrOn lists 1-based call numbers that return ErrTransport.
	ErrOn []int

	// Responder, when set, overrides Status/Body for each call.
	Responder func(call int, req *http.Request) (int, string)

	mu       sync.Mutex
	requests []RecordedRequest
}

// Do implements the dispatcher's HTTP client interface.
func (r *RecordingTransport) Do(req *http.Request) (*http.Response, error) {
	rec := RecordedRequest{
		Method: req.Method,
		URL:    req.URL.String(),
		Header: req.Header.Clone(),
	}
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		req.Body.Close()
		rec.Body = string(data)
	}

	r.mu.Lock()
	r.requests = append(r.requests, rec)
	call := len(r.requests)
	r.mu.Unlock()

	if contains(r.ErrOn, call) {
		return nil, ErrTransport
	}

	status := r.Status
	if status == 0 {
		status = http.StatusOK
	}
	body := r.Body
	switch {
	case r.Responder != nil:
		status, body = r.Responder(call, req)
	case contains(r.FailOn, call):
		status = http.StatusInternalServerError
	case r.FailAlternate && call%2 == 0:
		status = http.StatusNotFound
	}

	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
		Request:    req,
	}, nil
}

// Calls returns how many requests were sent.
func (r *RecordingTransport) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.requests)
}

// Requests returns a copy of the recorded requests in send order.
func (r *RecordingTransport) Requests() []RecordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]RecordedRequest, len(r.requests))
	copy(out, r.requests)
	return out
}

func contains(list []int, n int) bool {
	for _, v := range list {
		if v == n {
			return true
		}
	}
	return false
}
