package integration

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
)

// MockFlakyServer simulates a service with configurable failure behavior:
// a number of failing responses before recovery, throttling responses and
// per-endpoint status codes.
type MockFlakyServer struct {
	server       *httptest.Server
	requestCount int32

	mu           sync.RWMutex
	failuresLeft map[string]int
	statusCodes  map[string]int
}

// NewMockFlakyServer creates a server whose endpoints succeed unless
// configured otherwise
func NewMockFlakyServer() *MockFlakyServer {
	m := &MockFlakyServer{
		failuresLeft: make(map[string]int),
		statusCodes:  make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", m.handle)

	m.server = httptest.NewServer(mux)
	return m
}

// URL returns the server's base URL
func (m *MockFlakyServer) URL() string {
	return m.server.URL
}

// Close shuts the server down
func (m *MockFlakyServer) Close() {
	m.server.Close()
}

// RequestCount returns the number of requests seen so far
func (m *MockFlakyServer) RequestCount() int {
	return int(atomic.LoadInt32(&m.requestCount))
}

// ResetCounters resets the request counter
func (m *MockFlakyServer) ResetCounters() {
	atomic.StoreInt32(&m.requestCount, 0)
}

// FailTimes configures the path to answer with the given status code for
// the next n requests, succeeding afterwards
func (m *MockFlakyServer) FailTimes(path string, statusCode, n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failuresLeft[path] = n
	m.statusCodes[path] = statusCode
}

// AlwaysFail configures the path to answer with the given status code on
// every request
func (m *MockFlakyServer) AlwaysFail(path string, statusCode int) {
	m.FailTimes(path, statusCode, -1)
}

func (m *MockFlakyServer) handle(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt32(&m.requestCount, 1)

	m.mu.Lock()
	left, configured := m.failuresLeft[r.URL.Path]
	code := m.statusCodes[r.URL.Path]
	if configured && left > 0 {
		m.failuresLeft[r.URL.Path] = left - 1
	}
	m.mu.Unlock()

	if configured && left != 0 {
		if code == http.StatusTooManyRequests {
			w.Header().Set("Retry-After", "1")
		}
		http.Error(w, http.StatusText(code), code)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"ok":true}`))
}
