package v1

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"sync"
)

// Request is the view of an incoming request handed to mock handlers.
type Request struct {
	Method string
	URL    string
	Path   string
	Header http.Header
	Body   string
}

// Response is a received response, or the definition of a mock response.
type Response struct {
	StatusCode int
	Body       string
	Header     map[string]string
}

// NewRequestWrapper creates a wrapper from http.Request.
func NewRequestWrapper(r *http.Request) Request {
	bodyBytes, _ := io.ReadAll(r.Body)
	return Request{
		Method: r.Method,
		URL:    r.URL.String(),
		Path:   r.URL.Path,
		Header: r.Header,
		Body:   string(bodyBytes),
	}
}

// NewResponse Helper to create a response for mocks.
func NewResponse(code int, body string) Response {
	return Response{
		StatusCode: code,
		Body:       body,
		Header:     make(map[string]string),
	}
}

// NewJSONResponse is NewResponse with a JSON content type.
func NewJSONResponse(code int, body string) Response {
	resp := NewResponse(code, body)
	resp.Header["Content-Type"] = "application/json"
	return resp
}

// MockHandlerFunc defines the handler function signature.
type MockHandlerFunc func(Request) Response

// MockServer is an in-process HTTP server answering from a route table.
// A route ending in "/*" matches every path below its prefix; exact routes win.
type MockServer struct {
	server   *http.Server
	listener net.Listener
	handlers map[string]MockHandlerFunc
	mu       sync.RWMutex
}

// RunMockServer starts a mock server on the specified port with given handlers.
// port can be ":8080", "8080" or "host:port"; port 0 picks a free port (see Addr).
func RunMockServer(port string, handlers map[string]MockHandlerFunc) *MockServer {
	RecordAction(fmt.Sprintf("Mock Start: %s", port), func() { RunMockServer(port, handlers) })
	if IsDryRun() {
		return &MockServer{}
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	ms := &MockServer{
		handlers: make(map[string]MockHandlerFunc, len(handlers)),
	}
	for k, v := range handlers {
		ms.handlers[k] = v
	}

	ln, err := net.Listen("tcp", port)
	if err != nil {
		Fail("Mock server cannot listen on %s: %v", port, err)
	}
	ms.listener = ln

	mux := http.NewServeMux()
	mux.HandleFunc("/", ms.handle)
	ms.server = &http.Server{Handler: mux}

	Logf(LogTypeMock, "Starting Server on %s", ln.Addr())
	go func() {
		if err := ms.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			Log(LogTypeMock, "Server failed", fmt.Sprintf("%v", err))
		}
	}()

	return ms
}

// Addr returns the listening address, e.g. "[::]:41234".
func (ms *MockServer) Addr() string {
	if ms == nil || ms.listener == nil {
		return ""
	}
	return ms.listener.Addr().String()
}

// URL returns a base URL reachable from the local host.
func (ms *MockServer) URL() string {
	if ms == nil || ms.listener == nil {
		return ""
	}
	_, port, _ := net.SplitHostPort(ms.Addr())
	return "http://127.0.0.1:" + port
}

// UpdateMockServer merges handlers into the server's routes; existing paths are overwritten.
func UpdateMockServer(ms *MockServer, handlers map[string]MockHandlerFunc) {
	RecordAction("Mock Update", func() { UpdateMockServer(ms, handlers) })
	if IsDryRun() {
		return
	}
	Log(LogTypeMock, "Updating server handlers", "")
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if ms.handlers == nil {
		ms.handlers = make(map[string]MockHandlerFunc)
	}
	for k, v := range handlers {
		ms.handlers[k] = v
	}
}

func (ms *MockServer) lookup(path string) (MockHandlerFunc, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	if h, ok := ms.handlers[path]; ok {
		return h, true
	}
	var (
		best    MockHandlerFunc
		bestLen = -1
	)
	for route, h := range ms.handlers {
		prefix, ok := strings.CutSuffix(route, "*")
		if !ok || !strings.HasPrefix(path, prefix) {
			continue
		}
		if len(prefix) > bestLen {
			best, bestLen = h, len(prefix)
		}
	}
	return best, best != nil
}

func (ms *MockServer) handle(w http.ResponseWriter, r *http.Request) {
	handler, ok := ms.lookup(r.URL.Path)
	if !ok {
		Logf(LogTypeMock, "Handled Request: %s %s -> 404 Not Found", r.Method, r.URL.Path)
		http.NotFound(w, r)
		return
	}

	resp := handler(NewRequestWrapper(r))

	Log(LogTypeMock, fmt.Sprintf("Handled Request: %s %s -> %d", r.Method, r.URL.Path, resp.StatusCode), fmt.Sprintf("Response Body: %s\nHeaders: %v", resp.Body, resp.Header))

	for k, v := range resp.Header {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	w.Write([]byte(resp.Body))
}

// Stop stops the mock server.
func (ms *MockServer) Stop() {
	if ms != nil && ms.server != nil {
		Log(LogTypeMock, "Stopping server", ms.Addr())
		ms.server.Close()
	}
}
