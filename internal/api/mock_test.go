package api

import (
	"io"
	"strings"

	fhttp "github.com/bogdanfinn/fhttp"
)

// MockResponseBody is a ReadCloser that simulates reading response data
type MockResponseBody struct {
	data   []byte
	pos    int
	closed bool
}

// NewMockResponseBody creates a new MockResponseBody with the given data
func NewMockResponseBody(data []byte) *MockResponseBody {
	return &MockResponseBody{data: data, pos: 0}
}

// Read implements the io.Reader interface
func (m *MockResponseBody) Read(p []byte) (n int, err error) {
	if m.pos >= len(m.data) {
		return 0, io.EOF
	}
	n = copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

// Close implements the io.Closer interface
func (m *MockResponseBody) Close() error {
	m.closed = true
	return nil
}

// MockHttpClient is a mock Doer that records the last request
type MockHttpClient struct {
	Response *fhttp.Response
	Err      error

	LastRequest *fhttp.Request
	LastBody    string
	Calls       int
	IdleClosed  bool
}

// Do implements the Doer interface
func (m *MockHttpClient) Do(req *fhttp.Request) (*fhttp.Response, error) {
	m.Calls++
	m.LastRequest = req
	if req.Body != nil {
		data, _ := io.ReadAll(req.Body)
		m.LastBody = string(data)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Response, nil
}

// CloseIdleConnections mirrors tls_client.HttpClient
func (m *MockHttpClient) CloseIdleConnections() {
	m.IdleClosed = true
}

// NewMockResponse builds a response with the given status and body
func NewMockResponse(statusCode int, body string) *fhttp.Response {
	return &fhttp.Response{
		StatusCode: statusCode,
		Header:     fhttp.Header{"Content-Type": []string{"application/json"}},
		Body:       NewMockResponseBody([]byte(body)),
	}
}

// newMockClient returns a Client wired to a MockHttpClient
func newMockClient(statusCode int, body string) (*Client, *MockHttpClient) {
	mock := &MockHttpClient{Response: NewMockResponse(statusCode, body)}
	client, err := NewClient(WithHTTPClient(mock))
	if err != nil {
		panic(err)
	}
	return client, mock
}

// bigBody returns a body of n bytes
func bigBody(n int) string {
	return strings.Repeat("x", n)
}
