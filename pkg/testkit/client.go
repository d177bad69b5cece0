// Package testkit drives an http.Handler from tests and decodes the
// response envelope.
//
//	c := testkit.New(t, handler)
//	res := c.WithBearer(token).Do(http.MethodPost, "/add-order", map[string]any{"total": 10})
//	res.AssertStatus(http.StatusCreated)
//	assert.Equal(t, "Order added successfully and cart cleared", res.Envelope().Message)
package testkit

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Client sends requests straight to a handler, without a network.
type Client struct {
	t       *testing.T
	h       http.Handler
	headers http.Header
}

func New(t *testing.T, h http.Handler) *Client {
	return &Client{t: t, h: h, headers: http.Header{}}
}

// WithHeader returns a copy of c that sends key: value on every request.
func (c *Client) WithHeader(key, value string) *Client {
	cp := &Client{t: c.t, h: c.h, headers: c.headers.Clone()}
	cp.headers.Set(key, value)
	return cp
}

// WithBearer returns a copy of c that authenticates with token.
func (c *Client) WithBearer(token string) *Client {
	return c.WithHeader("Authorization", "Bearer "+token)
}

// Do sends a request. body may be nil, a string or []byte sent verbatim,
// or any value encoded as JSON.
func (c *Client) Do(method, path string, body any) *Response {
	c.t.Helper()

	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = bytes.NewReader([]byte(b))
	case []byte:
		rd = bytes.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err, "testkit: encode request body")
		rd = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.Send(req)
}

// Send serves a prepared request, adding c's headers.
func (c *Client) Send(req *http.Request) *Response {
	c.t.Helper()
	for k, vs := range c.headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return &Response{ResponseRecorder: rec, t: c.t}
}

// Envelope is the decoded response body.
type Envelope struct {
	Status  int             `json:"status"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors"`
}

// Response wraps the recorded response.
type Response struct {
	*httptest.ResponseRecorder
	t *testing.T
}

// AssertStatus fails the test (and stops it) when the status differs.
func (r *Response) AssertStatus(want int) *Response {
	r.t.Helper()
	require.Equal(r.t, want, r.Code, "body: %s", r.Body.String())
	return r
}

// Envelope decodes the JSON envelope.
func (r *Response) Envelope() Envelope {
	r.t.Helper()
	var env Envelope
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &env), "testkit: body is not an envelope: %s", r.Body.String())
	return env
}

// Data decodes the envelope's data field into dest.
func (r *Response) Data(dest any) {
	r.t.Helper()
	require.NoError(r.t, json.Unmarshal(r.Envelope().Data, dest), "testkit: decode data")
}

// AssertJSONEqual compares two JSON documents after decoding both, so key
// order and whitespace never matter.
func AssertJSONEqual(t *testing.T, expected, actual []byte) bool {
	t.Helper()
	var exp, act any
	require.NoError(t, json.Unmarshal(expected, &exp), "testkit: expected is not valid JSON")
	if !assert.NoError(t, json.Unmarshal(actual, &act), "testkit: actual is not valid JSON: %s", string(actual)) {
		return false
	}
	return assert.Equal(t, exp, act)
}
