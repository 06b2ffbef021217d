package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGETSendsQueryAndHeaders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/price", r.URL.Path)
		assert.Equal(t, "TCS.NS", r.URL.Query().Get("symbol"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "scanner", r.Header.Get("X-Client"))
		w.Write([]byte(`{"price":"3845.10"}`))
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithHeader("X-Client", "scanner"), WithLogging(true))
	resp, err := c.GET(context.Background(), "/price", url.Values{"symbol": {"TCS.NS"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Price string `json:"price"`
	}
	require.NoError(t, resp.ParseJSON(&out))
	assert.Equal(t, "3845.10", out.Price)
}

func TestGETStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte("rate limited"))
	}))
	defer srv.Close()

	_, err := NewClient(WithBaseURL(srv.URL)).GET(context.Background(), "/price", nil)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusTooManyRequests, se.StatusCode)
	assert.Contains(t, se.Error(), "rate limited")
}

func TestGETTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond))
	_, err := c.GET(context.Background(), "/slow", nil)
	assert.Error(t, err)
}

func TestParseJSONError(t *testing.T) {
	r := &Response{Body: []byte("not json")}
	var v map[string]any
	assert.Error(t, r.ParseJSON(&v))
}

func TestWithHTTPClientKeepsTimeout(t *testing.T) {
	c := NewClient(WithTimeout(3*time.Second), WithHTTPClient(&http.Client{}))
	assert.Equal(t, 3*time.Second, c.httpClient.Timeout)
}
