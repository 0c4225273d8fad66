package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		statusCode int
		wantErr    bool
	}{
		{name: "success", body: "<html><body>ok</body></html>", statusCode: http.StatusOK},
		{name: "server error", body: "error", statusCode: http.StatusInternalServerError, wantErr: true},
		{name: "not found", body: "not found", statusCode: http.StatusNotFound, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			f := NewHTTPFetcher(10*time.Second, "")
			res, err := f.Fetch(context.Background(), server.URL, Options{VerifySSL: true})
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.statusCode, res.StatusCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.body, string(res.Body))
			assert.Equal(t, http.StatusOK, res.StatusCode)
			assert.Equal(t, server.URL, res.URL)
		})
	}
}

func TestHTTPFetcher_Headers(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(time.Second, "engine-agent")
	_, err := f.Fetch(context.Background(), server.URL, Options{})
	require.NoError(t, err)
	assert.Equal(t, "engine-agent", got.Get("User-Agent"))
	assert.NotEmpty(t, got.Get("Accept-Language"))

	_, err = f.Fetch(context.Background(), server.URL, Options{UserAgent: "feed-agent", Headers: map[string]string{"Referer": "https://x.com/"}})
	require.NoError(t, err)
	assert.Equal(t, "feed-agent", got.Get("User-Agent"))
	assert.Equal(t, "https://x.com/", got.Get("Referer"))
}

func TestHTTPFetcher_Redirect(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	res, err := NewHTTPFetcher(time.Second, "").Fetch(context.Background(), server.URL+"/old", Options{})
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/new", res.URL)
	assert.Equal(t, "moved", string(res.Body))
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer server.Close()

	f := NewHTTPFetcher(50*time.Millisecond, "")
	start := time.Now()
	_, err := f.Fetch(context.Background(), server.URL, Options{})
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewHTTPFetcher(time.Minute, "").Fetch(ctx, server.URL, Options{})
	require.Error(t, err)
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	f := NewHTTPFetcher(time.Second, "")
	_, err := f.Fetch(context.Background(), "not a url", Options{})
	require.Error(t, err)
	_, err = f.Fetch(context.Background(), "://bad", Options{})
	require.Error(t, err)
}

func TestHTTPFetcher_InsecureTLS(t *testing.T) {
	server := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secure"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(time.Second, "")
	_, err := f.Fetch(context.Background(), server.URL, Options{VerifySSL: true})
	require.Error(t, err, "self-signed certificate is rejected when verification is on")

	res, err := f.Fetch(context.Background(), server.URL, Options{VerifySSL: false})
	require.NoError(t, err)
	assert.Equal(t, "secure", string(res.Body))
}
