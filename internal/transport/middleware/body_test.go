package middleware

import (
	"compress/gzip"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMaxBody(t *testing.T) {
	tests := []struct {
		name    string
		limit   int64
		body    string
		wantErr bool
	}{
		{"under limit", 64, `{"nome":"CORTE"}`, false},
		{"over limit", 8, `{"nome":"CORTE LASER"}`, true},
		{"disabled", 0, strings.Repeat("x", 4096), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var readErr error
			h := MaxBody(tt.limit)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				_, readErr = io.ReadAll(r.Body)
			}))
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/orbis/etapas", strings.NewReader(tt.body)))

			var maxErr *http.MaxBytesError
			if got := errors.As(readErr, &maxErr); got != tt.wantErr {
				t.Errorf("MaxBytesError = %v, want %v (err: %v)", got, tt.wantErr, readErr)
			}
		})
	}
}

func TestGzip(t *testing.T) {
	payload := `{"items":[` + strings.Repeat(`{"nome":"CORTE LASER","centros":"MP10"},`, 100) + `{}]}`
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, payload) //nolint:errcheck
	})

	t.Run("compresses when accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orbis/etapas", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		Gzip(true)(handler).ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "gzip" {
			t.Fatalf("Content-Encoding = %q, want gzip", rec.Header().Get("Content-Encoding"))
		}
		zr, err := gzip.NewReader(rec.Body)
		if err != nil {
			t.Fatal(err)
		}
		got, err := io.ReadAll(zr)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != payload {
			t.Error("decompressed body differs from payload")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/orbis/etapas", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		Gzip(false)(handler).ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "" {
			t.Errorf("unexpected Content-Encoding %q", rec.Header().Get("Content-Encoding"))
		}
		if rec.Body.String() != payload {
			t.Error("body should pass through unchanged")
		}
	})
}
