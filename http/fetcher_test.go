package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/TheOne1006/kbsite"
	kbhttp "github.com/TheOne1006/kbsite/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("body and request headers", func(t *testing.T) {
		t.Parallel()

		var ua, accept string
		u := serve(t, func(w http.ResponseWriter, r *http.Request) {
			ua, accept = r.Header.Get("User-Agent"), r.Header.Get("Accept")
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><body><h1>Install</h1></body></html>`))
		})

		got, err := kbhttp.NewFetcher(kbhttp.WithUserAgent("kb-test")).Fetch(context.Background(), u+"/docs/install")

		require.NoError(t, err)
		assert.Equal(t, `<html><body><h1>Install</h1></body></html>`, got)
		assert.Equal(t, "kb-test", ua)
		assert.Contains(t, accept, "text/html")
	})

	t.Run("latin-1 page is decoded", func(t *testing.T) {
		t.Parallel()

		u := serve(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
			_, _ = w.Write([]byte("<p>caf\xe9</p>"))
		})

		got, err := kbhttp.NewFetcher().Fetch(context.Background(), u)

		require.NoError(t, err)
		assert.Equal(t, "<p>café</p>", got)
	})

	t.Run("client timeout", func(t *testing.T) {
		t.Parallel()

		u := serve(t, func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		})

		_, err := kbhttp.NewFetcher(kbhttp.WithTimeout(10*time.Millisecond)).Fetch(context.Background(), u)

		assert.Error(t, err)
	})

	t.Run("custom client", func(t *testing.T) {
		t.Parallel()

		u := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})

		got, err := kbhttp.NewFetcher(kbhttp.WithClient(&http.Client{})).Fetch(context.Background(), u)

		require.NoError(t, err)
		assert.Equal(t, "ok", got)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()

		u := serve(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := kbhttp.NewFetcher().Fetch(ctx, u)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := kbhttp.NewFetcher().Fetch(context.Background(), "http://[::1")

		assert.Equal(t, kbsite.EINVALID, kbsite.ErrorCode(err))
	})

	t.Run("non-200 status", func(t *testing.T) {
		t.Parallel()

		u := serve(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})

		_, err := kbhttp.NewFetcher().Fetch(context.Background(), u+"/gone")

		var se *kbhttp.StatusError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, http.StatusNotFound, se.StatusCode)
		assert.Equal(t, u+"/gone: HTTP 404 Not Found", err.Error())
	})
}
