// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/stretchr/testify/require"
)

func TestRouterRoutes(t *testing.T) {
	require := require.New(t)

	r := newRouter()
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	require.ErrorIs(r.AddRoute("rpc", handler), ErrInvalidPath)
	require.NoError(r.AddRoute("/rpc", handler))
	require.ErrorIs(r.AddRoute("/rpc", handler), ErrDuplicateRoute)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://localhost/rpc", nil))
	require.Equal(http.StatusTeapot, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "http://localhost/other", nil))
	require.Equal(http.StatusNotFound, rec.Code)
}

func TestFilterInvalidHosts(t *testing.T) {
	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name         string
		allowedHosts []string
		host         string
		want         int
	}{
		{
			name:         "wildcard admits everything",
			allowedHosts: []string{"*"},
			host:         "evil.example.com",
			want:         http.StatusOK,
		},
		{
			name:         "allowed host admitted",
			allowedHosts: []string{"vault.example.com"},
			host:         "vault.example.com:8480",
			want:         http.StatusOK,
		},
		{
			name:         "case insensitive",
			allowedHosts: []string{"Vault.Example.Com"},
			host:         "vault.example.com",
			want:         http.StatusOK,
		},
		{
			name:         "other host refused",
			allowedHosts: []string{"vault.example.com"},
			host:         "evil.example.com",
			want:         http.StatusForbidden,
		},
		{
			name:         "ip literal admitted",
			allowedHosts: []string{"vault.example.com"},
			host:         "127.0.0.1:8480",
			want:         http.StatusOK,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			filtered := filterInvalidHosts(inner, tt.allowedHosts)
			req := httptest.NewRequest(http.MethodGet, "http://localhost/", nil)
			req.Host = tt.host
			rec := httptest.NewRecorder()
			filtered.ServeHTTP(rec, req)
			require.Equal(tt.want, rec.Code)
		})
	}
}

type headerWrapper struct {
	key, value string
}

func (h *headerWrapper) WrapHandler(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(h.key, h.value)
		handler.ServeHTTP(w, r)
	})
}

func TestServerRoutes(t *testing.T) {
	require := require.New(t)

	s, err := New(
		logging.NoLog{},
		nil,
		HTTPConfig{},
		[]string{"*"},
		[]string{"*"},
		time.Second,
		&headerWrapper{key: "X-Test", value: "wrapped"},
	)
	require.NoError(err)

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong"))
	})
	require.NoError(s.AddRoute("/rpc", handler))

	req := httptest.NewRequest(http.MethodGet, "http://localhost/rpc", nil)
	rec := httptest.NewRecorder()
	s.(*server).srv.Handler.ServeHTTP(rec, req)
	require.Equal(http.StatusOK, rec.Code)
	require.Equal("pong", rec.Body.String())
	require.Equal("wrapped", rec.Header().Get("X-Test"))
}
