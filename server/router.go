// Copyright (C) 2024, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package server

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"

	"github.com/ava-labs/avalanchego/utils/set"
	"github.com/gorilla/mux"
)

var (
	ErrInvalidPath    = errors.New("path must begin with /")
	ErrDuplicateRoute = errors.New("duplicate route")
)

// Wrapper wraps the server's composed handler chain. The daemon uses
// it to splice in instrumentation without touching route setup.
type Wrapper interface {
	WrapHandler(h http.Handler) http.Handler
}

// router mounts handlers at fixed absolute paths. The daemon owns the
// whole tree, so there is no per-service base url underneath.
type router struct {
	lock   sync.RWMutex
	mux    *mux.Router
	routes set.Set[string]
}

func newRouter() *router {
	return &router{
		mux: mux.NewRouter(),
	}
}

func (r *router) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	r.mux.ServeHTTP(writer, request)
}

func (r *router) AddRoute(path string, handler http.Handler) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !strings.HasPrefix(path, "/") {
		return ErrInvalidPath
	}
	if r.routes.Contains(path) {
		return ErrDuplicateRoute
	}
	r.routes.Add(path)

	r.mux.Handle(path, handler)
	return nil
}

// filterInvalidHosts only forwards requests whose Host header names an
// allowed host. IP literals always pass, so local operators are never
// locked out by DNS rebinding protection.
func filterInvalidHosts(handler http.Handler, allowedHosts []string) http.Handler {
	allowAllHosts := false
	hosts := set.Set[string]{}
	for _, host := range allowedHosts {
		if host == "*" {
			allowAllHosts = true
			break
		}
		hosts.Add(strings.ToLower(host))
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allowAllHosts {
			handler.ServeHTTP(w, r)
			return
		}

		host, _, err := net.SplitHostPort(r.Host)
		if err != nil {
			// No port present in the Host header.
			host = r.Host
		}

		if ip := net.ParseIP(host); ip != nil {
			handler.ServeHTTP(w, r)
			return
		}

		if hosts.Contains(strings.ToLower(host)) {
			handler.ServeHTTP(w, r)
			return
		}

		w.WriteHeader(http.StatusForbidden)
	})
}
