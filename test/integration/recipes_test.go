//go:build integration

package integration

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSearchForwardsPagingToUpstream(t *testing.T) {
	var captured atomic.Value // url.Values

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"id":1}],"totalResults":9}`))
	}))
	t.Cleanup(upstream.Close)

	server := newServer(t, upstream.URL)

	resp, raw := doJSON(t, http.MethodGet,
		server.URL+"/api/recipes/complex?query=tomato%2Conion&page=2&limit=5", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"results":[{"id":1}],"totalResults":9,"page":2,"limit":5}`, string(raw))

	params, ok := captured.Load().(url.Values)
	require.True(t, ok)
	require.Equal(t, "5", params.Get("offset"))
	require.Equal(t, "5", params.Get("number"))
	require.Equal(t, "tomato,onion", params.Get("query"))
}

func TestSearchDefaultsForNonNumericParams(t *testing.T) {
	var captured atomic.Value

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.Store(r.URL.Query())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[],"totalResults":0}`))
	}))
	t.Cleanup(upstream.Close)

	server := newServer(t, upstream.URL)

	resp, raw := doJSON(t, http.MethodGet,
		server.URL+"/api/recipes/complex?query=tomato&page=abc&limit=", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.JSONEq(t, `{"results":[],"totalResults":0,"page":1,"limit":5}`, string(raw))

	params, ok := captured.Load().(url.Values)
	require.True(t, ok)
	require.Equal(t, "0", params.Get("offset"))
	require.Equal(t, "5", params.Get("number"))
}

func TestUpstreamFailureIsOpaque(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded, key sk-secret", http.StatusPaymentRequired)
	}))
	t.Cleanup(upstream.Close)

	server := newServer(t, upstream.URL)

	resp, raw := doJSON(t, http.MethodGet, server.URL+"/api/recipes/complex?query=tomato", nil, "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error":"An error occurred while fetching recipes."}`, string(raw))

	resp, raw = doJSON(t, http.MethodGet, server.URL+"/api/recipes/42/details", nil, "")
	require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.JSONEq(t, `{"error":"Could not fetch recipe details."}`, string(raw))
}
