package repository

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/require"
)

func newFxTestRepository(t *testing.T, handler http.HandlerFunc) (*fxRateRepositoryHandler, *int) {
	t.Helper()
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return &fxRateRepositoryHandler{
		HttpClient:  server.Client(),
		Cache:       gocache.New(officialRateTTL, 10*time.Minute),
		OfficialUrl: server.URL,
		ParallelUrl: server.URL,
	}, &requests
}

func Test_OfficialUsdRate(t *testing.T) {
	t.Run("fetches and caches the promedio", func(t *testing.T) {
		repo, requests := newFxTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"fuente": "oficial", "promedio": 36.5}`))
		})

		rate := repo.OfficialUsdRate(context.Background())
		require.Equal(t, "36.5", rate.String())

		rate = repo.OfficialUsdRate(context.Background())
		require.Equal(t, "36.5", rate.String())
		require.Equal(t, 1, *requests)
	})

	t.Run("upstream failure falls back to 1 without hammering", func(t *testing.T) {
		repo, requests := newFxTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(500)
		})

		rate := repo.OfficialUsdRate(context.Background())
		require.Equal(t, "1", rate.String())

		// fallback is cached, so the second render does not retry yet
		rate = repo.OfficialUsdRate(context.Background())
		require.Equal(t, "1", rate.String())
		require.Equal(t, 1, *requests)
	})

	t.Run("non-positive promedio falls back to 1", func(t *testing.T) {
		repo, _ := newFxTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"promedio": 0}`))
		})

		rate := repo.OfficialUsdRate(context.Background())
		require.Equal(t, "1", rate.String())
	})
}

func Test_ParallelUsdRate(t *testing.T) {
	t.Run("averages the advertised prices", func(t *testing.T) {
		repo, _ := newFxTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			w.Write([]byte(`{"data": [
				{"adv": {"price": "50.0"}},
				{"adv": {"price": "52.0"}},
				{"adv": {"price": "54.0"}}
			]}`))
		})

		rate, ok := repo.ParallelUsdRate(context.Background())
		require.True(t, ok)
		require.Equal(t, "52", rate.String())
	})

	t.Run("skips unparseable prices", func(t *testing.T) {
		repo, _ := newFxTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": [
				{"adv": {"price": "n/a"}},
				{"adv": {"price": "40.0"}}
			]}`))
		})

		rate, ok := repo.ParallelUsdRate(context.Background())
		require.True(t, ok)
		require.Equal(t, "40", rate.String())
	})

	t.Run("upstream failure reports unavailable", func(t *testing.T) {
		repo, _ := newFxTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(500)
		})

		_, ok := repo.ParallelUsdRate(context.Background())
		require.False(t, ok)
	})
}
