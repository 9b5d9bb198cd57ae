package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ashwinyue/osint-framework/internal/service/catalog"
)

func TestMetricsRegistered(t *testing.T) {
	m := New()
	m.ObserveRequest("GET", "/api/tools", 200, 10*time.Millisecond)
	m.ObserveFavoriteOp("add", nil)
	m.ObserveFavoriteOp("add", errors.New("boom"))
	m.ObserveCache(true)
	m.ObserveCache(false)
	m.ObserveRateLimited()

	fallback := catalog.NewLoader(nil).Load(filepath.Join(t.TempDir(), "missing.json"), "")
	m.SetCatalog(fallback, true)

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "osint_http_request_duration_seconds")
	assert.Contains(t, names, "osint_favorite_operations_total")
	assert.Contains(t, names, "osint_catalog_tools")
	assert.Contains(t, names, "osint_catalog_degraded")
	assert.Contains(t, names, "osint_catalog_reloads_total")
	assert.Contains(t, names, "osint_response_cache_lookups_total")
	assert.Contains(t, names, "osint_rate_limited_requests_total")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.favoriteOps.WithLabelValues("add", "error")))
	assert.Equal(t, float64(fallback.Len()), testutil.ToFloat64(m.catalogTools))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogDegraded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.catalogReloads))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ObserveRateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "osint_rate_limited_requests_total 1")
}

func TestStatusClass(t *testing.T) {
	assert.Equal(t, "2xx", statusClass(200))
	assert.Equal(t, "3xx", statusClass(304))
	assert.Equal(t, "4xx", statusClass(429))
	assert.Equal(t, "5xx", statusClass(501))
}
