package healthprobe

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealth_AlwaysOK(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.Health()(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Uptime)
}

func TestReady_NotReadyUntilSet(t *testing.T) {
	h := New()

	rec := httptest.NewRecorder()
	h.Ready()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	h.SetReady(true)

	rec = httptest.NewRecorder()
	h.Ready()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReady_UnhealthyComponentFailsReadiness(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.SetComponent("prepared-store", true)
	h.SetComponent("storage", false)

	rec := httptest.NewRecorder()
	h.Ready()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "not_ready", resp.Status)
	assert.False(t, resp.Components["storage"])
	assert.True(t, resp.Components["prepared-store"])

	// Recovery restores readiness.
	h.SetComponent("storage", true)

	rec = httptest.NewRecorder()
	h.Ready()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestReady_SetReadyFalseAfterShutdownStarts(t *testing.T) {
	h := New()
	h.SetReady(true)
	h.SetReady(false)

	rec := httptest.NewRecorder()
	h.Ready()(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
