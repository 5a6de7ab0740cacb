package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordTimerStopped(t *testing.T) {
	before := testutil.ToFloat64(timersStopped)
	RecordTimerStopped(45)
	RecordTimerStopped(-3)
	assert.Equal(t, before+2, testutil.ToFloat64(timersStopped))
}

func TestRecordCodesSwept_IgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(codesSwept)
	RecordCodesSwept(0)
	RecordCodesSwept(3)
	assert.Equal(t, before+3, testutil.ToFloat64(codesSwept))
}

func TestRecordAuth(t *testing.T) {
	before := testutil.ToFloat64(authAttempts.WithLabelValues("login", "failure"))
	RecordAuth("login", false)
	assert.Equal(t, before+1, testutil.ToFloat64(authAttempts.WithLabelValues("login", "failure")))
}

func TestHTTP_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(HTTP())
	r.Get("/events/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	r.Handle("/metrics", Handler())

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events/abc", nil))
	require.Equal(t, http.StatusTeapot, rec.Code)

	srv := httptest.NewServer(r)
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	out := string(body)
	assert.True(t, strings.Contains(out, `path="/events/{id}"`), "expected route pattern label")
	assert.False(t, strings.Contains(out, `path="/events/abc"`), "raw path must not be a label")
}
