package httpadapter

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/wellbeing-insights/internal/app/insights"
	"github.com/PabloGalante/wellbeing-insights/internal/domain"
)

func newTestServer(hostname func() (string, error)) *Server {
	return &Server{
		svc:      insights.NewService(insights.ServiceConfig{}),
		now:      fixedClock,
		hostname: hostname,
	}
}

var fixedClock = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

func TestHealthIntrospectionFailure(t *testing.T) {
	for name, hostname := range map[string]func() (string, error){
		"error": func() (string, error) { return "", errors.New("no hostname") },
		"panic": func() (string, error) { panic("introspection exploded") },
	} {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newTestServer(hostname).routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, http.StatusInternalServerError, w.Code)

			var body healthErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, "error", body.Status)
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestHealthTimestampUsesClock(t *testing.T) {
	s := newTestServer(func() (string, error) { return "box-1", nil })

	resp, err := s.healthStatus()
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19T09:30:00Z", resp.Timestamp)
	assert.Equal(t, "box-1", resp.ServerInfo.Hostname)
}

func TestRecoverMiddleware(t *testing.T) {
	h := withRecover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/get_mental_health_insights", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body insightErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "boom", body.Error)
}

func TestFieldText(t *testing.T) {
	for name, tc := range map[string]struct {
		raw    string
		want   string
		wantOK bool
	}{
		"absent":       {raw: "", want: "", wantOK: false},
		"null":         {raw: "null", want: "", wantOK: false},
		"empty string": {raw: `""`, want: "", wantOK: true},
		"string":       {raw: `"5h"`, want: "5h", wantOK: true},
		"number":       {raw: `80`, want: "80", wantOK: true},
		"bool":         {raw: `true`, want: "true", wantOK: true},
		"object":       {raw: ` {"Mon":"ok"} `, want: `{"Mon":"ok"}`, wantOK: true},
	} {
		t.Run(name, func(t *testing.T) {
			got, ok := fieldText([]byte(tc.raw))
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeKeepsEmptyStringsAndDefaultsMissingKeys(t *testing.T) {
	req, err := decodeInsightRequest(strings.NewReader(`{"profession":"","gender":null,"age":"30"}`))
	require.NoError(t, err)

	assert.Equal(t, "", req.Profession)
	assert.Equal(t, domain.Unknown, req.Gender)
	assert.Equal(t, "30", req.Age)
	assert.Equal(t, domain.Unknown, req.ScreenTime)
}
