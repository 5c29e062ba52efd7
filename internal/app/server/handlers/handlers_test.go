package handlers

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"francoggm/paygate-go-redis/internal/app/logging"
	"francoggm/paygate-go-redis/internal/config"

	"github.com/stretchr/testify/require"
)

type failingWriter struct {
	*httptest.ResponseRecorder
}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func newPageHandlers(t *testing.T, logs *bytes.Buffer) *Handlers {
	t.Helper()
	logger, err := logging.New("debug", "text", logs)
	require.NoError(t, err)

	cfg := &config.Config{App: config.App{Name: "Acme <Pay>", CorrelationHeader: "openai-conversation-id"}}
	return NewHandlers(cfg, nil, nil, nil, logger)
}

func TestPrivacyEscapesAppName(t *testing.T) {
	h := newPageHandlers(t, &bytes.Buffer{})

	rec := httptest.NewRecorder()
	h.Privacy(rec, httptest.NewRequest(http.MethodGet, "/privacy", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "Acme &lt;Pay&gt; Privacy Policy")
	require.NotContains(t, rec.Body.String(), appNamePlaceholder)
}

func TestWriteFailuresAreLogged(t *testing.T) {
	var logs bytes.Buffer
	h := newPageHandlers(t, &logs)

	h.Privacy(failingWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/privacy", nil))
	require.Contains(t, logs.String(), "failed to write privacy page")

	h.Root(failingWriter{httptest.NewRecorder()}, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Contains(t, logs.String(), "failed to write response")
	require.Contains(t, logs.String(), "broken pipe")
}

func TestMissingCorrelationHeaderIsBadInput(t *testing.T) {
	h := newPageHandlers(t, &bytes.Buffer{})

	rec := httptest.NewRecorder()
	h.HasUserPaid(rec, httptest.NewRequest(http.MethodGet, "/hasUserPaid", nil))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), TextCodeCorrelationMissing)
}
