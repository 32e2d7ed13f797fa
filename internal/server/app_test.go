package server

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dmitrijs2005/taskboard/internal/server/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewApp_ServesHealth(t *testing.T) {
	var cfg config.Config
	cfg.LoadDefaults()
	cfg.EncryptionKey = "not-hex"

	var logs bytes.Buffer
	app, err := NewApp(&cfg, &logs)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "encryption key rejected")

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
