package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/helixml/ftsq"
	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/infrastructure/api"
)

func TestAPIServer_Handler(t *testing.T) {
	schema, err := fts.NewFTS5Schema("breakfast", fts.MustTextField("ingredients"))
	require.NoError(t, err)

	client, err := ftsq.New(
		ftsq.WithSQLite(filepath.Join(t.TempDir(), "ftsq.db")),
		ftsq.WithSchemas(schema),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server := api.NewAPIServer(client)
	handler := server.Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var health map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&health))
	assert.Equal(t, "ok", health["status"])

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tables/breakfast", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Content-Type"))

	assert.NoError(t, server.Shutdown(context.Background()))
}
