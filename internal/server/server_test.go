package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"virsat-catia/internal/adapters"
	"virsat-catia/internal/app"
	"virsat-catia/internal/testutil"
	"virsat-catia/internal/types"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(t *testing.T) (*gin.Engine, string, *testutil.Scenario) {
	t.Helper()
	scenario := testutil.NewScenario()
	modelPath := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, adapters.NewModelFileAdapter().Save(modelPath, scenario.Repo))
	service := app.NewService()
	server := New(service, Config{ModelPath: modelPath, RootUUID: "ct", Workspace: t.TempDir()})
	return server.Router(), modelPath, scenario
}

func encodeDocument(t *testing.T, doc types.Document) *bytes.Reader {
	t.Helper()
	data, err := adapters.NewDocumentFileAdapter().Encode(doc)
	require.NoError(t, err)
	return bytes.NewReader(data)
}

func TestHealthz(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestExportEndpoint(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/export", nil))
	require.Equal(t, http.StatusOK, w.Code)

	doc, err := adapters.NewDocumentFileAdapter().Decode(w.Body.Bytes())
	require.NoError(t, err)
	require.Len(t, doc.Parts, 1)
	assert.Equal(t, "ed-rw", doc.Parts[0].UUID)
	require.NotNil(t, doc.Products)
	assert.Equal(t, "ct", doc.Products.UUID)
}

func TestReadEndpointsWaitForImport(t *testing.T) {
	scenario := testutil.NewScenario()
	modelPath := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, adapters.NewModelFileAdapter().Save(modelPath, scenario.Repo))
	server := New(app.NewService(), Config{ModelPath: modelPath, RootUUID: "ct", Workspace: t.TempDir()})
	router := server.Router()
	body, err := adapters.NewDocumentFileAdapter().Encode(scenario.MappedDocument())
	require.NoError(t, err)

	requests := map[string]func() *http.Request{
		"export": func() *http.Request {
			return httptest.NewRequest(http.MethodGet, "/api/v1/export", nil)
		},
		"map": func() *http.Request {
			return httptest.NewRequest(http.MethodPost, "/api/v1/map", bytes.NewReader(body))
		},
	}
	for name, newRequest := range requests {
		t.Run(name, func(t *testing.T) {
			server.mu.Lock()
			w := httptest.NewRecorder()
			done := make(chan struct{})
			go func() {
				defer close(done)
				router.ServeHTTP(w, newRequest())
			}()

			select {
			case <-done:
				server.mu.Unlock()
				t.Fatal("request finished while an import held the model")
			case <-time.After(50 * time.Millisecond):
			}
			server.mu.Unlock()

			select {
			case <-done:
			case <-time.After(5 * time.Second):
				t.Fatal("request did not finish after the import released the model")
			}
			assert.Equal(t, http.StatusOK, w.Code)
		})
	}
}

func TestExportEndpointUnknownRoot(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/export?root=missing", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var apiErr APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &apiErr))
	assert.Equal(t, ErrorCodeNotFound, apiErr.Code)
	assert.NotEmpty(t, apiErr.Message)
}

func TestMapEndpoint(t *testing.T) {
	router, _, scenario := newTestRouter(t)
	doc := scenario.MappedDocument()
	doc.Parts = append(doc.Parts, &types.Record{UUID: "catia-only"})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/map", encodeDocument(t, doc)))
	require.Equal(t, http.StatusOK, w.Code)

	var response MapResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, []string{"catia-only"}, response.Unmapped)
	assert.Equal(t, "ec-rw1", response.Mapping["ec-rw1"])
}

func TestImportEndpoint(t *testing.T) {
	router, modelPath, scenario := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/import", encodeDocument(t, scenario.MappedDocument())))
	require.Equal(t, http.StatusOK, w.Code)

	var response ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Applied)
	assert.Empty(t, response.Failures)

	repo, err := adapters.NewModelFileAdapter().Load(modelPath)
	require.NoError(t, err)
	wheel, ok := repo.Lookup("ec-rw2")
	require.True(t, ok)
	require.NotNil(t, wheel.Visualisation)
	assert.InDelta(t, testutil.TestRotZProduct, wheel.Visualisation.RotationZ, testutil.Epsilon)
}

func TestImportEndpointDryRun(t *testing.T) {
	router, modelPath, scenario := newTestRouter(t)
	before, err := os.ReadFile(modelPath)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/import?dry_run=true", encodeDocument(t, scenario.MappedDocument())))
	require.Equal(t, http.StatusOK, w.Code)

	var response ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.True(t, response.Executable)
	assert.False(t, response.Applied)

	after, err := os.ReadFile(modelPath)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
}

func TestImportEndpointIncompleteRecord(t *testing.T) {
	router, _, scenario := newTestRouter(t)
	doc := scenario.MappedDocument()
	doc.Products.Children[1].PosY = nil

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/import", encodeDocument(t, doc)))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var body struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details ImportResponse `json:"details"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, ErrorCodeFailedPrecondition, body.Code)
	require.Len(t, body.Details.Failures, 1)
	assert.Equal(t, "ec-rw2", body.Details.Failures[0].UUID)
	assert.Equal(t, []string{"posY"}, body.Details.Failures[0].Missing)
}

func TestImportEndpointBadInput(t *testing.T) {
	router, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/import", bytes.NewReader([]byte(`{"parts":`))))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/import?dry_run=maybe", bytes.NewReader([]byte(`{}`))))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
