package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aaravmahajanofficial/fashionhub/internal/dataset"
	"github.com/aaravmahajanofficial/fashionhub/internal/models"
	service "github.com/aaravmahajanofficial/fashionhub/internal/services"
	"github.com/aaravmahajanofficial/fashionhub/internal/utils/response"
	"github.com/stretchr/testify/require"
)

type apiResponse struct {
	Success bool                    `json:"success"`
	Data    json.RawMessage         `json:"data"`
	Error   *response.ErrorResponse `json:"error"`
}

func newTestRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	return req
}

func jsonBody(t *testing.T, v any) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(v))

	return buf.String()
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, data any) apiResponse {
	t.Helper()

	var resp apiResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	if data != nil && resp.Data != nil {
		require.NoError(t, json.Unmarshal(resp.Data, data))
	}

	return resp
}

func loadedCatalog(t *testing.T) *service.CatalogService {
	t.Helper()

	catalog := service.NewCatalogService(service.NewLocalCatalog(dataset.MustProducts()))
	require.NoError(t, catalog.Load(t.Context()))

	return catalog
}

func themeService() *service.ThemeService {
	return service.NewThemeService(models.ThemeAuto, models.SchemeLight)
}
