package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/careerpilot/autofill-backend/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// downModel is an llms.Model whose backend is unreachable.
type downModel struct{}

func (downModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return nil, errors.New("model unavailable")
}

func (downModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", errors.New("model unavailable")
}

func TestSuggestFailureKeepsErrorShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	h := NewMappingHandler(nil, &services.SuggestService{Client: downModel{}})
	r := gin.New()
	r.POST("/mappings/suggest", h.Suggest)

	body := `{"raw_html": "<form><input id=\"email\"></form>", "site_domain": "linkedin.com"}`
	req := httptest.NewRequest(http.MethodPost, "/mappings/suggest", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	// a failed suggestion still speaks the API's {error, reason} shape
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "suggestion_failed", resp["reason"])
	assert.Contains(t, resp["error"], "model unavailable")
}
