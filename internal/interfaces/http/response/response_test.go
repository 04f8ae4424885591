package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/pkg/utils"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/sites", nil)
	return c, w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestSuccess_Envelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)

	Success(c, http.StatusOK, gin.H{"id": "abc"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	body := decodeBody(t, w)
	assert.Equal(t, true, body["success"])
	assert.NotNil(t, body["data"])
	_, hasMeta := body["meta"]
	assert.False(t, hasMeta)
}

func TestSuccessWithMeta_PaginationBlock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)

	meta := utils.CalculatePagination(45, 2, 20)
	SuccessWithMeta(c, http.StatusOK, []string{"a"}, meta)

	body := decodeBody(t, w)
	metaBody := body["meta"].(map[string]interface{})
	assert.Equal(t, float64(45), metaBody["total"])
	assert.Equal(t, float64(2), metaBody["page"])
	assert.Equal(t, float64(20), metaBody["per_page"])
	assert.Equal(t, float64(3), metaBody["total_pages"])
	assert.Equal(t, true, metaBody["has_more"])
}

func TestError_AppErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)

	Error(c, domainerrors.Forbidden("forbidden"))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	errBody := body["error"].(map[string]interface{})
	assert.Equal(t, "FORBIDDEN", errBody["code"])
	assert.Equal(t, "forbidden", errBody["message"])
}

func TestError_UnknownErrorBecomesInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)

	Error(c, errors.New("pg: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
	assert.Equal(t, "internal server error", errBody["message"])
}

func TestError_DownstreamFailureDetailsInDevelopment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)

	Error(c, errors.New("pg: connection refused"))

	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
	assert.Equal(t, "pg: connection refused", errBody["details"])
}

func TestError_DownstreamFailureDetailsSuppressedInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	c, w := newTestContext(t)
	Error(c, errors.New("pg: connection refused"))

	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "INTERNAL_ERROR", errBody["code"])
	_, hasDetails := errBody["details"]
	assert.False(t, hasDetails)
}

func TestError_DetailsSuppressedInRelease(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)
	defer gin.SetMode(gin.TestMode)

	c, w := newTestContext(t)
	Error(c, domainerrors.ValidationError("bad slug").WithDetails(gin.H{"field": "slug"}))

	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	_, hasDetails := errBody["details"]
	assert.False(t, hasDetails)
}

func TestError_DetailsIncludedInDevelopment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)

	Error(c, domainerrors.ValidationError("bad slug").WithDetails(gin.H{"field": "slug"}))

	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	details := errBody["details"].(map[string]interface{})
	assert.Equal(t, "slug", details["field"])
}

func TestRateLimited_RetryAfter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)

	RateLimited(c, 42*time.Second)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
	assert.True(t, c.IsAborted())

	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", errBody["code"])
}

func TestMethodNotAllowed_AllowHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, w := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/v1/sites", nil)

	MethodNotAllowed(c, []string{"GET", "POST"})

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, "GET, POST", w.Header().Get("Allow"))

	errBody := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "METHOD_NOT_ALLOWED", errBody["code"])
}
