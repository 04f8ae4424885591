package response

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/pkg/utils"
)

// Every API response, success or error, is wrapped in the same envelope so
// external consumers can parse all routes identically.

type successEnvelope struct {
	Success bool                  `json:"success"`
	Data    interface{}           `json:"data"`
	Meta    *utils.PaginationMeta `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success bool      `json:"success"`
	Error   errorBody `json:"error"`
}

type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// Tenant data must never be cached by intermediaries.
func setNoStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
}

// Success sends a success envelope
func Success(c *gin.Context, status int, data interface{}) {
	setNoStore(c)
	c.JSON(status, successEnvelope{Success: true, Data: data})
}

// SuccessWithMeta sends a success envelope with pagination metadata
func SuccessWithMeta(c *gin.Context, status int, data interface{}, meta utils.PaginationMeta) {
	setNoStore(c)
	c.JSON(status, successEnvelope{Success: true, Data: data, Meta: &meta})
}

// Error sends an error envelope. Non-AppError values are mapped to
// INTERNAL_ERROR so store failures never leak internals. Details are
// suppressed in release mode.
func Error(c *gin.Context, err error) {
	appErr, ok := err.(*domainerrors.AppError)
	if !ok {
		appErr = domainerrors.InternalError(err)
	}

	body := errorBody{
		Code:    appErr.Code,
		Message: appErr.Message,
	}
	if gin.Mode() != gin.ReleaseMode {
		body.Details = appErr.Details
		if body.Details == nil && appErr.Err != nil {
			body.Details = appErr.Err.Error()
		}
	}

	setNoStore(c)
	c.JSON(appErr.Status, errorEnvelope{Success: false, Error: body})
}

// AbortWithError sends an error envelope and stops the handler chain.
// Intended for middleware.
func AbortWithError(c *gin.Context, err error) {
	Error(c, err)
	c.Abort()
}

// RateLimited sends a RATE_LIMIT_EXCEEDED envelope with a Retry-After hint.
func RateLimited(c *gin.Context, retryAfter time.Duration) {
	seconds := int(retryAfter.Seconds())
	if seconds < 1 {
		seconds = 1
	}
	c.Header("Retry-After", strconv.Itoa(seconds))

	err := domainerrors.RateLimitExceeded("rate limit exceeded").
		WithDetails(gin.H{"retry_after_seconds": seconds})
	Error(c, err)
	c.Abort()
}

// MethodNotAllowed sends a METHOD_NOT_ALLOWED envelope with an Allow header
// listing the permitted methods.
func MethodNotAllowed(c *gin.Context, allowed []string) {
	if len(allowed) > 0 {
		c.Header("Allow", strings.Join(allowed, ", "))
	}
	Error(c, domainerrors.MethodNotAllowed(
		fmt.Sprintf("method %s is not allowed for this resource", c.Request.Method)))
}
