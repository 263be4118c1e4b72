package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/wordbook/internal/storage"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeInvalidRequest  = "invalid_request"
	CodeNotFound        = "not_found"
	CodeConflict        = "conflict"
	CodeUnknownCategory = "unknown_category"
	CodeInternal        = "internal_error"
	CodeUnavailable     = "unavailable"
)

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message, CodeInvalidRequest)
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	respondError(c, http.StatusNotFound, resource+" not found", CodeNotFound)
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	slog.Default().Error("internal error",
		"context", context,
		"error", err,
		"request_id", GetRequestID(c),
	)
	respondError(c, http.StatusInternalServerError, "internal server error", CodeInternal)
}

// respondError sends an error response with the given status code.
// Use the specific helpers (respondBadRequest, respondNotFound, etc.) when possible.
func respondError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: message, Code: code})
}

// respondStoreError maps a storage error onto a response. resource names the
// record in the 404 message.
func respondStoreError(c *gin.Context, err error, resource, context string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respondNotFound(c, resource)
	case errors.Is(err, storage.ErrConflict):
		respondError(c, http.StatusConflict, resource+" already exists", CodeConflict)
	case errors.Is(err, storage.ErrUnknownCategory):
		respondError(c, http.StatusBadRequest, "unknown category", CodeUnknownCategory)
	default:
		respondInternalError(c, err, context)
	}
}

// --- Parameter Parsing ---

// parseIDParam extracts and validates an unsigned integer ID from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (uint, bool) {
	idStr := c.Param(paramName)
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return uint(id), true
}

// parseOptionalQueryID reads an unsigned integer query parameter. A missing
// parameter yields nil; a malformed one responds with 400.
func parseOptionalQueryID(c *gin.Context, paramName string) (*uint, bool) {
	idStr := c.Query(paramName)
	if idStr == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return nil, false
	}
	v := uint(id)
	return &v, true
}

// parseBoolQuery reads a boolean query parameter, defaulting to false.
func parseBoolQuery(c *gin.Context, paramName string) (bool, bool) {
	s := c.Query(paramName)
	if s == "" {
		return false, true
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		respondBadRequest(c, "invalid "+paramName)
		return false, false
	}
	return v, true
}
