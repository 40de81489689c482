package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/berean-study/berean/internal/services"
)

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// SuccessResponse is a standard success response with optional data.
type SuccessResponse struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Error: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error response.
// The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Error: message})
}

// --- Success Response Helpers ---

// respondAccepted sends a 202 Accepted response (for async operations).
func respondAccepted(c *gin.Context, message string, data any) {
	c.JSON(http.StatusAccepted, SuccessResponse{Message: message, Data: data})
}

// respondMutation maps a mutation result onto an HTTP status. The result
// body is returned as-is in both cases, so the UI reads one shape.
func respondMutation(c *gin.Context, result services.MutationResult, okStatus int) {
	if result.Success {
		c.JSON(okStatus, result)
		return
	}
	c.JSON(mutationStatus(result.Error), result)
}

func mutationStatus(kind services.ErrorKind) int {
	switch kind {
	case services.ErrorNotFound:
		return http.StatusNotFound
	case services.ErrorDuplicateTitle, services.ErrorConstraint:
		return http.StatusConflict
	case services.ErrorUnknownBook, services.ErrorOutOfRange:
		return http.StatusBadRequest
	case services.ErrorStoreBusy:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
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

// parseBookParam extracts a book number from URL parameters.
func parseBookParam(c *gin.Context, paramName string) (int, bool) {
	numberStr := c.Param(paramName)
	number, err := strconv.Atoi(numberStr)
	if err != nil || number < 1 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return number, true
}

// parseQueryBook extracts an optional book number from query parameters.
// Absent means 0 (no book in view).
func parseQueryBook(c *gin.Context, paramName string) (int, bool) {
	numberStr := c.Query(paramName)
	if numberStr == "" {
		return 0, true
	}
	number, err := strconv.Atoi(numberStr)
	if err != nil || number < 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return number, true
}
