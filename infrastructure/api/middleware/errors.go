package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/helixml/ftsq/application/service"
	"github.com/helixml/ftsq/domain/fts"
	"github.com/helixml/ftsq/infrastructure/persistence"
	"github.com/helixml/ftsq/internal/log"
)

// APIError is an error with an explicit HTTP status.
type APIError struct {
	code    int
	message string
	cause   error
}

// NewAPIError creates a new APIError.
func NewAPIError(code int, message string, cause error) *APIError {
	return &APIError{code: code, message: message, cause: cause}
}

// Code returns the HTTP status code.
func (e *APIError) Code() int { return e.code }

// Message returns the client-facing message.
func (e *APIError) Message() string { return e.message }

func (e *APIError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("api error %d: %s: %v", e.code, e.message, e.cause)
	}
	return fmt.Sprintf("api error %d: %s", e.code, e.message)
}

// Unwrap returns the underlying cause.
func (e *APIError) Unwrap() error { return e.cause }

// ErrorBody is one entry of an error response.
type ErrorBody struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
	ID     string `json:"id,omitempty"`
}

// ErrorResponse is the JSON body written for failed requests.
type ErrorResponse struct {
	Errors []ErrorBody `json:"errors"`
}

// badRequest lists errors caused by the request's declarations or operands.
var badRequest = []error{
	service.ErrUnknownField,
	service.ErrUnknownLookup,
	fts.ErrInvalidTokenizer,
	fts.ErrEmptyTermList,
	fts.ErrUnsupportedOperand,
	persistence.ErrUnknownColumn,
}

// Status maps an error to its HTTP status and title.
func Status(err error) (int, string) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code(), http.StatusText(apiErr.Code())
	}
	if errors.Is(err, service.ErrUnknownTable) {
		return http.StatusNotFound, "Not Found"
	}
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest, "Invalid Request"
		}
	}
	return http.StatusInternalServerError, "Internal Server Error"
}

// WriteError writes an error response. Server errors are logged at Error,
// client errors at Debug.
func WriteError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	status, title := Status(err)

	detail := err.Error()
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		detail = apiErr.Message()
	}
	if status >= http.StatusInternalServerError {
		detail = "the request could not be completed"
	}

	if logger != nil {
		level := slog.LevelDebug
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(r.Context(), level, "request error",
			"status", status,
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	WriteJSON(w, status, ErrorResponse{
		Errors: []ErrorBody{{
			Status: fmt.Sprintf("%d", status),
			Title:  title,
			Detail: detail,
			ID:     log.RequestID(r.Context()),
		}},
	})
}

// WriteJSON writes a JSON response.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
