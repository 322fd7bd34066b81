package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/RuinSim_Go/internal/domain"
	"github.com/osse101/RuinSim_Go/internal/logger"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// bufferPool is a pool of bytes.Buffer to reduce allocations during JSON encoding.
// Sweep responses carry thousands of numbers, so buffers start larger than usual.
var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		bufferPool.Put(buf)
	}()

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondText sends a plain document such as a CSV or Markdown report
func respondText(w http.ResponseWriter, status int, contentType, body string) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		slog.Error("Failed to write response body", "error", err)
	}
}

// respondServiceError logs a service failure and maps it to a user-facing status and message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	statusCode, userMsg := mapServiceErrorToUserMessage(err)
	log := logger.FromContext(r.Context())
	if statusCode >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Warn(opName+" rejected", "error", err, "status", statusCode)
	}
	respondError(w, statusCode, userMsg)
}

// mapServiceErrorToUserMessage maps domain errors to user-friendly HTTP responses.
// Unknown errors become a generic 500 so internal details never leak.
func mapServiceErrorToUserMessage(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, ErrMsgUnknownError
	}

	switch {
	case errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusBadRequest, ErrMsgInvalidConfigError
	case errors.Is(err, domain.ErrUnknownStrategy):
		return http.StatusBadRequest, ErrMsgUnknownStrategyError
	case errors.Is(err, domain.ErrIndexOutOfRange):
		return http.StatusBadRequest, ErrMsgIndexOutOfRangeError
	case errors.Is(err, domain.ErrUnsupportedFormat):
		return http.StatusBadRequest, ErrMsgUnsupportedFormatError
	case errors.Is(err, domain.ErrSweepNotFound):
		return http.StatusNotFound, ErrMsgSweepNotFoundError
	case errors.Is(err, domain.ErrPresetNotFound):
		return http.StatusNotFound, ErrMsgPresetNotFoundError
	case errors.Is(err, domain.ErrEmptyBatch):
		return http.StatusInternalServerError, ErrMsgGenericServerError
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, ErrMsgSweepAbandonedError
	}

	return http.StatusInternalServerError, ErrMsgGenericServerError
}
