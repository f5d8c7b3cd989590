// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageResponse{Message: message})
}

// JSONError is the single translator from error values to HTTP responses.
// Internal causes are logged, never rendered.
func JSONError(w http.ResponseWriter, err error) {
	appErr := Classify(err)
	status := appErr.StatusCode()

	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"code", appErr.Code,
			"error", err,
		)
	} else {
		slog.Warn("client error",
			"status", status,
			"code", appErr.Code,
			"message", appErr.Message,
		)
	}

	JSON(w, status, ErrorResponse{
		Message: appErr.Message,
		Code:    appErr.Code,
	})
}

func NotFound(w http.ResponseWriter, message string) {
	JSONError(w, NotFoundError(message))
}
