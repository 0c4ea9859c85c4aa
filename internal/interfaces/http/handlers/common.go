// Package handlers holds the HTTP handlers owned by the server itself: the
// welcome payload, health probes and the placeholder area groups.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/turtacn/JobPortal/pkg/errors"
)

// Response is the envelope every handler in this package writes.
type Response struct {
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// writeAppError maps err to its HTTP status and writes a failure envelope.
// Messages of 5xx errors other than explicit unavailability are masked.
func writeAppError(w http.ResponseWriter, err error) {
	status := errors.StatusOf(err)
	message := "internal server error"

	var appErr *errors.AppError
	if errors.As(err, &appErr) && (status < http.StatusInternalServerError ||
		status == http.StatusNotImplemented || status == http.StatusServiceUnavailable) {
		message = appErr.Message
	}
	writeJSON(w, status, Response{Message: message, Success: false})
}

//Personal.AI order the ending
