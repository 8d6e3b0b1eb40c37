package errors

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondError writes the error envelope. An empty message uses the status default.
func RespondError(w http.ResponseWriter, status int, message string) {
	if message == "" {
		message = Message(status)
	}
	writeEnvelope(w, status, ErrorResponse{
		Error:   status,
		Message: message,
	})
}

// RespondValidationError writes a 400 naming the offending field.
func RespondValidationError(w http.ResponseWriter, field, message string) {
	writeEnvelope(w, http.StatusBadRequest, ErrorResponse{
		Error:   http.StatusBadRequest,
		Message: message,
		Field:   field,
	})
}

// RespondBadRequest writes a 400 envelope.
func RespondBadRequest(w http.ResponseWriter) {
	RespondError(w, http.StatusBadRequest, "")
}

// RespondNotFound writes a 404 envelope.
func RespondNotFound(w http.ResponseWriter) {
	RespondError(w, http.StatusNotFound, "")
}

// RespondMethodNotAllowed writes a 405 envelope.
func RespondMethodNotAllowed(w http.ResponseWriter) {
	RespondError(w, http.StatusMethodNotAllowed, "")
}

// RespondUnprocessable writes a 422 envelope.
func RespondUnprocessable(w http.ResponseWriter) {
	RespondError(w, http.StatusUnprocessableEntity, "")
}

// RespondInternalError writes a 500 envelope.
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, "")
}

func writeEnvelope(w http.ResponseWriter, status int, body ErrorResponse) {
	body.Success = false
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
