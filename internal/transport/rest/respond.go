package rest

import (
	"encoding/json"
	"net/http"

	"github.com/heartmarshall/formsubmit-backend/internal/domain"
)

// Error codes returned in the "code" field of error bodies.
const (
	codeInvalidInput     = "invalid_input"
	codePayloadTooLarge  = "payload_too_large"
	codeNotFound         = "not_found"
	codeMethodNotAllowed = "method_not_allowed"
	codeUploadFailed     = "upload_failed"
	codePersistFailed    = "persist_failed"
	codeNotifyFailed     = "notify_failed"
	codeInternal         = "internal"
)

type errorResponse struct {
	Error  string          `json:"error"`
	Code   string          `json:"code"`
	Fields []fieldErrorDTO `json:"fields,omitempty"`
}

type fieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: message, Code: code})
}

func writeValidationError(w http.ResponseWriter, ve *domain.ValidationError) {
	fields := make([]fieldErrorDTO, 0, len(ve.Errors))
	for _, fe := range ve.Errors {
		fields = append(fields, fieldErrorDTO{Field: fe.Field, Message: fe.Message})
	}
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error:  ve.Error(),
		Code:   codeInvalidInput,
		Fields: fields,
	})
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, "not found")
}

// MethodNotAllowed answers known routes hit with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "method not allowed")
}
