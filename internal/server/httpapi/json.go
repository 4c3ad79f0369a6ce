package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Message string              `json:"message"`
	Errors  []common.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	writeJSON(w, status, errorResponse{Message: msg})
}

// readJSON decodes a single JSON object from the body. Decode failures are
// returned as validation errors on the "body" field.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError
		var maxErr *http.MaxBytesError

		switch {
		case errors.Is(err, io.EOF):
			return common.NewValidationError("body", "Body must not be empty")
		case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
			return common.NewValidationError("body", "Body contains malformed JSON")
		case errors.As(err, &typeErr):
			field := typeErr.Field
			if field == "" {
				field = "body"
			}
			return common.NewValidationError(field, fmt.Sprintf("Must be a %s", typeErr.Type))
		case errors.As(err, &maxErr):
			return common.NewValidationError("body", "Body is too large")
		default:
			return common.NewValidationError("body", strings.TrimPrefix(err.Error(), "json: "))
		}
	}

	if dec.More() {
		return common.NewValidationError("body", "Body must contain a single JSON object")
	}
	return nil
}

// writeError maps err to its status. Unclassified errors are logged and
// reported without detail.
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch common.KindOf(err) {
	case common.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: "Validation failed", Errors: common.FieldErrors(err)})
	case common.KindAuth:
		writeMessage(w, http.StatusUnauthorized, "Not authorized")
	case common.KindNotFound:
		writeMessage(w, http.StatusNotFound, "Task not found")
	case common.KindConflict:
		writeMessage(w, http.StatusConflict, "Email already registered")
	default:
		s.logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeMessage(w, http.StatusInternalServerError, "Internal server error")
	}
}
