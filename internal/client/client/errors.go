package client

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

var ErrUnavailable = errors.New("server unavailable")

// errorBody is the server's error envelope.
type errorBody struct {
	Message string              `json:"message"`
	Errors  []common.FieldError `json:"errors"`
}

func mapStatus(status int, body errorBody) error {
	msg := body.Message
	if msg == "" {
		msg = http.StatusText(status)
	}

	switch status {
	case http.StatusBadRequest:
		if len(body.Errors) > 0 {
			return &common.ValidationError{Fields: body.Errors}
		}
		return common.NewValidationError("body", msg)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, msg)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", common.ErrorAlreadyExists, msg)
	default:
		return fmt.Errorf("%w: status %d: %s", common.ErrorInternal, status, msg)
	}
}
