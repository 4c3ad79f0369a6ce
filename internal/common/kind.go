package common

import "errors"

// Kind is the closed set of failure classes shared by server and client.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindConflict
	KindNotFound
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindTransport:
		return "transport"
	default:
		return "internal"
	}
}

// KindOf classifies err. Unknown errors are KindInternal.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindInternal
	case errors.Is(err, ErrorValidation):
		return KindValidation
	case errors.Is(err, ErrorUnauthorized):
		return KindAuth
	case errors.Is(err, ErrorAlreadyExists):
		return KindConflict
	case errors.Is(err, ErrorNotFound):
		return KindNotFound
	case errors.Is(err, ErrorTransport):
		return KindTransport
	default:
		return KindInternal
	}
}

// FieldErrors returns field details when err carries a ValidationError.
func FieldErrors(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
