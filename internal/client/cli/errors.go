package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

// describe turns any error into a line fit for the user.
func describe(err error) string {
	switch common.KindOf(err) {
	case common.KindValidation:
		fields := common.FieldErrors(err)
		if len(fields) == 0 {
			return err.Error()
		}
		msgs := make([]string, 0, len(fields))
		for _, f := range fields {
			msgs = append(msgs, f.Message)
		}
		return strings.Join(msgs, "; ")
	case common.KindAuth:
		if errors.Is(err, common.ErrNotAuthenticated) {
			return "please log in first"
		}
		return detail(err, common.ErrorUnauthorized)
	case common.KindNotFound:
		return detail(err, common.ErrorNotFound)
	case common.KindConflict:
		return detail(err, common.ErrorAlreadyExists)
	case common.KindTransport:
		return "server unreachable"
	default:
		return err.Error()
	}
}

// detail strips the sentinel prefix the REST client puts before the
// server's message.
func detail(err, sentinel error) string {
	return strings.TrimPrefix(err.Error(), sentinel.Error()+": ")
}
