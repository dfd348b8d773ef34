// Package problem maps domain errors onto huma problem responses.
//
// Importing it also makes huma report request validation failures as
// 400 Bad Request instead of 422 Unprocessable Entity.
package problem

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

func init() {
	newError := huma.NewError
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		if status == http.StatusUnprocessableEntity {
			status = http.StatusBadRequest
		}
		return newError(status, msg, errs...)
	}
}

// FromError converts err into the response the client sees. Validation and
// not-found errors keep their message; anything else becomes an opaque 500.
func FromError(err error) huma.StatusError {
	var validationErr *ledger.ValidationError
	if errors.As(err, &validationErr) {
		return huma.Error400BadRequest(validationErr.Error(), &huma.ErrorDetail{
			Message:  validationErr.Reason,
			Location: validationErr.Field,
		})
	}

	var notFoundErr *ledger.NotFoundError
	if errors.As(err, &notFoundErr) {
		return huma.Error404NotFound(notFoundErr.Error())
	}

	return huma.Error500InternalServerError("internal error")
}
