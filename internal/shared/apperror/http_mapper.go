package apperror

import (
	"errors"
	"net/http"
)

// HTTPError adalah bentuk final yang siap dikirim ke response layer
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP memetakan error apapun ke HTTPError.
// AppError dipetakan apa adanya, error lain dianggap internal.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}

	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
