package holidayerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrHolidayNotFound = apperror.New(
		apperror.CodeNotFound,
		"holiday not found",
		http.StatusNotFound,
	)
	ErrInvalidHolidayID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid holiday id",
		http.StatusBadRequest,
	)
	ErrDateAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"a holiday already exists on that date",
		http.StatusConflict,
	)
)
