package balanceerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrNotConfigured = apperror.New(
		apperror.CodeInvalidInput,
		"leave type is not configured for this user",
		http.StatusBadRequest,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInsufficientBalance,
		"insufficient leave balance for the requested period",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
)
