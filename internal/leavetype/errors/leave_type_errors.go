package leavetypeerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrInvalidName = apperror.New(
		apperror.CodeInvalidInput,
		"leave type name is not one of the supported categories",
		http.StatusBadRequest,
	)
	ErrNameAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"leave type is already registered",
		http.StatusConflict,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
)
