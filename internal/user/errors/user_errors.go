package usererrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrUserNotFound = apperror.New(
		apperror.CodeNotFound,
		"user not found",
		http.StatusNotFound,
	)
	ErrInvalidUserID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid user id",
		http.StatusBadRequest,
	)
	ErrInvalidRole = apperror.New(
		apperror.CodeInvalidInput,
		"role must be either EMPLOYEE or MANAGER",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"manager does not exist",
		http.StatusBadRequest,
	)
	ErrManagerRoleRequired = apperror.New(
		apperror.CodeInvalidInput,
		"referenced manager does not have the MANAGER role",
		http.StatusBadRequest,
	)
	ErrMobileAlreadyRegistered = apperror.New(
		apperror.CodeConflict,
		"mobile number is already registered",
		http.StatusConflict,
	)
)
