package leaverequesterrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveRequestNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveRequestID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave request id",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end date must not be before start date",
		http.StatusBadRequest,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the request owner may modify this request",
		http.StatusForbidden,
	)
	ErrNotAssignedManager = apperror.New(
		apperror.CodeForbidden,
		"only the assigned manager may decide this request",
		http.StatusForbidden,
	)
	ErrAlreadyDecided = apperror.New(
		apperror.CodeConflict,
		"leave request has already been decided",
		http.StatusConflict,
	)
	ErrSelfApproval = apperror.New(
		apperror.CodeForbidden,
		"a request cannot be decided by its owner",
		http.StatusForbidden,
	)
)
