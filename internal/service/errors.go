package service

import "errors"

var (
	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrWrongPassword       = errors.New("wrong password")
	ErrTokenIsExpired      = errors.New("token is expired")

	ErrInsufficientPermission = errors.New("insufficient permission")
	ErrAdminEditingNotAllowed = errors.New("admin editing not permitted on this route")

	ErrAdminRoleAlreadyHeld      = errors.New("user already holds the admin role")
	ErrAdminRoleNotRequested     = errors.New("user has not requested the admin role")
	ErrImportFileEmpty           = errors.New("import file is empty")
	ErrImportFileUnavailable     = errors.New("no staged file recorded for this import")
	ErrImportHistoryAccessDenied = errors.New("import history row belongs to another user")
)
