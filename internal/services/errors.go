package services

import "errors"

type ErrorCode string

const (
	ErrorInvalid      ErrorCode = "invalid"
	ErrorUnauthorized ErrorCode = "unauthorized"
	ErrorForbidden    ErrorCode = "forbidden"
	ErrorNotFound     ErrorCode = "not_found"
	ErrorConflict     ErrorCode = "conflict"
)

type ServiceError struct {
	Code    ErrorCode
	Message string
}

func (e *ServiceError) Error() string { return e.Message }

func NewInvalidError(msg string) error   { return &ServiceError{Code: ErrorInvalid, Message: msg} }
func NewForbiddenError(msg string) error { return &ServiceError{Code: ErrorForbidden, Message: msg} }
func NewNotFoundError(msg string) error  { return &ServiceError{Code: ErrorNotFound, Message: msg} }
func NewConflictError(msg string) error  { return &ServiceError{Code: ErrorConflict, Message: msg} }
func NewUnauthorizedError(msg string) error {
	return &ServiceError{Code: ErrorUnauthorized, Message: msg}
}

func AsServiceError(err error) (*ServiceError, bool) {
	var se *ServiceError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Well-known domain failures. Each carries a ServiceError so the HTTP layer
// classifies them without string matching.
var (
	ErrDuplicateEmail     = &ServiceError{Code: ErrorConflict, Message: "email already registered"}
	ErrInvalidCredentials = &ServiceError{Code: ErrorUnauthorized, Message: "invalid email or password"}
	ErrUserNotFound       = &ServiceError{Code: ErrorUnauthorized, Message: "user not found"}
	ErrSurveyNotFound     = &ServiceError{Code: ErrorNotFound, Message: "survey not found"}
	ErrNewsNotFound       = &ServiceError{Code: ErrorNotFound, Message: "news item not found"}
	ErrAlreadyResponded   = &ServiceError{Code: ErrorConflict, Message: "you have already answered this survey"}
	ErrSurveyClosed       = &ServiceError{Code: ErrorConflict, Message: "this survey is closed"}
	ErrFeatureLimit       = &ServiceError{Code: ErrorConflict, Message: "featured content limit reached (max 3)"}
	ErrResultsForbidden   = &ServiceError{Code: ErrorForbidden, Message: "you must answer the survey to see results"}
	ErrOwnerOnly          = &ServiceError{Code: ErrorForbidden, Message: "only the owner can perform this action"}
)
