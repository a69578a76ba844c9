package apperror

import (
	"errors"
	"net/http"
)

// Kind groups errors by how the caller can react to them.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindNotFound        Kind = "not_found"
	KindAuthorization   Kind = "authorization"
	KindConflict        Kind = "conflict"
	KindExternalService Kind = "external_service"
	KindPersistence     Kind = "persistence"
)

// Reasons are stable machine-readable codes returned in the error envelope.
const (
	ReasonValidation           = "VALIDATION_FAILED"
	ReasonNotFound             = "NOT_FOUND"
	ReasonUnauthorized         = "UNAUTHORIZED"
	ReasonForbidden            = "FORBIDDEN"
	ReasonInternal             = "INTERNAL"
	ReasonDuplicateApplication = "DUPLICATE_APPLICATION"
	ReasonJobInactive          = "JOB_INACTIVE"
	ReasonInvalidStatus        = "INVALID_STATUS"
	ReasonNotOwner             = "NOT_OWNER"
	ReasonApplicantNotFound    = "APPLICANT_NOT_FOUND"
	ReasonAlreadySaved         = "ALREADY_SAVED"
	ReasonNotSaved             = "NOT_SAVED"
	ReasonUnsupportedFileType  = "UNSUPPORTED_FILE_TYPE"
	ReasonMalwareDetected      = "MALWARE_DETECTED"
	ReasonProfileSaveFailed    = "PROFILE_SAVE_FAILED"
	ReasonNoResumeOnFile       = "NO_RESUME_ON_FILE"
	ReasonEmailTaken           = "EMAIL_TAKEN"
	ReasonUnderage             = "UNDERAGE"
	ReasonStorageFailed        = "STORAGE_FAILED"
	ReasonTooManyAttempts      = "TOO_MANY_ATTEMPTS"
)

type AppError struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, kind Kind, reason, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Kind:    kind,
		Reason:  reason,
		Message: message,
		Err:     err,
	}
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, ReasonValidation, message, nil)
}

// Validation is a 400 with a specific reason.
func Validation(reason, message string) *AppError {
	return New(http.StatusBadRequest, KindValidation, reason, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, KindAuthorization, ReasonUnauthorized, message, nil)
}

func Forbidden(message string) *AppError {
	return New(http.StatusForbidden, KindAuthorization, ReasonForbidden, message, nil)
}

func NotOwner(message string) *AppError {
	return New(http.StatusForbidden, KindAuthorization, ReasonNotOwner, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, ReasonNotFound, message, nil)
}

// NotFoundReason is a 404 with a specific reason.
func NotFoundReason(reason, message string) *AppError {
	return New(http.StatusNotFound, KindNotFound, reason, message, nil)
}

func Conflict(reason, message string) *AppError {
	return New(http.StatusConflict, KindConflict, reason, message, nil)
}

// Persistence wraps a storage write failure that aborts the current operation.
func Persistence(reason, message string, err error) *AppError {
	return New(http.StatusInternalServerError, KindPersistence, reason, message, err)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, KindPersistence, ReasonInternal, "Internal Server Error", err)
}

// HasReason reports whether err is an AppError carrying the given reason.
func HasReason(err error, reason string) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Reason == reason
	}
	return false
}

// KindOf returns the kind of err, or an empty Kind when err is not an AppError.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}
