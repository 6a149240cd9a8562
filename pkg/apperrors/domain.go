package apperrors

import (
	"net/http"
)

// Factories and predefined variables for common business-logic errors.

// ErrNotFound converts a repository miss (e.g. gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

// ErrAlreadyExists converts a duplicate into a 409 AppError.
func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

// ErrConflict is the generic 409 factory.
func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

// ErrInvalidOperation is the generic 400 factory for disallowed operations.
func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Auth ---

var ErrWeakPassword = New(
	CodeValidationFailed,
	"validation",
	"Password must be at least 8 characters long",
	http.StatusBadRequest,
)

var ErrPasswordMismatch = New(
	CodeValidationFailed,
	"validation",
	"Passwords do not match",
	http.StatusBadRequest,
)

var ErrUsernameTaken = New(
	CodeAlreadyExists,
	"auth",
	"Username already exists",
	http.StatusConflict,
)

var ErrEmailAlreadyExists = New(
	CodeAlreadyExists,
	"auth",
	"Email already in use",
	http.StatusConflict,
)

// ErrInvalidCredentials deliberately does not distinguish unknown-user from
// wrong-password, to avoid user enumeration.
var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid username or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

// --- Contacts ---

var ErrSelfContact = New(
	CodeInvalidOperation,
	"contacts",
	"Cannot add yourself",
	http.StatusBadRequest,
)

var ErrContactRequestNotFound = New(
	CodeNotFound,
	"contacts",
	"Contact request not found",
	http.StatusNotFound,
)

var ErrInvalidContactAction = New(
	CodeValidationFailed,
	"contacts",
	"Action must be 'accept' or 'reject'",
	http.StatusBadRequest,
)

// --- Chat ---

var ErrEmptyMessage = New(
	CodeValidationFailed,
	"chat",
	"Message cannot be empty",
	http.StatusBadRequest,
)

var ErrRecipientNotFound = New(
	CodeNotFound,
	"chat",
	"User not found",
	http.StatusNotFound,
)

var ErrMessageNotFound = New(
	CodeNotFound,
	"chat",
	"Message not found",
	http.StatusNotFound,
)

// --- Profile ---

var ErrAvatarTooLarge = New(
	CodeValidationFailed,
	"profile",
	"Avatar image too large (max 2MB)",
	http.StatusRequestEntityTooLarge,
)

var ErrInvalidAvatarType = New(
	CodeValidationFailed,
	"profile",
	"Avatar must be an image",
	http.StatusUnsupportedMediaType,
)

var ErrBioTooLong = New(
	CodeValidationFailed,
	"profile",
	"Bio must be at most 500 characters",
	http.StatusBadRequest,
)
