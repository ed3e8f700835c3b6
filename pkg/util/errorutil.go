package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code        string
	Message     string
	HTTPStatus  int
	FieldErrors map[string]string
	Err         error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status}
}

// Error codes surfaced to clients. Authentication failures are deliberately
// opaque: the same code and message cover unknown accounts and wrong passwords.
const (
	CodeAuthenticationFailed = "AUTHENTICATION_FAILED"
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeTokenInvalid         = "TOKEN_INVALID"
	CodeTokenExpired         = "TOKEN_EXPIRED"
	CodeWrongAudience        = "WRONG_AUDIENCE"
	CodeInsufficientScope    = "INSUFFICIENT_SCOPE"
	CodeForbidden            = "FORBIDDEN"
	CodeValidationFailed     = "VALIDATION_FAILED"
	CodeNotFound             = "NOT_FOUND"
	CodeConflict             = "CONFLICT"
	CodePaymentDeclined      = "PAYMENT_DECLINED"
	CodeInternalError        = "INTERNAL_ERROR"
)

func NewAuthenticationFailed() error {
	return NewDomainError(CodeAuthenticationFailed, "invalid email address or password", http.StatusUnauthorized)
}

func NewUnauthenticated() error {
	return NewDomainError(CodeUnauthenticated, "authentication required", http.StatusUnauthorized)
}

func NewTokenInvalid() error {
	return NewDomainError(CodeTokenInvalid, "access token is invalid", http.StatusUnauthorized)
}

func NewTokenExpired() error {
	return NewDomainError(CodeTokenExpired, "access token has expired", http.StatusUnauthorized)
}

func NewWrongAudience() error {
	return NewDomainError(CodeWrongAudience, "access token not valid for this endpoint", http.StatusUnauthorized)
}

func NewInsufficientScope() error {
	return NewDomainError(CodeInsufficientScope, "access token lacks a required scope", http.StatusForbidden)
}

func NewForbidden() error {
	return NewDomainError(CodeForbidden, "insufficient permissions", http.StatusForbidden)
}

func NewValidationError(message string, fieldErrors map[string]string) error {
	return &DomainError{
		Code:        CodeValidationFailed,
		Message:     message,
		HTTPStatus:  http.StatusUnprocessableEntity,
		FieldErrors: fieldErrors,
	}
}

func NewNotFound(resource string) error {
	return NewDomainError(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func NewConflict(message string) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict)
}

func NewPaymentDeclined(message string) error {
	return NewDomainError(CodePaymentDeclined, message, http.StatusUnprocessableEntity)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts generic errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	if errors.Is(err, pgx.ErrNoRows) {
		if de, ok := NewNotFound("resource").(*DomainError); ok {
			return de
		}
	}
	return &DomainError{
		Code:       CodeInternalError,
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
