package util

import (
	"errors"
	"fmt"
	"net/http"
)

// StoreError standardizes application errors.
type StoreError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError constructs a StoreError.
func NewStoreError(code, message string, status int, details map[string]any) *StoreError {
	return &StoreError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

// NewNoVariantSelected reports the add-to-cart precondition failure: the caller
// attempted a cart mutation without resolving a purchasable variant first.
func NewNoVariantSelected() error {
	return NewStoreError("NO_VARIANT_SELECTED", "no purchasable variant selected", http.StatusBadRequest, nil)
}

func NewValidationError(message string, details map[string]any) error {
	return NewStoreError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &StoreError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewAuthError reports a rejected or expired bearer credential. Callers treat
// it as a forced-logout trigger, not as a generic network failure.
func NewAuthError(message string) error {
	return NewStoreError("AUTH_ERROR", message, http.StatusUnauthorized, nil)
}

// NewNetworkError wraps transport failures and upstream 5xx responses.
func NewNetworkError(err error) error {
	return &StoreError{
		Code:       "NETWORK_ERROR",
		Message:    "commerce backend unreachable",
		HTTPStatus: http.StatusBadGateway,
		Err:        err,
	}
}

func NewInternalError(err error) error {
	return &StoreError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// FromStatus maps a remote API status code onto the error taxonomy.
func FromStatus(status int, message string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if message == "" {
			message = "authentication rejected"
		}
		return NewAuthError(message)
	case status == http.StatusNotFound:
		return NewNotFound("resource", nil)
	case status >= 500:
		return NewNetworkError(fmt.Errorf("upstream status %d: %s", status, message))
	default:
		if message == "" {
			message = "invalid request"
		}
		return NewValidationError(message, map[string]any{"status": status})
	}
}

// ToStoreError converts generic errors to StoreError.
func ToStoreError(err error) *StoreError {
	if err == nil {
		return nil
	}
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr
	}
	if se, ok := NewInternalError(err).(*StoreError); ok {
		return se
	}
	return &StoreError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

func code(err error) string {
	if se := ToStoreError(err); se != nil {
		return se.Code
	}
	return ""
}

// IsPrecondition reports whether err is the no-variant-selected precondition.
func IsPrecondition(err error) bool {
	return code(err) == "NO_VARIANT_SELECTED"
}

// IsAuthError reports whether err represents a rejected credential.
func IsAuthError(err error) bool {
	return code(err) == "AUTH_ERROR"
}

// IsNotFound reports whether err represents a missing remote resource.
func IsNotFound(err error) bool {
	return code(err) == "NOT_FOUND"
}

// IsNetworkError reports whether err represents a transport or upstream failure.
func IsNetworkError(err error) bool {
	return code(err) == "NETWORK_ERROR"
}
