package services

import (
	"errors"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

type ErrorCode string

const (
	CodeValidation ErrorCode = "validation"
	CodePermission ErrorCode = "permission"
	CodeNotFound   ErrorCode = "not_found"
	CodeConflict   ErrorCode = "conflict"
)

// Machine-readable reasons returned to API callers.
const (
	ReasonInvalidRequest      = "invalid_request"
	ReasonPastDatetime        = "past_datetime"
	ReasonOverCapacity        = "over_capacity"
	ReasonOutsideHours        = "outside_opening_hours"
	ReasonSlotTaken           = "slot_taken"
	ReasonTooLate             = "too_late"
	ReasonForbidden           = "forbidden"
	ReasonReservationNotFound = "reservation_not_found"
	ReasonTableNotFound       = "table_not_found"
	ReasonCategoryNotFound    = "category_not_found"
	ReasonMenuNotFound        = "menu_not_found"
)

var statusByCode = map[ErrorCode]int{
	CodeValidation: http.StatusBadRequest,
	CodePermission: http.StatusForbidden,
	CodeNotFound:   http.StatusNotFound,
	CodeConflict:   http.StatusConflict,
}

// ServiceError is a recoverable, caller-facing failure.
type ServiceError struct {
	Code    ErrorCode
	Reason  string
	Message string
	cause   error
}

func (e *ServiceError) Error() string {
	return e.Reason + ": " + e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.cause
}

// HTTPStatus maps the error code onto a response status.
func (e *ServiceError) HTTPStatus() int {
	if status, ok := statusByCode[e.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AsServiceError returns the ServiceError in err's chain, or nil.
func AsServiceError(err error) *ServiceError {
	var typed *ServiceError
	if errors.As(err, &typed) {
		return typed
	}
	return nil
}

// HasReason reports whether err carries the given reason.
func HasReason(err error, reason string) bool {
	typed := AsServiceError(err)
	return typed != nil && typed.Reason == reason
}

func validationError(reason, message string) *ServiceError {
	return &ServiceError{Code: CodeValidation, Reason: reason, Message: message}
}

func notFoundError(reason, message string) *ServiceError {
	return &ServiceError{Code: CodeNotFound, Reason: reason, Message: message}
}

func permissionError(message string) *ServiceError {
	return &ServiceError{Code: CodePermission, Reason: ReasonForbidden, Message: message}
}

func slotTakenError(cause error) *ServiceError {
	return &ServiceError{
		Code:    CodeValidation,
		Reason:  ReasonSlotTaken,
		Message: "the table is already booked for this date and time",
		cause:   cause,
	}
}

// isUniqueViolation recognises duplicate-key failures from the supported
// drivers, with or without gorm's error translation enabled.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}
