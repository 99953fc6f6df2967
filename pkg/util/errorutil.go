package util

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
)

// Error codes returned by the assignment core.
const (
	CodeNotFound              = "NOT_FOUND"
	CodeValidationFailed      = "VALIDATION_FAILED"
	CodeAlreadyAssigned       = "ALREADY_ASSIGNED"
	CodeUnitMismatch          = "UNIT_MISMATCH"
	CodeWorkerNotInTargetUnit = "WORKER_NOT_IN_TARGET_UNIT"
	CodeCrossUnitNotAllowed   = "CROSS_UNIT_NOT_ALLOWED"
	CodeSameUnitTransfer      = "SAME_UNIT_TRANSFER"
	CodeReassignLimitExceeded = "REASSIGN_LIMIT_EXCEEDED"
	CodeConflict              = "CONFLICT"
	CodeInternalError         = "INTERNAL_ERROR"
)

// DomainError standardizes application errors.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
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
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError(CodeValidationFailed, message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

// NewAlreadyAssigned signals a claim on a ticket that has an assignee.
func NewAlreadyAssigned(ticketID string, assigneeID *string) error {
	return NewDomainError(CodeAlreadyAssigned, "ticket already has an assignee", http.StatusConflict, map[string]any{
		"ticket_id":   ticketID,
		"assignee_id": assigneeID,
	})
}

// NewUnitMismatch signals a worker outside the ticket's assigned unit.
func NewUnitMismatch(ticketID, workerID string) error {
	return NewDomainError(CodeUnitMismatch, "worker does not belong to the ticket's unit", http.StatusConflict, map[string]any{
		"ticket_id": ticketID,
		"worker_id": workerID,
	})
}

// NewWorkerNotInTargetUnit signals a transfer-and-assign worker outside
// the transfer target unit.
func NewWorkerNotInTargetUnit(workerID, unitID string) error {
	return NewDomainError(CodeWorkerNotInTargetUnit, "worker does not belong to the target unit", http.StatusConflict, map[string]any{
		"worker_id": workerID,
		"unit_id":   unitID,
	})
}

// NewCrossUnitNotAllowed signals an internal reassignment that crosses
// unit boundaries; cross-unit moves must use a transfer instead.
func NewCrossUnitNotAllowed(ticketID, workerID string) error {
	return NewDomainError(CodeCrossUnitNotAllowed, "cross-unit reassignment not allowed, use a transfer", http.StatusConflict, map[string]any{
		"ticket_id": ticketID,
		"worker_id": workerID,
	})
}

// NewSameUnitTransfer signals a transfer whose target equals the
// ticket's current unit.
func NewSameUnitTransfer(ticketID, unitID string) error {
	return NewDomainError(CodeSameUnitTransfer, "ticket already belongs to the target unit", http.StatusConflict, map[string]any{
		"ticket_id": ticketID,
		"unit_id":   unitID,
	})
}

// NewReassignLimitExceeded signals the reassignment cap was reached.
func NewReassignLimitExceeded(ticketID string, count int) error {
	return NewDomainError(CodeReassignLimitExceeded, "reassignment limit reached", http.StatusConflict, map[string]any{
		"ticket_id":          ticketID,
		"reassignment_count": count,
	})
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError(CodeConflict, message, http.StatusConflict, details)
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
	if errors.Is(err, sql.ErrNoRows) {
		if de, ok := NewNotFound("resource", nil).(*DomainError); ok {
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

func MapError(err error) error {
	return ToDomainError(err)
}

// CodeOf extracts the domain error code, or INTERNAL_ERROR for unknown
// errors.
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return ToDomainError(err).Code
}
