package criteria

import (
	"errors"
	"fmt"
)

// ContractError reports a pool operation that violated the membership
// contract. These are caller bugs, not user input problems: the UI layer
// can only trigger them by losing track of its own criteria state.
type ContractError struct {
	// Code identifies the violation category.
	Code ContractErrorCode

	// ID is the criterion id involved, when one is.
	ID string

	// Message is a human-readable description.
	Message string
}

// ContractErrorCode categorizes contract violations.
type ContractErrorCode string

const (
	// ErrCodeNotAvailable indicates an activate of an id not in the
	// available pool.
	ErrCodeNotAvailable ContractErrorCode = "NOT_AVAILABLE"

	// ErrCodeNotActive indicates a deactivate/mutate of an id not in the
	// active pool.
	ErrCodeNotActive ContractErrorCode = "NOT_ACTIVE"

	// ErrCodeDuplicateID indicates an id appearing twice within a pool
	// or across both pools.
	ErrCodeDuplicateID ContractErrorCode = "DUPLICATE_ID"

	// ErrCodeMembershipMismatch indicates a reorder whose id set is not
	// an exact permutation of the active pool.
	ErrCodeMembershipMismatch ContractErrorCode = "MEMBERSHIP_MISMATCH"
)

// Error implements the error interface.
func (e *ContractError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s: %s (id=%s)", e.Code, e.Message, e.ID)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsContractError reports whether err is (or wraps) a ContractError.
func IsContractError(err error) bool {
	var ce *ContractError
	return errors.As(err, &ce)
}

// ContractCode extracts the violation code from err, or "" when err is
// not a ContractError.
func ContractCode(err error) ContractErrorCode {
	var ce *ContractError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}
