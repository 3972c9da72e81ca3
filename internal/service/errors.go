package service

import (
	"fmt"
)

type ErrInvalidInput struct {
	error
}

func NewErrInvalidInput(format string, args ...any) *ErrInvalidInput {
	return &ErrInvalidInput{fmt.Errorf(format, args...)}
}

// ErrInvalidStatus is the invalid input raised for a status outside the enumeration.
type ErrInvalidStatus struct {
	*ErrInvalidInput
}

func NewErrInvalidStatus(status string) *ErrInvalidStatus {
	return &ErrInvalidStatus{NewErrInvalidInput("invalid status %q", status)}
}

type ErrResourceNotFound struct {
	error
}

func NewErrResourceNotFound(id int64, resourceType string) *ErrResourceNotFound {
	return &ErrResourceNotFound{fmt.Errorf("%s %d not found", resourceType, id)}
}

func NewErrProcessedJobNotFound(id int64) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "processed job")
}

func NewErrJobNotFound(id int64) *ErrResourceNotFound {
	return NewErrResourceNotFound(id, "job")
}

type ErrStoreUnavailable struct {
	error
}

func NewErrStoreUnavailable(err error) *ErrStoreUnavailable {
	return &ErrStoreUnavailable{fmt.Errorf("store unavailable: %w", err)}
}

func (e *ErrStoreUnavailable) Unwrap() error {
	return e.error
}
