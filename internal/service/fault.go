package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenInvalid covers missing, revoked, fulfilled and expired tokens;
	// callers surface it as 401 without detailing which case applies.
	ErrTokenInvalid = errors.New("upload token invalid or expired")

	// ErrFileTooLarge is returned before any storage call is attempted.
	ErrFileTooLarge = errors.New("file exceeds the upload size limit")

	// ErrAssignConflict is returned when a concurrent assignment won the
	// unique-index race for the same (claim, label) pair.
	ErrAssignConflict = errors.New("label already has a selected document")

	// ErrLabelExists is returned when adding a label that is already present.
	ErrLabelExists = errors.New("label already exists")

	// ErrPolicyTypeInUse blocks deleting a policy type that claims reference.
	ErrPolicyTypeInUse = errors.New("policy type is referenced by existing claims")
)

// StorageError wraps an object-store failure so handlers can map it
// without leaking the backend message.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage fault: %v", e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// PersistError wraps a database failure in the upload path.
type PersistError struct {
	Err error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persistence fault: %v", e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}
