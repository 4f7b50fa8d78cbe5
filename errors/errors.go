// Package errors provides DICOM-specific error types for better error handling
package errors

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotPart10 = errors.New("dicom: not a valid DICOM Part 10 file")
	ErrTruncated = errors.New("dicom: dataset truncated")
)

// InconsistencyError reports a directory-walk key that was reassigned a
// conflicting value. It aborts the current DICOMDIR load.
type InconsistencyError struct {
	Key      string
	Existing string
	Incoming string
}

func (e *InconsistencyError) Error() string {
	return fmt.Sprintf("inconsistent value: key=%q existing-value=%q new-value=%q",
		e.Key, e.Existing, e.Incoming)
}

// NewInconsistencyError creates a new inconsistency error
func NewInconsistencyError(key, existing, incoming string) *InconsistencyError {
	return &InconsistencyError{
		Key:      key,
		Existing: existing,
		Incoming: incoming,
	}
}

// DecodeError represents a failure to decode a single data element value.
// Decode errors are recovered locally: the element is rendered with
// partial or empty text and processing continues.
type DecodeError struct {
	Tag string
	VR  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("could not determine value of tag %s (%s): %v", e.Tag, e.VR, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// NewDecodeError creates a new decode error
func NewDecodeError(tag, vr string, err error) *DecodeError {
	return &DecodeError{
		Tag: tag,
		VR:  vr,
		Err: err,
	}
}

// ReferencedFileError reports a DICOMDIR record whose referenced file is
// missing or unreadable. It is logged as a warning, never fatal.
type ReferencedFileError struct {
	Path string
	Err  error
}

func (e *ReferencedFileError) Error() string {
	return fmt.Sprintf("referenced file not available: %s: %v", e.Path, e.Err)
}

func (e *ReferencedFileError) Unwrap() error {
	return e.Err
}
