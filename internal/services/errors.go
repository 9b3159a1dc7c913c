package services

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrUnavailable        = errors.New("database not available")
	ErrRetrievalFailed    = errors.New("failed to load profiles")
	ErrProfileExists      = errors.New("profile already exists")
	ErrImageCapacity      = errors.New("a profile can hold at most 4 images")
	ErrUnsupportedImage   = errors.New("image must be jpeg, png or webp")
	ErrImageTooLarge      = errors.New("image must be 5MB or smaller")
	ErrInvalidReorder     = errors.New("image index out of range")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCaptchaMismatch    = errors.New("captcha answer is incorrect")
	ErrInvalidSignature   = errors.New("invalid signature")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UploadBatchError reports the file that stopped a multi-file upload. Files
// before Index were persisted and are not rolled back.
type UploadBatchError struct {
	Index    int
	Filename string
	Err      error
}

func (e *UploadBatchError) Error() string {
	return fmt.Sprintf("upload of %q (file %d) failed: %v", e.Filename, e.Index+1, e.Err)
}

func (e *UploadBatchError) Unwrap() error { return e.Err }

// PositionUpdateError reports the position write that aborted a reorder.
// The whole batch is rolled back.
type PositionUpdateError struct {
	Index int
	Total int
	Err   error
}

func (e *PositionUpdateError) Error() string {
	return fmt.Sprintf("position update %d of %d failed: %v", e.Index+1, e.Total, e.Err)
}

func (e *PositionUpdateError) Unwrap() error { return e.Err }
