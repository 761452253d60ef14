package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound              = errors.New("not found")
	ErrSchemaViolation       = errors.New("schema violation")
	ErrEmptyResponse         = errors.New("empty model response")
	ErrImageGeneration       = errors.New("image generation failed")
	ErrUnknownImageReference = errors.New("unknown image reference")
	ErrBackgroundRemoval     = errors.New("background removal failed")
	ErrAssetStore            = errors.New("asset store failure")
)

// ItemError ties a resolution failure to the placed item that caused it so
// callers can retry or report with context.
type ItemError struct {
	Index       int
	Description string
	Err         error
}

func (e *ItemError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("item %d (%s): %v", e.Index, e.Description, e.Err)
	}
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error { return e.Err }

// ReferenceError reports an existing_image id that is not in the session's
// image pool.
type ReferenceError struct {
	ID string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("unknown image reference %q", e.ID)
}

func (e *ReferenceError) Unwrap() error { return ErrUnknownImageReference }
