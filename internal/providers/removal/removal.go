// Package removal wraps background-removal services. Removal is always a
// best-effort second stage: callers fall back to the original image when it
// fails.
package removal

import "context"

// Remover strips the background from a hosted image and returns the URL of
// the processed result.
type Remover interface {
	Remove(ctx context.Context, imageURL string) (string, error)
}
