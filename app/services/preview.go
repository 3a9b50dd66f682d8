package services

import (
	"context"
	"errors"
)

// ErrNoPreview signals that the generative service produced no image for the
// given instruction.
var ErrNoPreview = errors.New("no preview generated")

// PreviewService is the contract with the external image-generation
// collaborator. The portal only surfaces loading, error and no-result
// states around it; retries and caching are the collaborator's problem.
type PreviewService interface {
	// GeneratePreview edits the parcel image at sourceURL following the
	// free-text instruction and returns the resulting image bytes, or
	// ErrNoPreview.
	GeneratePreview(ctx context.Context, sourceURL, instruction string) ([]byte, error)
}
