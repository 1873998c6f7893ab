package hub

import "github.com/pkg/errors"

var (
	// ErrModelNotFound indicates the hub has no repository with the requested id.
	ErrModelNotFound = errors.New("model not found")
	// ErrMetadataUnavailable indicates the repository exists but its weight
	// sizes or config could not be retrieved (network failure, timeout,
	// malformed payload).
	ErrMetadataUnavailable = errors.New("model metadata unavailable")
)
