package content

import "errors"

var (
	// ErrContentNotFound - no content with the requested id
	ErrContentNotFound = errors.New("content not found")

	// ErrLinkNotFound - unlink asked for a (spot, content) pair that is not
	// linked; reported instead of succeeding silently
	ErrLinkNotFound = errors.New("spot is not linked to this content")

	// ErrSpotNotFound - link referenced a spot that does not exist
	ErrSpotNotFound = errors.New("spot not found")

	// ErrInvalidContentType - content_type outside drama|movie|music|variety
	ErrInvalidContentType = errors.New("invalid content type")
)
