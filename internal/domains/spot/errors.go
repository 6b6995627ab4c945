package spot

import "errors"

var (
	// ErrSpotNotFound - no spot with the requested id
	ErrSpotNotFound = errors.New("spot not found")

	// ErrDuplicateContentID - a spot with this external content id already
	// exists; the crawler interprets it as "skip, already ingested"
	ErrDuplicateContentID = errors.New("spot with this content id already exists")

	// ErrInvalidCategory - category outside drama|kpop|movie|variety
	ErrInvalidCategory = errors.New("invalid spot category")
)
