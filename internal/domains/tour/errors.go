package tour

import "errors"

var (
	// ErrTourNotFound - no tour with the requested id
	ErrTourNotFound = errors.New("tour not found")

	// ErrTourSpotNotFound - the (tour, spot) stop does not exist
	ErrTourSpotNotFound = errors.New("spot is not part of this tour")

	// ErrSpotNotFound - a referenced spot does not exist
	ErrSpotNotFound = errors.New("spot not found")
)
