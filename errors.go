package morph

import "errors"

var (
	ErrUnknownShape    = errors.New("unknown shape")
	ErrUnknownSide     = errors.New("unknown wedge side")
	ErrDuplicateRegion = errors.New("duplicate region id")
	ErrDuplicateKey    = errors.New("duplicate key")
	ErrTooManyRegions  = errors.New("too many regions")
	ErrEmptyCatalogue  = errors.New("catalogue has no entries")
	ErrUnknownView     = errors.New("unknown view")
	ErrUnknownContent  = errors.New("unknown content")
)
