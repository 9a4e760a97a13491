package panel

import "errors"

var (
	// ErrWidth reports a panel width outside MinWidth..MaxWidth.
	ErrWidth = errors.New("panel width out of range")
	// ErrFit reports text, labels or padding that cannot fit the panel width.
	ErrFit = errors.New("does not fit panel width")
	// ErrInvalid reports empty or otherwise unusable input.
	ErrInvalid = errors.New("invalid input")
)
