package sentinel

import "errors"

// Stores return these (optionally wrapped) so services can branch with errors.Is
// without knowing which backend produced them.
var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnavailable  = errors.New("unavailable")
)
