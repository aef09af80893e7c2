package match

import "errors"

var (
	ErrLinkNotFound   = errors.New("job candidate link not found")
	ErrAlreadyLinked  = errors.New("candidate already linked to job")
	ErrStatusRequired = errors.New("status is required")
)
