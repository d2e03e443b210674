package catalog

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrInvalidLocation is returned for malformed source locations
	ErrInvalidLocation = goerr.New("invalid catalog location")
)

// Context keys for error values
const (
	LocationKey = "location"
)
