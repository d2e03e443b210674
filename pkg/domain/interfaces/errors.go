package interfaces

import "github.com/m-mizutani/goerr/v2"

// ErrNotFound is returned by repositories when a record does not exist
var ErrNotFound = goerr.New("not found")
