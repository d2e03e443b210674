package firestore

import "github.com/secmon-lab/pathfinder/pkg/domain/interfaces"

// ErrNotFound is returned when a document does not exist
var ErrNotFound = interfaces.ErrNotFound
