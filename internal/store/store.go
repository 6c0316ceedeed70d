// Package store persists the pattern tables and sync metadata. The default
// backend is flat JSON files under the data directory; a Redis backend is
// available for deployments that already run one.
package store

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyPatterns  = "patterns"    // []models.Pattern, pattern-sync API
	KeyVersion   = "version"     // models.VersionInfo
	KeyMissDB    = "patterns_db" // models.PatternTable
	KeySuccessDB = "success_db"  // models.PatternTable
)

// ErrNotFound reports that a key has never been written.
var ErrNotFound = errors.New("store: not found")

// Store reads and writes whole JSON documents by key. Writes replace the
// previous document; there is no merge.
type Store interface {
	Load(ctx context.Context, key string, v any) error
	Save(ctx context.Context, key string, v any) error
}
