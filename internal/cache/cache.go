package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores document-analysis results so repeated questions about the
// same text skip the provider. A miss is ("", nil), never an error.
type Cache interface {
	// GetAnalysis retrieves a cached analysis by key; "" means miss.
	GetAnalysis(ctx context.Context, key string) (string, error)

	// SetAnalysis stores an analysis with TTL.
	SetAnalysis(ctx context.Context, key, analysis string, ttl time.Duration) error

	// Close closes the cache connection.
	Close() error
}

// Key derives a stable cache key from the document text and query.
func Key(documentText, query string) string {
	h := sha256.New()
	h.Write([]byte(documentText))
	h.Write([]byte{0})
	h.Write([]byte(query))
	return hex.EncodeToString(h.Sum(nil))
}
