// Package cache stores oracle responses so that re-running an analysis on
// the same policy text does not repeat paid LLM calls and stays reproducible.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching oracle responses.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key for one oracle call. The checklist version is a
// content hash, so editing any obligation text invalidates prior entries;
// provider and model are included because different oracles give different
// verdicts for the same sentence.
func Key(provider, llmModel, checklistVersion, sentence string) string {
	h := sha256.New()
	h.Write([]byte(provider))
	h.Write([]byte{0})
	h.Write([]byte(llmModel))
	h.Write([]byte{0})
	h.Write([]byte(checklistVersion))
	h.Write([]byte{0})
	h.Write([]byte(sentence))
	return "dpdpacheck:v1:" + hex.EncodeToString(h.Sum(nil))
}
