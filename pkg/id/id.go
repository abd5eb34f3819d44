// Package id generates time-sortable identifiers for runs and trades.
package id

import (
	cryptorand "crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(cryptorand.Reader, 0)
)

// New returns a ULID string. IDs generated within the same millisecond stay
// lexicographically increasing, which keeps journal rows and SQLite indexes
// in insertion order.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(time.Now().UTC()), entropy)
	if err != nil {
		// Only possible if entropy fails or time runs backwards.
		panic(err)
	}
	return id.String()
}
