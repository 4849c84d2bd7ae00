package progress

import (
	"database/sql"
	"sync"
)

// LoadState tracks where a (actor, game) completion set is in its lifecycle.
type LoadState string

const (
	StateUnknown LoadState = "UNKNOWN"
	StateLoading LoadState = "LOADING"
	StateReady   LoadState = "READY"
)

// store handles completion persistence for both actor variants: the guest
// key/value table for anonymous sessions and one document row per
// (user, game) for authenticated ones.
type store struct {
	db *sql.DB
	mu sync.RWMutex

	// Last-fetched completion sets and their load state, keyed per
	// (actor, game) namespace.
	completed map[string][]string
	state     map[string]LoadState
}
