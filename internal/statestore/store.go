package statestore

import (
	"context"
	"encoding/json"
	"time"
)

// Record is the persisted outcome of a single unit.
type Record struct {
	Unit      string          `json:"unit"`
	Checksum  string          `json:"checksum"`
	Status    string          `json:"status"`
	Result    json.RawMessage `json:"result,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Store is the injected state repository for a provisioning run.
//
// Lock must be held for the run's entire duration; implementations reject a
// second Lock while one is outstanding. Get returns nil, nil when no record
// exists for the key.
type Store interface {
	Lock(ctx context.Context) error
	Unlock() error
	Get(unit string) (*Record, error)
	Put(record *Record) error
	Clear() error
}
