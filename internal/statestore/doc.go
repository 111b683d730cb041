// Package statestore persists per-unit provisioning results between runs.
//
// The store maps a unit key to a [Record] carrying the unit's status, the
// checksum of the descriptor it was provisioned from, and the serialized
// result. A run acquires the store's exclusive lock for its whole duration;
// two concurrent runs against the same state are rejected, never interleaved.
//
// Two backends exist: a local JSON file ([FileStore]) and an S3-compatible
// object store ([S3Store]) for shared state.
package statestore
