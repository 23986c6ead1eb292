// Package store is the transactional boundary of the service: read a
// consistent snapshot of named documents, then conditionally commit a write
// set as one atomic operation. The Firestore implementation backs
// production; Memory backs the tests with the same optimistic commit-time
// conflict detection.
package store

import (
	"context"
	"errors"
)

// ErrConflict is returned by RunTransaction when another commit touched a
// document this transaction read. The loser has no partial effect; whether
// to retry is the caller's decision.
var ErrConflict = errors.New("transaction conflict")

// Snapshot is a point-in-time read of a single document.
type Snapshot interface {
	// Exists reports whether the document was present when read. A missing
	// document is still part of the transaction's read set.
	Exists() bool
	// ID is the final path segment of the document.
	ID() string
	// DataTo unmarshals the document into dst.
	DataTo(dst any) error
}

// Tx is the handle passed to a transaction body. All reads must happen
// before the first buffered write.
type Tx interface {
	Get(path string) (Snapshot, error)
	// GetAll reads the direct children of a collection. The whole collection
	// joins the read set, so a concurrent create or delete in it conflicts.
	GetAll(collectionPath string) ([]Snapshot, error)
	Set(path string, data any) error
	Delete(path string) error
}

type Store interface {
	// RunTransaction executes fn once. If fn returns an error nothing is
	// committed; if the commit loses an optimistic race the error is
	// ErrConflict. There is no automatic retry.
	RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error

	// Get and GetAll are plain reads outside any transaction.
	Get(ctx context.Context, path string) (Snapshot, error)
	GetAll(ctx context.Context, collectionPath string) ([]Snapshot, error)
}
