package store

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Firestore implements Store on a Firestore client. Transactions run with
// MaxAttempts(1): a lost optimistic race surfaces as ErrConflict instead of
// being retried inside the client.
type Firestore struct {
	client *firestore.Client
}

func NewFirestore(client *firestore.Client) *Firestore {
	return &Firestore{client: client}
}

func (f *Firestore) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	err := f.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		return fn(ctx, &firestoreTx{client: f.client, tx: tx})
	}, firestore.MaxAttempts(1))
	if status.Code(err) == codes.Aborted {
		return ErrConflict
	}
	return err
}

func (f *Firestore) Get(ctx context.Context, path string) (Snapshot, error) {
	snap, err := f.client.Doc(path).Get(ctx)
	return wrapFirestoreSnap(path, snap, err)
}

func (f *Firestore) GetAll(ctx context.Context, collectionPath string) ([]Snapshot, error) {
	docs, err := f.client.Collection(collectionPath).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collectionPath, err)
	}
	snaps := make([]Snapshot, 0, len(docs))
	for _, doc := range docs {
		snaps = append(snaps, &firestoreSnap{snap: doc})
	}
	return snaps, nil
}

type firestoreTx struct {
	client *firestore.Client
	tx     *firestore.Transaction
}

func (t *firestoreTx) Get(path string) (Snapshot, error) {
	snap, err := t.tx.Get(t.client.Doc(path))
	return wrapFirestoreSnap(path, snap, err)
}

func (t *firestoreTx) GetAll(collectionPath string) ([]Snapshot, error) {
	iter := t.tx.Documents(t.client.Collection(collectionPath))
	defer iter.Stop()

	var snaps []Snapshot
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read collection %s: %w", collectionPath, err)
		}
		snaps = append(snaps, &firestoreSnap{snap: doc})
	}
	return snaps, nil
}

func (t *firestoreTx) Set(path string, data any) error {
	return t.tx.Set(t.client.Doc(path), data)
}

func (t *firestoreTx) Delete(path string) error {
	return t.tx.Delete(t.client.Doc(path))
}

func wrapFirestoreSnap(path string, snap *firestore.DocumentSnapshot, err error) (Snapshot, error) {
	if status.Code(err) == codes.NotFound {
		return missingSnap{path: path}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return &firestoreSnap{snap: snap}, nil
}

type firestoreSnap struct {
	snap *firestore.DocumentSnapshot
}

func (s *firestoreSnap) Exists() bool { return s.snap.Exists() }

func (s *firestoreSnap) ID() string { return s.snap.Ref.ID }

func (s *firestoreSnap) DataTo(dst any) error {
	if err := s.snap.DataTo(dst); err != nil {
		// If this fails, we have an inconsistency error as we control both
		// the data written to Firestore and the shape of our record structs.
		return fmt.Errorf("consistency error. Converting %s to record struct failed: %w", s.snap.Ref.Path, err)
	}
	return nil
}

type missingSnap struct {
	path string
}

func (s missingSnap) Exists() bool { return false }

func (s missingSnap) ID() string {
	for i := len(s.path) - 1; i >= 0; i-- {
		if s.path[i] == '/' {
			return s.path[i+1:]
		}
	}
	return s.path
}

func (s missingSnap) DataTo(any) error {
	return fmt.Errorf("document %s does not exist", s.path)
}
