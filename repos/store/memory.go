package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Memory is an in-process Store with the same optimistic semantics as the
// Firestore adapter: every document a transaction read (present or missing)
// is verified unchanged at commit, and the first committer wins. Documents
// round-trip through JSON so snapshots never alias live state.
type Memory struct {
	mu    sync.Mutex
	seq   int64
	docs  map[string]memDoc
	colls map[string]int64
}

type memDoc struct {
	data    []byte
	version int64
}

func NewMemory() *Memory {
	return &Memory{
		docs:  make(map[string]memDoc),
		colls: make(map[string]int64),
	}
}

func (m *Memory) RunTransaction(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	tx := &memTx{
		m:         m,
		reads:     make(map[string]int64),
		collReads: make(map[string]int64),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return m.commit(tx)
}

func (m *Memory) Get(_ context.Context, path string) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked(path), nil
}

func (m *Memory) GetAll(_ context.Context, collectionPath string) ([]Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var snaps []Snapshot
	for _, path := range m.childrenLocked(collectionPath) {
		snaps = append(snaps, m.snapshotLocked(path))
	}
	return snaps, nil
}

func (m *Memory) commit(tx *memTx) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for path, version := range tx.reads {
		if m.docs[path].version != version {
			return ErrConflict
		}
	}
	for coll, version := range tx.collReads {
		if m.colls[coll] != version {
			return ErrConflict
		}
	}

	for _, w := range tx.writes {
		m.seq++
		_, existed := m.docs[w.path]
		if w.data == nil {
			if existed {
				delete(m.docs, w.path)
				m.colls[parentCollection(w.path)] = m.seq
			}
			continue
		}
		m.docs[w.path] = memDoc{data: w.data, version: m.seq}
		if !existed {
			m.colls[parentCollection(w.path)] = m.seq
		}
	}
	return nil
}

func (m *Memory) snapshotLocked(path string) Snapshot {
	doc, ok := m.docs[path]
	if !ok {
		return missingSnap{path: path}
	}
	return &memSnap{path: path, data: doc.data}
}

func (m *Memory) childrenLocked(collectionPath string) []string {
	prefix := collectionPath + "/"
	var paths []string
	for path := range m.docs {
		rest, ok := strings.CutPrefix(path, prefix)
		if ok && !strings.Contains(rest, "/") {
			paths = append(paths, path)
		}
	}
	return paths
}

type memTx struct {
	m         *Memory
	reads     map[string]int64
	collReads map[string]int64
	writes    []memWrite
}

type memWrite struct {
	path string
	data []byte
}

func (t *memTx) Get(path string) (Snapshot, error) {
	if len(t.writes) > 0 {
		return nil, fmt.Errorf("read %s after write in transaction", path)
	}
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if _, seen := t.reads[path]; !seen {
		t.reads[path] = t.m.docs[path].version
	}
	return t.m.snapshotLocked(path), nil
}

func (t *memTx) GetAll(collectionPath string) ([]Snapshot, error) {
	if len(t.writes) > 0 {
		return nil, fmt.Errorf("read collection %s after write in transaction", collectionPath)
	}
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	if _, seen := t.collReads[collectionPath]; !seen {
		t.collReads[collectionPath] = t.m.colls[collectionPath]
	}
	var snaps []Snapshot
	for _, path := range t.m.childrenLocked(collectionPath) {
		if _, seen := t.reads[path]; !seen {
			t.reads[path] = t.m.docs[path].version
		}
		snaps = append(snaps, t.m.snapshotLocked(path))
	}
	return snaps, nil
}

func (t *memTx) Set(path string, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	t.writes = append(t.writes, memWrite{path: path, data: raw})
	return nil
}

func (t *memTx) Delete(path string) error {
	t.writes = append(t.writes, memWrite{path: path})
	return nil
}

type memSnap struct {
	path string
	data []byte
}

func (s *memSnap) Exists() bool { return true }

func (s *memSnap) ID() string {
	if i := strings.LastIndex(s.path, "/"); i >= 0 {
		return s.path[i+1:]
	}
	return s.path
}

func (s *memSnap) DataTo(dst any) error {
	if err := json.Unmarshal(s.data, dst); err != nil {
		return fmt.Errorf("consistency error. Converting %s to record struct failed: %w", s.path, err)
	}
	return nil
}

func parentCollection(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[:i]
	}
	return ""
}
