package lifecycle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scantree/scantree/internal/ctxlog"
	"github.com/scantree/scantree/internal/nodepath"
)

const (
	// RecordFile is the status record's file name inside a node directory.
	RecordFile = "status.json"
	// lockFile serializes writers of a single node's record.
	lockFile = "status.lock"
)

// FileStore implements Store on a shared filesystem. One record file per
// node partitions contention: callers on different nodes touch different
// files and never block each other.
type FileStore struct {
	root string

	// LockWait bounds how long a transition waits for a competitor to
	// release the node lock before giving up.
	LockWait time.Duration
	// LockRetry is the poll interval while waiting for the lock.
	LockRetry time.Duration
	// LockStale is the age past which a leftover lock (a worker that died
	// mid-transition) is broken.
	LockStale time.Duration
}

// NewFileStore creates a store rooted at the campaign directory.
func NewFileStore(root string) *FileStore {
	return &FileStore{
		root:      root,
		LockWait:  5 * time.Second,
		LockRetry: 10 * time.Millisecond,
		LockStale: 30 * time.Second,
	}
}

// Root returns the campaign directory this store operates on.
func (s *FileStore) Root() string {
	return s.root
}

func (s *FileStore) recordPath(node nodepath.Path) string {
	return filepath.Join(node.FSPath(s.root), RecordFile)
}

// Init creates the PENDING record for a freshly materialized node. An
// existing record is left exactly as it is: lifecycle state is strictly
// more durable than configuration content.
func (s *FileStore) Init(ctx context.Context, node nodepath.Path) error {
	unlock, err := s.lock(ctx, node)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := os.Stat(s.recordPath(node)); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking status record for %q: %w", node.String(), err)
	}

	rec := Record{
		Status:    StatusPending,
		Seq:       0,
		UpdatedAt: time.Now().UTC(),
	}
	return s.commit(node, rec)
}

// Read returns a node's current record.
func (s *FileStore) Read(ctx context.Context, node nodepath.Path) (Record, error) {
	data, err := os.ReadFile(s.recordPath(node))
	if errors.Is(err, fs.ErrNotExist) {
		return Record{}, fmt.Errorf("node %q: %w", node.String(), ErrNotInitialized)
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading status record for %q: %w", node.String(), err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("decoding status record for %q: %w", node.String(), err)
	}
	return rec, nil
}

// Transition performs the compare-and-set described by the Store contract.
// The sequence is: take the node lock, re-read, verify the expected state
// and the state machine, commit via atomic rename, release.
func (s *FileStore) Transition(ctx context.Context, node nodepath.Path, from, to Status, log string) (Record, error) {
	unlock, err := s.lock(ctx, node)
	if err != nil {
		return Record{}, err
	}
	defer unlock()

	cur, err := s.Read(ctx, node)
	if err != nil {
		return Record{}, err
	}
	if cur.Status != from || !allowed(from, to) {
		return Record{}, &TransitionError{
			Node:   node.String(),
			From:   from,
			To:     to,
			Actual: cur.Status,
		}
	}

	next := Record{
		Status:    to,
		Seq:       cur.Seq + 1,
		UpdatedAt: time.Now().UTC(),
		Log:       log,
	}
	if err := s.commit(node, next); err != nil {
		return Record{}, err
	}
	return next, nil
}

// Snapshot walks the campaign directory and collects every node's record,
// keyed by canonical node path. A record that cannot be parsed (external
// damage; the commit path itself is rename-atomic) is reported as PENDING
// with a note in its log, and logged, rather than failing the scan.
func (s *FileStore) Snapshot(ctx context.Context) (map[string]Record, error) {
	logger := ctxlog.FromContext(ctx)
	out := make(map[string]Record)

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != RecordFile {
			return nil
		}
		rel, err := filepath.Rel(s.root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}
		node, err := nodepath.Parse(filepath.ToSlash(rel))
		if err != nil {
			logger.Warn("Skipping status record at unaddressable path.", "path", path, "error", err)
			return nil
		}

		rec, err := s.Read(ctx, node)
		if err != nil {
			logger.Warn("Unreadable status record, reporting as PENDING.", "node", node.String(), "error", err)
			rec = Record{Status: StatusPending, Log: fmt.Sprintf("unreadable record: %v", err)}
		}
		out[node.String()] = rec
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning status records under %s: %w", s.root, err)
	}
	return out, nil
}

// lock acquires the per-node lock file, waiting out a live competitor and
// breaking a stale one. The returned function releases the lock.
func (s *FileStore) lock(ctx context.Context, node nodepath.Path) (func(), error) {
	dir := node.FSPath(s.root)
	path := filepath.Join(dir, lockFile)
	token := uuid.NewString()
	deadline := time.Now().Add(s.LockWait)

	for {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%s %d %s\n", token, os.Getpid(), time.Now().UTC().Format(time.RFC3339Nano))
			f.Close()
			return func() { os.Remove(path) }, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, fmt.Errorf("locking node %q: %w", node.String(), err)
		}

		if info, statErr := os.Stat(path); statErr == nil && time.Since(info.ModTime()) > s.LockStale {
			// The holder died mid-transition. Its record is whatever was
			// last renamed into place, so breaking the lock is safe.
			os.Remove(path)
			continue
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("locking node %q: competitor did not release within %s", node.String(), s.LockWait)
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.LockRetry):
		}
	}
}

// commit writes the record to a temporary file in the node directory and
// renames it over the live one. Rename on the same filesystem is atomic, so
// readers only ever observe a fully written record.
func (s *FileStore) commit(node nodepath.Path, rec Record) error {
	dir := node.FSPath(s.root)
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding status record for %q: %w", node.String(), err)
	}

	tmp, err := os.CreateTemp(dir, RecordFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("staging status record for %q: %w", node.String(), err)
	}
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("staging status record for %q: %w", node.String(), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("staging status record for %q: %w", node.String(), err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, RecordFile)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("committing status record for %q: %w", node.String(), err)
	}
	return nil
}
