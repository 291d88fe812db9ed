package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wonny/almanac/internal/contracts"
)

// FileStore keeps one directory per domain under root, holding
// current.json and previous.json. Writes land in a temp file first and
// are renamed into place, so a crashed commit never leaves a partial
// snapshot visible.
type FileStore struct {
	root string
}

// NewFileStore creates a file-backed snapshot store rooted at dir
func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

// Load reads a generation for a domain
func (s *FileStore) Load(ctx context.Context, domain string, gen contracts.Generation) (*contracts.Snapshot, error) {
	data, err := os.ReadFile(s.path(domain, gen))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s/%s: %w", domain, gen, contracts.ErrSnapshotNotFound)
		}
		return nil, fmt.Errorf("failed to read snapshot %s/%s: %w", domain, gen, err)
	}

	var snap contracts.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s/%s: %w", domain, gen, err)
	}

	// Rotation renames the file without rewriting it, so the stored
	// generation label can lag the file's role
	snap.Generation = gen
	return &snap, nil
}

// Save writes a snapshot atomically
func (s *FileStore) Save(ctx context.Context, snap *contracts.Snapshot) error {
	dir := filepath.Join(s.root, snap.Domain)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot dir: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(dir, string(snap.Generation)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, s.path(snap.Domain, snap.Generation)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to publish snapshot: %w", err)
	}
	return nil
}

// Rotate renames current.json to previous.json. Rename is atomic and
// replaces any existing previous. Missing current is the first-run
// no-op.
func (s *FileStore) Rotate(ctx context.Context, domain string) error {
	curr := s.path(domain, contracts.GenerationCurrent)
	if _, err := os.Stat(curr); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat current snapshot: %w", err)
	}

	prev := s.path(domain, contracts.GenerationPrevious)
	if err := os.Rename(curr, prev); err != nil {
		return fmt.Errorf("failed to rotate snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) path(domain string, gen contracts.Generation) string {
	return filepath.Join(s.root, domain, string(gen)+".json")
}
