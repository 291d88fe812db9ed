// Package archive freezes a completed period's derived artifacts into an
// immutable, manifested bundle. A freeze is all-or-nothing: either every
// required artifact is captured and one manifest is written, or nothing
// is.
package archive

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/wonny/almanac/internal/contracts"
	"github.com/wonny/almanac/pkg/logger"
)

// Artifact names one file to capture
type Artifact struct {
	LogicalName string
	Path        string
}

// Manager copies period artifacts into the archive root and writes the
// write-once manifest
type Manager struct {
	root   string
	logger *logger.Logger
}

// NewManager creates an archive manager rooted at dir
func NewManager(root string, log *logger.Logger) *Manager {
	return &Manager{root: root, logger: log}
}

// Freeze captures a period. Every required artifact must exist and be
// readable; all missing or unreadable ones are reported together.
// Optional artifacts that are absent are skipped and noted. Copies are
// staged into a temp directory and renamed into place in one step, so a
// failed capture never leaves a partial archive visible. The manifest is
// written exactly once, after every copy has succeeded; re-freezing a
// period fails with AlreadyFrozenError instead of overwriting history.
func (m *Manager) Freeze(period string, required, optional []Artifact) (*contracts.ArchiveManifest, error) {
	archiveDir := filepath.Join(m.root, period)
	manifestPath := m.ManifestPath(period)

	if _, err := os.Stat(manifestPath); err == nil {
		return nil, &contracts.AlreadyFrozenError{Period: period, Manifest: manifestPath}
	}

	var missing []string
	for _, art := range required {
		if !readableFile(art.Path) {
			missing = append(missing, art.Path)
		}
	}
	if len(missing) > 0 {
		return nil, &contracts.IncompleteSnapshotError{Period: period, Missing: missing}
	}

	if err := os.MkdirAll(m.root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive root: %w", err)
	}

	staging, err := os.MkdirTemp(m.root, period+".staging-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging dir: %w", err)
	}
	defer os.RemoveAll(staging)

	manifest := &contracts.ArchiveManifest{
		Period:     period,
		CreatedAt:  time.Now().UTC(),
		ArchiveDir: archiveDir,
	}

	for _, art := range required {
		captured, err := m.capture(staging, archiveDir, art)
		if err != nil {
			return nil, fmt.Errorf("freeze %s: %w", period, err)
		}
		manifest.Files = append(manifest.Files, captured)
	}

	for _, art := range optional {
		if _, err := os.Stat(art.Path); err != nil {
			m.logger.WithFields(map[string]interface{}{
				"period":   period,
				"artifact": art.LogicalName,
			}).Warn("Optional artifact not found, skipped")
			manifest.SkippedOptional = append(manifest.SkippedOptional, art.LogicalName)
			continue
		}
		captured, err := m.capture(staging, archiveDir, art)
		if err != nil {
			return nil, fmt.Errorf("freeze %s: %w", period, err)
		}
		manifest.Files = append(manifest.Files, captured)
	}

	if err := writeManifest(filepath.Join(staging, period+"_manifest.json"), manifest); err != nil {
		return nil, fmt.Errorf("freeze %s: %w", period, err)
	}

	// A crashed earlier attempt can leave a manifest-less period dir;
	// it holds no committed state (the manifest check above ran) and
	// must make way for the staged bundle
	if err := os.RemoveAll(archiveDir); err != nil {
		return nil, fmt.Errorf("freeze %s: %w", period, err)
	}
	if err := os.Rename(staging, archiveDir); err != nil {
		return nil, fmt.Errorf("freeze %s: failed to publish archive: %w", period, err)
	}

	m.logger.WithFields(map[string]interface{}{
		"period":  period,
		"files":   len(manifest.Files),
		"skipped": len(manifest.SkippedOptional),
		"dir":     archiveDir,
	}).Info("Period frozen")

	return manifest, nil
}

// Frozen reports whether a period already has a manifest
func (m *Manager) Frozen(period string) bool {
	_, err := os.Stat(m.ManifestPath(period))
	return err == nil
}

// ManifestPath returns the manifest location for a period
func (m *Manager) ManifestPath(period string) string {
	return filepath.Join(m.root, period, period+"_manifest.json")
}

// capture copies one artifact verbatim into the staging dir. The
// recorded target is the final archive location the staged file lands
// at after the publish rename.
func (m *Manager) capture(stagingDir, archiveDir string, art Artifact) (contracts.ArchivedFile, error) {
	base := filepath.Base(art.Path)
	target := filepath.Join(archiveDir, base)

	n, err := copyFile(art.Path, filepath.Join(stagingDir, base))
	if err != nil {
		return contracts.ArchivedFile{}, fmt.Errorf("failed to archive %s: %w", art.LogicalName, err)
	}

	m.logger.WithFields(map[string]interface{}{
		"artifact": art.LogicalName,
		"target":   target,
	}).Debug("Archived artifact")

	return contracts.ArchivedFile{
		LogicalName: art.LogicalName,
		Source:      art.Path,
		Target:      target,
		Bytes:       n,
		CapturedAt:  time.Now().UTC(),
	}, nil
}

// readableFile reports whether path is a regular file that can be
// opened for reading
func readableFile(path string) bool {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return 0, err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return 0, err
	}
	return n, nil
}

func writeManifest(path string, manifest *contracts.ArchiveManifest) error {
	data, err := encodeManifest(manifest)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
