package archive

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/wonny/almanac/internal/contracts"
)

// encodeManifest renders the manifest as indented JSON, the structured
// key/value document downstream tooling reads
func encodeManifest(manifest *contracts.ArchiveManifest) ([]byte, error) {
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode manifest: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadManifest loads a previously written manifest
func ReadManifest(path string) (*contracts.ArchiveManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	var manifest contracts.ArchiveManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to decode manifest %s: %w", path, err)
	}
	return &manifest, nil
}
