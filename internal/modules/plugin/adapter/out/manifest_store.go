package out

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"studysphere/internal/modules/plugin/domain"
	pluginout "studysphere/internal/modules/plugin/port/out"
)

// FileManifestStore reads <data>/plugins/plugins.json. Relative binary
// paths are resolved against the data directory.
type FileManifestStore struct {
	dataDir string
	path    string
}

func ManifestPath(dataDir string) string {
	return filepath.Join(dataDir, "plugins", "plugins.json")
}

func NewFileManifestStore(dataDir string) pluginout.ManifestStore {
	return &FileManifestStore{dataDir: dataDir, path: ManifestPath(dataDir)}
}

func (s *FileManifestStore) Load(_ context.Context) ([]domain.Manifest, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.Manifest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plugin manifests: %w", err)
	}
	var manifests []domain.Manifest
	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&manifests); err != nil {
		return nil, fmt.Errorf("decode plugin manifests: %w", err)
	}
	for i := range manifests {
		if manifests[i].Binary != "" && !filepath.IsAbs(manifests[i].Binary) {
			manifests[i].Binary = filepath.Join(s.dataDir, manifests[i].Binary)
		}
	}
	return manifests, nil
}
