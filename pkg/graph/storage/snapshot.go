package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/kartikay23230/pubtator-kg/pkg/graph"
)

// Snapshot is a named, timestamped graph projection saved for
// before/after comparison by the visualization layer.
type Snapshot struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Timestamp  time.Time         `json:"timestamp"`
	NodeCount  int               `json:"node_count"`
	RelCount   int               `json:"rel_count"`
	Projection *graph.Projection `json:"projection"`
}

// SnapshotInfo describes an available snapshot without loading it.
type SnapshotInfo struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
}

// SnapshotStore keeps snapshots as JSON blobs in a directory, keyed by
// name. Saving under an existing name overwrites it.
type SnapshotStore struct {
	dir string
}

// NewSnapshotStore returns a store rooted at dir, creating it if
// needed.
func NewSnapshotStore(dir string) (*SnapshotStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "create snapshot directory")
	}
	return &SnapshotStore{dir: dir}, nil
}

// DefaultSnapshotDir is where snapshots live unless overridden.
func DefaultSnapshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "graph_snapshots"
	}
	return filepath.Join(home, "thesis", "graph_snapshots")
}

func (s *SnapshotStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Save writes the projection under the given name.
func (s *SnapshotStore) Save(name string, projection *graph.Projection) (*Snapshot, error) {
	snapshot := &Snapshot{
		ID:         uuid.New().String(),
		Name:       name,
		Timestamp:  time.Now(),
		NodeCount:  len(projection.Nodes),
		RelCount:   len(projection.Relationships),
		Projection: projection,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encode snapshot")
	}
	if err := os.WriteFile(s.path(name), data, 0644); err != nil {
		return nil, errors.Wrapf(err, "write snapshot %s", name)
	}
	return snapshot, nil
}

// Load reads the snapshot with the given name.
func (s *SnapshotStore) Load(name string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "snapshot %s not found", name)
	}
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.Wrapf(err, "decode snapshot %s", name)
	}
	return &snapshot, nil
}

// List returns the available snapshots, most recent first.
func (s *SnapshotStore) List() ([]SnapshotInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errors.Wrap(err, "list snapshots")
	}
	var infos []SnapshotInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		infos = append(infos, SnapshotInfo{
			Name:      strings.TrimSuffix(entry.Name(), ".json"),
			Timestamp: info.ModTime(),
		})
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Timestamp.After(infos[j].Timestamp)
	})
	return infos, nil
}
