package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/OmranKaddah/Ze-Neuz-lettah-Aye-gendt/internal/orchestrator"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SnapshotVersion is the current snapshot format.
const SnapshotVersion = 1

// ErrUnsupportedVersion is returned when a snapshot was written by an
// incompatible format version.
var ErrUnsupportedVersion = errors.New("unsupported snapshot version")

// Snapshot is the persisted form of a finished workflow run.
type Snapshot struct {
	Version   int                 `yaml:"version"`
	RunID     string              `yaml:"runId"`
	Model     string              `yaml:"model,omitempty"`
	CreatedAt time.Time           `yaml:"createdAt"`
	State     *orchestrator.State `yaml:"state"`
}

// NewSnapshot wraps st in a snapshot with a fresh run ID.
func NewSnapshot(st *orchestrator.State, model string, now time.Time) Snapshot {
	return Snapshot{
		Version:   SnapshotVersion,
		RunID:     uuid.NewString(),
		Model:     model,
		CreatedAt: now.UTC(),
		State:     st,
	}
}

// SnapshotPath returns the file name used for a snapshot in dir.
func SnapshotPath(dir string, snap Snapshot) string {
	return filepath.Join(dir, fmt.Sprintf("state_%s_%s.yaml",
		snap.CreatedAt.Format("20060102_150405"), snap.RunID[:8]))
}

// SaveSnapshot writes snap to path as YAML, creating parent directories.
func SaveSnapshot(path string, snap Snapshot) error {
	data, err := yaml.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot reads a snapshot written by SaveSnapshot.
func LoadSnapshot(path string) (Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot %s: %w", path, err)
	}
	if snap.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("%w: %d (want %d)", ErrUnsupportedVersion, snap.Version, SnapshotVersion)
	}
	if snap.State == nil {
		snap.State = &orchestrator.State{}
	}
	return snap, nil
}
