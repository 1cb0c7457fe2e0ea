package batch

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Manifest describes one rendered sequence.
type Manifest struct {
	RunID    string          `json:"run_id"`
	Created  time.Time       `json:"created"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Format   string          `json:"format"`
	Frames   []ManifestEntry `json:"frames"`
	Rendered int             `json:"rendered"`
}

// ManifestEntry represents one frame in the output manifest.
type ManifestEntry struct {
	Frame int     `json:"frame"`
	Angle float64 `json:"angle"`
	View  string  `json:"view"`
	Image string  `json:"image,omitempty"`
	Error string  `json:"error,omitempty"`
}

// NewManifest builds a manifest from results with a fresh run id.
func NewManifest(cfg Config, results []Result, now time.Time) Manifest {
	m := Manifest{
		RunID:   uuid.NewString(),
		Created: now,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Format:  cfg.Format,
		Frames:  make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{Frame: r.Frame, Angle: r.Angle, View: r.View}
		if r.Success {
			e.Image = r.Image
			m.Rendered++
		} else {
			e.Error = r.Error
		}
		m.Frames[i] = e
	}
	return m
}

// WriteManifest writes the manifest as indented JSON.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return errors.Wrap(err, "manifest: marshal")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0o644), "manifest: write %s", path)
}
