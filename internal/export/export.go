// Package export writes viewer snapshots to disk as PNG files.
package export

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"medview/internal/study"
)

// Exporter saves composited viewer frames into a target directory.
type Exporter struct {
	dir string
	now func() time.Time
}

// New creates an exporter writing into dir. An empty dir falls back to the
// user's home directory, then the working directory.
func New(dir string) *Exporter {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = home
		} else {
			dir = "."
		}
	}
	return &Exporter{dir: dir, now: time.Now}
}

// Filename builds the snapshot filename encoding modality, slice, and
// timestamp.
func (e *Exporter) Filename(modality study.Modality, slice int) string {
	return fmt.Sprintf("%s_slice%d_%s.png",
		modality, slice, e.now().Format("20060102-150405"))
}

// Save writes the image as a PNG and returns the full path written.
func (e *Exporter) Save(img image.Image, modality study.Modality, slice int) (string, error) {
	if img == nil {
		return "", fmt.Errorf("no rendered frame to export")
	}

	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(e.dir, e.Filename(modality, slice))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return path, nil
}
