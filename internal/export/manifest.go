package export

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/google/uuid"
)

// Manifest records the provenance of one render run: which input
// produced which artifacts, and the headline number. Enough to tell
// whether two runs saw the same bytes.
type Manifest struct {
	RunID         string    `json:"run_id"`
	CreatedAt     time.Time `json:"created_at"`
	Dataset       string    `json:"dataset"`
	DatasetSHA256 string    `json:"dataset_sha256"`
	Rows          int       `json:"rows"`
	AvgDelta      *float64  `json:"avg_delta"`
	Outputs       []string  `json:"outputs"`
}

// NewManifest hashes the dataset and stamps a fresh run id.
func NewManifest(datasetPath string, rows int, avgDelta float64, outputs []string) (Manifest, error) {
	sum, err := fileSHA256(datasetPath)
	if err != nil {
		return Manifest{}, err
	}
	m := Manifest{
		RunID:         uuid.NewString(),
		CreatedAt:     time.Now().UTC(),
		Dataset:       datasetPath,
		DatasetSHA256: sum,
		Rows:          rows,
		Outputs:       outputs,
	}
	if !math.IsNaN(avgDelta) {
		m.AvgDelta = &avgDelta
	}
	return m, nil
}

// Write serializes the manifest as indented JSON, overwriting path.
func (m Manifest) Write(path string) error {
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

func fileSHA256(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for hash: %w", err)
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}
