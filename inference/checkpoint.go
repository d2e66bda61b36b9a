package inference

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
)

// Metadata is the optional training metadata a checkpoint manifest may
// carry. The loader surfaces it but never requires it.
type Metadata struct {
	Epoch       int      `json:"epoch,omitempty"`
	ValAccuracy float64  `json:"val_accuracy,omitempty"`
	Classes     []string `json:"classes,omitempty"`
}

// Checkpoint is a resolved checkpoint: the ONNX graph to load plus any
// training metadata that accompanied it.
type Checkpoint struct {
	// ModelPath is the path to the ONNX graph file.
	ModelPath string
	// Metadata holds training metadata from a manifest, nil for a bare
	// graph checkpoint.
	Metadata *Metadata
}

// manifest is the structured checkpoint shape: a record pointing at the
// graph file plus optional training metadata.
type manifest struct {
	ModelPath string `json:"model_path"`
	Metadata
}

// ResolveCheckpoint accepts both checkpoint shapes: a bare ONNX graph file,
// or a JSON manifest with a model_path key plus optional metadata (epoch,
// recorded validation accuracy, class list). The manifest is the canonical
// long-term shape; bare graphs remain supported for checkpoints exported
// without metadata.
//
// A relative model_path in a manifest is resolved against the manifest's
// directory.
func ResolveCheckpoint(path string) (*Checkpoint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Reason: "checkpoint not found", Err: err}
	}
	if info.IsDir() {
		return nil, &ModelLoadError{Path: path, Reason: "checkpoint is a directory"}
	}

	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return &Checkpoint{ModelPath: path}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ModelLoadError{Path: path, Reason: "checkpoint unreadable", Err: err}
	}

	var m manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &ModelLoadError{Path: path, Reason: "invalid checkpoint manifest", Err: err}
	}
	if m.ModelPath == "" {
		return nil, &ModelLoadError{Path: path, Reason: "checkpoint manifest has no model_path"}
	}

	modelPath := m.ModelPath
	if !filepath.IsAbs(modelPath) {
		modelPath = filepath.Join(filepath.Dir(path), modelPath)
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, &ModelLoadError{Path: modelPath, Reason: "model file not found", Err: err}
	}

	meta := m.Metadata
	return &Checkpoint{ModelPath: modelPath, Metadata: &meta}, nil
}
