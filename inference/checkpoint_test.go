package inference

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCheckpointBareGraph(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best_model.onnx")
	require.NoError(t, os.WriteFile(path, []byte("onnx"), 0o644))

	ckpt, err := ResolveCheckpoint(path)
	require.NoError(t, err)

	assert.Equal(t, path, ckpt.ModelPath)
	assert.Nil(t, ckpt.Metadata)
}

func TestResolveCheckpointManifest(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "best_model.onnx")
	require.NoError(t, os.WriteFile(modelPath, []byte("onnx"), 0o644))

	manifestPath := filepath.Join(dir, "checkpoint.json")
	manifest := `{
		"model_path": "best_model.onnx",
		"epoch": 24,
		"val_accuracy": 0.937,
		"classes": ["Bacterialblight", "Blast", "Brownspot"]
	}`
	require.NoError(t, os.WriteFile(manifestPath, []byte(manifest), 0o644))

	ckpt, err := ResolveCheckpoint(manifestPath)
	require.NoError(t, err)

	assert.Equal(t, modelPath, ckpt.ModelPath)
	require.NotNil(t, ckpt.Metadata)
	assert.Equal(t, 24, ckpt.Metadata.Epoch)
	assert.InDelta(t, 0.937, ckpt.Metadata.ValAccuracy, 1e-9)
	assert.Equal(t, []string{"Bacterialblight", "Blast", "Brownspot"}, ckpt.Metadata.Classes)
}

func TestResolveCheckpointManifestAbsolutePath(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "model.onnx")
	require.NoError(t, os.WriteFile(modelPath, []byte("onnx"), 0o644))

	manifestPath := filepath.Join(t.TempDir(), "checkpoint.json")
	require.NoError(t, os.WriteFile(manifestPath,
		[]byte(`{"model_path": "`+modelPath+`"}`), 0o644))

	ckpt, err := ResolveCheckpoint(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, modelPath, ckpt.ModelPath)
}

func TestResolveCheckpointFailures(t *testing.T) {
	dir := t.TempDir()

	missingModel := filepath.Join(dir, "dangling.json")
	require.NoError(t, os.WriteFile(missingModel, []byte(`{"model_path": "gone.onnx"}`), 0o644))

	noModelPath := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(noModelPath, []byte(`{"epoch": 3}`), 0o644))

	badJSON := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(badJSON, []byte(`{"model_path":`), 0o644))

	tests := []struct {
		name string
		path string
	}{
		{name: "missing checkpoint", path: filepath.Join(dir, "absent.onnx")},
		{name: "directory", path: dir},
		{name: "manifest model missing", path: missingModel},
		{name: "manifest without model_path", path: noModelPath},
		{name: "malformed manifest", path: badJSON},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveCheckpoint(tt.path)
			require.Error(t, err)

			var loadErr *ModelLoadError
			assert.ErrorAs(t, err, &loadErr)
		})
	}
}

func TestValidateShapes(t *testing.T) {
	tests := []struct {
		name    string
		in      []int64
		out     []int64
		wantErr bool
	}{
		{name: "exact match", in: []int64{1, 3, 224, 224}, out: []int64{1, 3}},
		{name: "dynamic batch", in: []int64{-1, 3, 224, 224}, out: []int64{-1, 3}},
		{name: "dynamic spatial dims", in: []int64{1, 3, -1, -1}, out: []int64{1, 3}},
		{name: "wrong class count", in: []int64{1, 3, 224, 224}, out: []int64{1, 5}, wantErr: true},
		{name: "wrong input size", in: []int64{1, 3, 640, 640}, out: []int64{1, 3}, wantErr: true},
		{name: "wrong channels", in: []int64{1, 1, 224, 224}, out: []int64{1, 3}, wantErr: true},
		{name: "empty output", in: []int64{1, 3, 224, 224}, out: nil, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateShapes(tt.in, tt.out, 224, 3)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSoftmax(t *testing.T) {
	probs := softmax([]float32{2.0, 1.0, 0.1})

	var sum float32
	for _, p := range probs {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
	assert.Equal(t, 0, argmax(probs))
	assert.True(t, probs[0] > probs[1] && probs[1] > probs[2])

	// Large logits must not overflow.
	probs = softmax([]float32{1000, 999, 998})
	assert.False(t, probs[0] != probs[0], "softmax produced NaN")
	assert.Equal(t, 0, argmax(probs))
}

func TestArgmaxTieBreaksLow(t *testing.T) {
	assert.Equal(t, 1, argmax([]float32{0.1, 0.4, 0.4}))
}
