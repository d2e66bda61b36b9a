package inference

import (
	"os"
	"sync"

	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/agrovision-ai/go-crops/classes"
	"github.com/agrovision-ai/go-crops/images"
)

// Config configures classifier loading.
type Config struct {
	// CheckpointPath points at a bare ONNX graph or a JSON checkpoint
	// manifest (see ResolveCheckpoint).
	CheckpointPath string `json:"checkpoint_path" yaml:"checkpoint_path"`
	// SharedLibPath overrides the bundled ONNX Runtime library location.
	SharedLibPath string `json:"shared_lib_path" yaml:"shared_lib_path"`
	// Backend selects the execution provider; BackendAuto probes for the
	// fastest available one.
	Backend Backend `json:"backend" yaml:"backend"`
	// Preprocess is the fixed preprocessing contract of the model.
	Preprocess images.Config `json:"preprocess" yaml:"preprocess"`
}

// Result is the outcome of classifying one image. Probabilities maps every
// label in the class registry to a percentage; the values sum to 100 within
// floating-point tolerance and PredictedClass is their argmax.
type Result struct {
	PredictedClass string             `json:"predicted_class"`
	Confidence     float32            `json:"confidence"`
	Probabilities  map[string]float32 `json:"all_probabilities"`
}

// runner is the narrow seam between the prediction pipeline and the native
// runtime: one forward pass over a CHW input buffer.
type runner interface {
	run(input []float32) ([]float32, error)
	close() error
}

// Classifier owns the loaded network and its resolved execution device for
// the process lifetime. It is loaded once and reused for all predictions.
// The forward pass is serialized internally, so a single Classifier may be
// shared across concurrent callers.
type Classifier struct {
	pre     *images.Preprocessor
	set     *classes.Set
	backend Backend
	meta    *Metadata

	mu  sync.Mutex
	run runner
}

// ortEnvOnce guards process-wide ONNX Runtime environment initialization.
var (
	ortEnvOnce sync.Once
	ortEnvErr  error
)

func initRuntime(libPath string) error {
	ortEnvOnce.Do(func() {
		if _, err := os.Stat(libPath); err != nil {
			ortEnvErr = errors.Wrapf(err, "ONNX Runtime library not found at %s", libPath)
			return
		}
		ort.SetSharedLibraryPath(libPath)
		ortEnvErr = ort.InitializeEnvironment()
	})
	return ortEnvErr
}

// NewClassifier restores the trained classifier from a checkpoint and binds
// it to the fastest available execution provider. The graph's output width
// is validated against the class registry at load time; a missing file or a
// shape mismatch fails with a *ModelLoadError before any prediction runs.
//
// ONNX Runtime sessions are inference-only: no gradients are tracked and no
// training-time stochastic behavior exists to disable.
func NewClassifier(cfg Config, set *classes.Set) (*Classifier, error) {
	ckpt, err := ResolveCheckpoint(cfg.CheckpointPath)
	if err != nil {
		return nil, err
	}

	libPath := cfg.SharedLibPath
	if libPath == "" {
		libPath = SharedLibPath()
	}
	if err := initRuntime(libPath); err != nil {
		return nil, &ModelLoadError{Path: ckpt.ModelPath, Reason: "runtime initialization failed", Err: err}
	}

	pre := images.NewPreprocessor(cfg.Preprocess)
	n := int64(pre.Config().InputSize)

	inputs, outputs, err := ort.GetInputOutputInfo(ckpt.ModelPath)
	if err != nil {
		return nil, &ModelLoadError{Path: ckpt.ModelPath, Reason: "unreadable model graph", Err: err}
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, &ModelLoadError{
			Path:   ckpt.ModelPath,
			Reason: "classifier graphs must have exactly one input and one output",
		}
	}
	if err := validateShapes(inputs[0].Dimensions, outputs[0].Dimensions, n, set.Count()); err != nil {
		return nil, &ModelLoadError{Path: ckpt.ModelPath, Reason: err.Error()}
	}

	run, backend, err := newORTSession(ckpt.ModelPath, inputs[0].Name, outputs[0].Name, n, set.Count(), cfg.Backend)
	if err != nil {
		return nil, &ModelLoadError{Path: ckpt.ModelPath, Reason: "session creation failed", Err: err}
	}

	return &Classifier{
		pre:     pre,
		set:     set,
		backend: backend,
		meta:    ckpt.Metadata,
		run:     run,
	}, nil
}

// validateShapes checks the static graph dimensions against the configured
// topology. Dynamic dimensions (<= 0) are accepted; they resolve at run
// time against the fixed tensors allocated below.
func validateShapes(in, out []int64, inputSize int64, classCount int) error {
	if len(in) == 4 {
		if in[1] > 0 && in[1] != 3 {
			return errors.Errorf("model expects %d input channels, want 3", in[1])
		}
		if in[2] > 0 && in[2] != inputSize {
			return errors.Errorf("model expects %dx%d input, configured for %dx%d",
				in[2], in[3], inputSize, inputSize)
		}
	}
	if len(out) == 0 {
		return errors.New("model output has no dimensions")
	}
	width := out[len(out)-1]
	if width > 0 && width != int64(classCount) {
		return errors.Errorf("model produces %d classes, class config has %d", width, classCount)
	}
	return nil
}

// Backend returns the execution provider the classifier was bound to.
func (c *Classifier) Backend() Backend {
	return c.backend
}

// Metadata returns training metadata from the checkpoint manifest, or nil
// when the checkpoint was a bare graph.
func (c *Classifier) Metadata() *Metadata {
	return c.meta
}

// Classes returns the class registry the classifier was loaded against.
func (c *Classifier) Classes() *classes.Set {
	return c.set
}

// Predict classifies a single image: preprocess, one forward pass, softmax
// across the class dimension, argmax for the predicted label. Every call
// produces the full per-class percentage mapping, even at low confidence.
func (c *Classifier) Predict(src images.Source) (*Result, error) {
	tensor, err := c.pre.Preprocess(src)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.run == nil {
		c.mu.Unlock()
		return nil, errors.New("classifier is closed")
	}
	logits, err := c.run.run(tensor.Data)
	c.mu.Unlock()
	if err != nil {
		return nil, errors.Wrapf(err, "forward pass for %s", src.Name())
	}

	probs := softmax(logits)
	best := argmax(probs)

	labels := c.set.Labels()
	all := make(map[string]float32, len(labels))
	for i, label := range labels {
		all[label] = probs[i] * 100
	}

	return &Result{
		PredictedClass: labels[best],
		Confidence:     probs[best] * 100,
		Probabilities:  all,
	}, nil
}

// PredictBatch classifies each image independently, preserving input order.
// The first failure propagates to the caller, which decides whether to
// skip-and-continue or abort; nothing is swallowed at this layer.
func (c *Classifier) PredictBatch(srcs []images.Source) ([]*Result, error) {
	results := make([]*Result, 0, len(srcs))
	for i, src := range srcs {
		result, err := c.Predict(src)
		if err != nil {
			return nil, errors.Wrapf(err, "image %d", i)
		}
		results = append(results, result)
	}
	return results, nil
}

// Close releases the native session and its tensors.
func (c *Classifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run == nil {
		return nil
	}
	err := c.run.close()
	c.run = nil
	return err
}
