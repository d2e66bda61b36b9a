package inference

import (
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// ortSession is the native-runtime runner: an ONNX Runtime session with
// preallocated input and output tensors for a batch of one.
type ortSession struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
}

// newORTSession creates an inference session for a [1,3,n,n] input and a
// [1,classCount] output, bound to the requested execution provider.
func newORTSession(
	modelPath, inputName, outputName string,
	n int64,
	classCount int,
	backend Backend,
) (*ortSession, Backend, error) {
	input, err := ort.NewEmptyTensor[float32](ort.NewShape(1, 3, n, n))
	if err != nil {
		return nil, backend, errors.Wrap(err, "creating input tensor")
	}

	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(classCount)))
	if err != nil {
		input.Destroy()
		return nil, backend, errors.Wrap(err, "creating output tensor")
	}

	options, err := ort.NewSessionOptions()
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, backend, errors.Wrap(err, "creating session options")
	}
	defer options.Destroy()

	options.SetGraphOptimizationLevel(ort.GraphOptimizationLevelEnableExtended)

	resolved, err := applyBackend(options, backend)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, resolved, errors.Wrapf(err, "enabling %s execution provider", resolved)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{inputName},
		[]string{outputName},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{output},
		options,
	)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, resolved, errors.Wrap(err, "creating session")
	}

	return &ortSession{session: session, input: input, output: output}, resolved, nil
}

// run executes one forward pass. The caller serializes access; the
// preallocated tensors are reused between calls.
func (s *ortSession) run(input []float32) ([]float32, error) {
	data := s.input.GetData()
	if len(input) != len(data) {
		return nil, errors.Errorf("input has %d values, tensor expects %d", len(input), len(data))
	}
	copy(data, input)

	if err := s.session.Run(); err != nil {
		return nil, errors.Wrap(err, "session run")
	}

	out := s.output.GetData()
	logits := make([]float32, len(out))
	copy(logits, out)
	return logits, nil
}

func (s *ortSession) close() error {
	var firstErr error
	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.output != nil {
		s.output.Destroy()
		s.output = nil
	}
	if s.session != nil {
		if err := s.session.Destroy(); err != nil {
			firstErr = errors.Wrap(err, "destroying session")
		}
		s.session = nil
	}
	return firstErr
}
