// Package inference - Classifier loading and prediction over ONNX Runtime.
package inference

import "fmt"

// ModelLoadError indicates the checkpoint is missing, unreadable, or
// architecturally incompatible with the configured class count. It is fatal
// to classifier startup; callers may continue in a degraded mode without
// prediction capability.
type ModelLoadError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ModelLoadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("load model %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("load model %s: %s", e.Path, e.Reason)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}
