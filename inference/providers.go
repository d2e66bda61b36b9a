package inference

import (
	"runtime"

	ort "github.com/yalue/onnxruntime_go"
)

// Backend identifies the ONNX Runtime execution provider the classifier
// runs on. Selection happens once at load time and is never re-evaluated
// per call.
type Backend string

const (
	// BackendCUDA uses NVIDIA CUDA acceleration.
	BackendCUDA Backend = "cuda"
	// BackendCoreML uses Apple CoreML acceleration.
	BackendCoreML Backend = "coreml"
	// BackendCPU is the general-purpose CPU fallback.
	BackendCPU Backend = "cpu"
	// BackendAuto selects the fastest available provider.
	BackendAuto Backend = "auto"
)

// SharedLibPath returns the bundled ONNX Runtime shared library path for
// the current platform.
func SharedLibPath() string {
	if runtime.GOOS == "windows" {
		return "third_party/onnxruntime.dll"
	}
	if runtime.GOOS == "darwin" {
		return "third_party/libonnxruntime.dylib"
	}
	if runtime.GOOS == "linux" && runtime.GOARCH == "arm64" {
		return "third_party/onnxruntime_arm64.so"
	}
	return "third_party/onnxruntime.so"
}

// applyBackend appends the requested execution provider to the session
// options. With BackendAuto it probes accelerators in preference order
// (CUDA, then CoreML on darwin) and falls back to CPU when none attaches.
// The resolved backend is returned.
func applyBackend(options *ort.SessionOptions, backend Backend) (Backend, error) {
	switch backend {
	case BackendCUDA:
		return BackendCUDA, appendCUDA(options)
	case BackendCoreML:
		return BackendCoreML, options.AppendExecutionProviderCoreML(0)
	case BackendCPU:
		return BackendCPU, nil
	}

	// Auto: accelerator if present, else CPU.
	if err := appendCUDA(options); err == nil {
		return BackendCUDA, nil
	}
	if runtime.GOOS == "darwin" {
		if err := options.AppendExecutionProviderCoreML(0); err == nil {
			return BackendCoreML, nil
		}
	}
	return BackendCPU, nil
}

func appendCUDA(options *ort.SessionOptions) error {
	cudaOpts, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return err
	}
	defer cudaOpts.Destroy()
	return options.AppendExecutionProviderCUDA(cudaOpts)
}
