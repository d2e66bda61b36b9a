// Package images - Deterministic image decoding and tensor preprocessing
// for classifier input.
package images

import (
	"bytes"
	"fmt"
	"image"
	"os"

	// Baseline raster formats accepted at the input boundary.
	_ "image/jpeg"
	_ "image/png"

	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// DecodeError indicates an input could not be interpreted as an image
// (corrupt bytes, unsupported format, zero-byte file). It is local to the
// offending input and never aborts sibling work in a batch.
type DecodeError struct {
	Name string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Name, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Source is one classifier input: a file path, a raw byte buffer, or an
// already-decoded image.
type Source struct {
	name string
	path string
	data []byte
	img  image.Image
}

// FileSource wraps a filesystem path.
func FileSource(path string) Source {
	return Source{name: path, path: path}
}

// BytesSource wraps a raw encoded image buffer. The name is only used in
// error reporting.
func BytesSource(name string, data []byte) Source {
	return Source{name: name, data: data}
}

// ImageSource wraps an already-decoded image.
func ImageSource(name string, img image.Image) Source {
	return Source{name: name, img: img}
}

// Name returns the reporting name of the source.
func (s Source) Name() string {
	return s.name
}

// Tensor is a CHW float32 tensor with a leading batch dimension, ready for
// a single forward pass. It is owned by the call that produced it.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// Default preprocessing constants. The mean/std pairs must match the ones
// used during training; a mismatch silently degrades accuracy.
const DefaultInputSize = 224

var (
	// DefaultMean is the per-channel RGB mean on the [0,1] scale.
	DefaultMean = [3]float32{0.485, 0.456, 0.406}
	// DefaultStd is the per-channel RGB standard deviation on the [0,1] scale.
	DefaultStd = [3]float32{0.229, 0.224, 0.225}
)

// Config defines the fixed preprocessing contract for a model.
type Config struct {
	// InputSize is the square edge length the model expects.
	InputSize int `json:"input_size" yaml:"input_size"`
	// Mean is the per-channel mean subtracted after scaling to [0,1].
	Mean [3]float32 `json:"mean" yaml:"mean"`
	// Std is the per-channel standard deviation divided after mean subtraction.
	Std [3]float32 `json:"std" yaml:"std"`
}

// DefaultConfig returns the preprocessing contract of the shipped
// transfer-learned classifier.
func DefaultConfig() Config {
	return Config{
		InputSize: DefaultInputSize,
		Mean:      DefaultMean,
		Std:       DefaultStd,
	}
}

// Preprocessor converts an arbitrary input into a fixed-size,
// channel-normalized tensor. It holds only fixed constants and is safe for
// concurrent use.
type Preprocessor struct {
	config Config
}

// NewPreprocessor creates a preprocessor, filling zero-valued config fields
// with the defaults.
func NewPreprocessor(config Config) *Preprocessor {
	if config.InputSize <= 0 {
		config.InputSize = DefaultInputSize
	}
	var zero [3]float32
	if config.Mean == zero {
		config.Mean = DefaultMean
	}
	if config.Std == zero {
		config.Std = DefaultStd
	}
	return &Preprocessor{config: config}
}

// Config returns the fixed preprocessing contract.
func (p *Preprocessor) Config() Config {
	return p.config
}

// Preprocess decodes the source, resizes it to the model's square input
// dimension with bilinear interpolation, scales pixels to [0,1] and applies
// per-channel standardization. The result is a [1,3,N,N] CHW tensor.
//
// Undecodable input fails with a *DecodeError.
func (p *Preprocessor) Preprocess(src Source) (*Tensor, error) {
	img, err := p.decode(src)
	if err != nil {
		return nil, err
	}

	n := p.config.InputSize
	resized := resize.Resize(uint(n), uint(n), img, resize.Bilinear)

	tensor := &Tensor{
		Data:  make([]float32, 3*n*n),
		Shape: []int64{1, 3, int64(n), int64(n)},
	}

	plane := n * n
	bounds := resized.Bounds()
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			r, g, b, _ := resized.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()

			// 16-bit color down to the [0,1] scale, then standardize.
			idx := y*n + x
			tensor.Data[idx] = (float32(r)/65535.0 - p.config.Mean[0]) / p.config.Std[0]
			tensor.Data[plane+idx] = (float32(g)/65535.0 - p.config.Mean[1]) / p.config.Std[1]
			tensor.Data[2*plane+idx] = (float32(b)/65535.0 - p.config.Mean[2]) / p.config.Std[2]
		}
	}

	return tensor, nil
}

func (p *Preprocessor) decode(src Source) (image.Image, error) {
	if src.img != nil {
		return src.img, nil
	}

	data := src.data
	if src.path != "" {
		var err error
		data, err = os.ReadFile(src.path)
		if err != nil {
			return nil, &DecodeError{Name: src.name, Err: err}
		}
	}

	if len(data) == 0 {
		return nil, &DecodeError{Name: src.name, Err: errors.New("empty image data")}
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Name: src.name, Err: err}
	}
	return img, nil
}
