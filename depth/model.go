// Package depth turns camera frames into false-colored depth maps with a
// PyDNet++ style network.
package depth

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/krau/depthmap/modelfile"
)

const (
	DefaultModelFile = "optimized_pydnet++.tflite"
	DefaultThreads   = 4
)

type Accelerator int

const (
	CPU Accelerator = iota
	GPU
)

func (a Accelerator) String() string {
	switch a {
	case CPU:
		return "cpu"
	case GPU:
		return "gpu"
	default:
		return fmt.Sprintf("accelerator(%d)", int(a))
	}
}

// Delegate is the execution backend chosen once when a model is opened.
type Delegate struct {
	Kind Accelerator
	// Threads is used by CPU delegates.
	Threads int
	// Options are passed to GPU delegates as-is.
	Options map[string]string
}

func (d Delegate) String() string {
	if d.Kind == CPU {
		return fmt.Sprintf("cpu(%d threads)", d.Threads)
	}
	return d.Kind.String()
}

// Engine runs a loaded network. Implementations must not retain input or
// output after Run returns.
type Engine interface {
	// Run fills output, shaped (1,H,W,1), from input, shaped (1,H,W,3).
	Run(input, output Tensor) error
	Close() error
}

// Backend opens engines for one runtime.
type Backend interface {
	Name() string
	// GPUSupported reports whether a hardware delegate works on this host.
	GPUSupported() bool
	// GPUOptions are the recommended delegate options for this host.
	GPUOptions() map[string]string
	// Open builds an engine over model. model stays valid until the engine
	// is closed.
	Open(model []byte, d Delegate) (Engine, error)
}

type Options struct {
	ModelDir   string
	ModelFile  string
	DisableGPU bool
	Threads    int
	ColorMap   ColorMapOptions
	// Observe receives the wall time of every engine call.
	Observe func(time.Duration)
}

func (o Options) ModelPath() string {
	name := o.ModelFile
	if name == "" {
		name = DefaultModelFile
	}
	return filepath.Join(o.ModelDir, name)
}

// SelectDelegate probes b and picks the GPU when available, otherwise a
// fixed number of CPU threads.
func SelectDelegate(b Backend, opts Options) Delegate {
	if !opts.DisableGPU && b.GPUSupported() {
		return Delegate{Kind: GPU, Options: b.GPUOptions()}
	}
	threads := opts.Threads
	if threads <= 0 {
		threads = DefaultThreads
	}
	return Delegate{Kind: CPU, Threads: threads}
}

// Model owns one engine and the mapped model it was built from. Calls are
// serialized.
type Model struct {
	mu       sync.Mutex
	engine   Engine
	file     *modelfile.File
	delegate Delegate
	opts     Options
	closed   bool
}

// Result is an uncolored depth map in row-major order.
type Result struct {
	Height int       `json:"height"`
	Width  int       `json:"width"`
	Depth  []float32 `json:"depth"`
}

func NewModel(b Backend, opts Options) (*Model, error) {
	path := opts.ModelPath()
	file, err := modelfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}

	d := SelectDelegate(b, opts)
	engine, err := b.Open(file.Bytes(), d)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("open %s engine with %s: %w", b.Name(), d, err)
	}

	slog.Info("Depth model loaded",
		slog.String("path", path),
		slog.String("backend", b.Name()),
		slog.String("delegate", d.String()))

	return &Model{
		engine:   engine,
		file:     file,
		delegate: d,
		opts:     opts,
	}, nil
}

func (m *Model) Delegate() Delegate {
	return m.delegate
}

// Close releases the engine and the model mapping. Closing twice returns
// ErrClosed.
func (m *Model) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return ErrClosed
	}
	m.closed = true

	err := m.engine.Close()
	m.engine = nil
	return errors.Join(err, m.file.Close())
}

// Infer runs the network on a (1,height,width,3) tensor and returns the
// flattened height×width depth scores.
func (m *Model) Infer(ctx context.Context, input Tensor, height, width int) ([]float32, error) {
	if err := input.check(height, width, 3); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return nil, ErrClosed
	}

	output := NewTensor(height, width, 1)
	start := time.Now()
	if err := m.engine.Run(input, output); err != nil {
		return nil, fmt.Errorf("run inference: %w", err)
	}
	elapsed := time.Since(start)
	slog.Debug("inference time", slog.Duration("elapsed", elapsed))
	if m.opts.Observe != nil {
		m.opts.Observe(elapsed)
	}

	return Flatten(output, height, width)
}

// Estimate crops img to the network input size and returns its raw depth map.
func (m *Model) Estimate(ctx context.Context, img image.Image) (*Result, error) {
	cropped, err := Crop(img, InputWidth, InputHeight)
	if err != nil {
		return nil, err
	}
	input := PixelsToTensor(cropped)
	values, err := m.Infer(ctx, input, InputHeight, InputWidth)
	if err != nil {
		return nil, err
	}
	return &Result{Height: InputHeight, Width: InputWidth, Depth: values}, nil
}

// InferImage produces the colored depth map of img rotated 90 degrees
// clockwise, InputHeight wide and InputWidth tall.
func (m *Model) InferImage(ctx context.Context, img image.Image) (*image.NRGBA, error) {
	res, err := m.Estimate(ctx, img)
	if err != nil {
		return nil, err
	}
	colors := ApplyColorMap(res.Depth, m.opts.ColorMap)
	out, err := ColorsToImage(colors, res.Width, res.Height)
	if err != nil {
		return nil, err
	}
	return Rotate(out), nil
}
