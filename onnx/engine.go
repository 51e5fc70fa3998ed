package onnx

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/krau/depthmap/depth"
	ort "github.com/yalue/onnxruntime_go"
)

// Backend runs .onnx depth networks. The CUDA execution provider plays the
// role of the GPU delegate.
type Backend struct {
	DeviceID int
}

var _ depth.Backend = (*Backend)(nil)

// NewBackend initializes the runtime from libPath, see LibPath.
func NewBackend(libPath string, deviceID int) (*Backend, error) {
	if err := Init(libPath); err != nil {
		return nil, err
	}
	return &Backend{DeviceID: deviceID}, nil
}

func (b *Backend) Name() string { return "onnx" }

func (b *Backend) GPUOptions() map[string]string {
	return map[string]string{
		"device_id": strconv.Itoa(b.DeviceID),
	}
}

// GPUSupported checks that the loaded runtime ships a usable CUDA provider.
func (b *Backend) GPUSupported() bool {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return false
	}
	defer opts.Destroy()
	if err := appendCUDA(opts, b.GPUOptions()); err != nil {
		slog.Debug("CUDA execution provider unavailable", slog.String("error", err.Error()))
		return false
	}
	return true
}

func appendCUDA(opts *ort.SessionOptions, settings map[string]string) error {
	cuda, err := ort.NewCUDAProviderOptions()
	if err != nil {
		return err
	}
	defer cuda.Destroy()
	if len(settings) > 0 {
		if err := cuda.Update(settings); err != nil {
			return err
		}
	}
	return opts.AppendExecutionProviderCUDA(cuda)
}

func (b *Backend) Open(model []byte, d depth.Delegate) (depth.Engine, error) {
	opts, err := ort.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("failed to create session options: %w", err)
	}
	defer opts.Destroy()

	switch d.Kind {
	case depth.GPU:
		if err := appendCUDA(opts, d.Options); err != nil {
			return nil, fmt.Errorf("failed to enable CUDA: %w", err)
		}
	default:
		if err := opts.SetIntraOpNumThreads(d.Threads); err != nil {
			return nil, fmt.Errorf("failed to set thread count: %w", err)
		}
	}

	inputs, outputs, err := ort.GetInputOutputInfoWithONNXData(model)
	if err != nil {
		return nil, fmt.Errorf("failed to get model input/output info: %w", err)
	}
	if len(inputs) == 0 || len(outputs) == 0 {
		return nil, errors.New("model has no inputs or outputs")
	}

	session, err := ort.NewDynamicAdvancedSessionWithONNXData(
		model,
		[]string{inputs[0].Name},
		[]string{outputs[0].Name},
		opts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ONNX Runtime session: %w", err)
	}
	return &engine{session: session}, nil
}

type engine struct {
	session *ort.DynamicAdvancedSession
}

func shape(t depth.Tensor) ort.Shape {
	return ort.NewShape(int64(t.Shape[0]), int64(t.Shape[1]), int64(t.Shape[2]), int64(t.Shape[3]))
}

// Run binds the caller's buffers directly as ONNX tensors, so the output is
// written in place.
func (e *engine) Run(input, output depth.Tensor) error {
	in, err := ort.NewTensor(shape(input), input.Data)
	if err != nil {
		return fmt.Errorf("failed to create input tensor: %w", err)
	}
	defer in.Destroy()

	out, err := ort.NewTensor(shape(output), output.Data)
	if err != nil {
		return fmt.Errorf("failed to create output tensor: %w", err)
	}
	defer out.Destroy()

	return e.session.Run([]ort.Value{in}, []ort.Value{out})
}

func (e *engine) Close() error {
	return e.session.Destroy()
}
