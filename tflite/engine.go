//go:build tflite

// Package tflite runs .tflite depth networks through the TensorFlow Lite C API.
package tflite

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/krau/depthmap/depth"
	"github.com/mattn/go-tflite"
	"github.com/mattn/go-tflite/delegates"
)

// Backend runs on CPU threads, or on the OpenGL GPU delegate when built
// with the tflite_gpu tag.
type Backend struct{}

var _ depth.Backend = Backend{}

func (Backend) Name() string { return "tflite" }

// GPUSupported creates a throwaway GPU delegate; creation fails on hosts
// without a usable GPU.
func (Backend) GPUSupported() bool {
	d, err := newGPUDelegate()
	if err != nil {
		slog.Debug("TFLite GPU delegate unavailable", slog.String("error", err.Error()))
		return false
	}
	d.Delete()
	return true
}

func (Backend) GPUOptions() map[string]string { return nil }

func (Backend) Open(model []byte, d depth.Delegate) (depth.Engine, error) {
	var gpu delegates.Delegater
	if d.Kind == depth.GPU {
		var err error
		if gpu, err = newGPUDelegate(); err != nil {
			return nil, err
		}
	}
	release := func() {
		if gpu != nil {
			gpu.Delete()
		}
	}

	m := tflite.NewModel(model)
	if m == nil {
		release()
		return nil, errors.New("cannot parse model")
	}

	opts := tflite.NewInterpreterOptions()
	defer opts.Delete()
	if gpu != nil {
		opts.AddDelegate(gpu)
	} else {
		opts.SetNumThread(d.Threads)
	}
	opts.SetErrorReporter(func(msg string, _ interface{}) {
		slog.Error("TFLite error", slog.String("message", msg))
	}, nil)

	interp := tflite.NewInterpreter(m, opts)
	if interp == nil {
		m.Delete()
		release()
		return nil, errors.New("cannot create interpreter")
	}
	if status := interp.AllocateTensors(); status != tflite.OK {
		interp.Delete()
		m.Delete()
		release()
		return nil, fmt.Errorf("allocate tensors: status %d", status)
	}
	return &engine{model: m, interp: interp, gpu: gpu}, nil
}

type engine struct {
	model  *tflite.Model
	interp *tflite.Interpreter
	gpu    delegates.Delegater
}

func dims(t *tflite.Tensor) []int {
	d := make([]int, t.NumDims())
	for i := range d {
		d[i] = t.Dim(i)
	}
	return d
}

// resize adapts the input binding when the caller's frame size differs from
// the one the model was last allocated for.
func (e *engine) resize(s [4]int) error {
	if sameDims(dims(e.interp.GetInputTensor(0)), s) {
		return nil
	}
	if status := e.interp.ResizeInputTensor(0, []int32{int32(s[0]), int32(s[1]), int32(s[2]), int32(s[3])}); status != tflite.OK {
		return fmt.Errorf("resize input to %v: status %d", s, status)
	}
	if status := e.interp.AllocateTensors(); status != tflite.OK {
		return fmt.Errorf("allocate tensors: status %d", status)
	}
	return nil
}

func (e *engine) Run(input, output depth.Tensor) error {
	if err := e.resize(input.Shape); err != nil {
		return err
	}

	in := e.interp.GetInputTensor(0)
	if err := checkFloat32("input", in.Type() == tflite.Float32); err != nil {
		return err
	}
	if err := checkCopied("input", copy(in.Float32s(), input.Data), len(input.Data)); err != nil {
		return err
	}

	if status := e.interp.Invoke(); status != tflite.OK {
		return fmt.Errorf("invoke: status %d", status)
	}

	out := e.interp.GetOutputTensor(0)
	if err := checkFloat32("output", out.Type() == tflite.Float32); err != nil {
		return err
	}
	if !sameDims(dims(out), output.Shape) {
		return fmt.Errorf("%w: output %v, want %v", depth.ErrShapeMismatch, dims(out), output.Shape)
	}
	return checkCopied("output", copy(output.Data, out.Float32s()), len(output.Data))
}

func (e *engine) Close() error {
	e.interp.Delete()
	if e.gpu != nil {
		e.gpu.Delete()
	}
	e.model.Delete()
	return nil
}
