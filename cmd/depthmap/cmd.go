package main

import (
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/gen2brain/avif"
	"github.com/krau/depthmap/backend"
	"github.com/krau/depthmap/depth"
	"github.com/krau/depthmap/onnx"
	"github.com/spf13/cobra"
	_ "golang.org/x/image/webp"
)

type flags struct {
	model     string
	backend   string
	libonnx   string
	device    int
	threads   int
	cpu       bool
	normalize bool
	verbose   bool
}

func (f *flags) options() depth.Options {
	return depth.Options{
		ModelDir:   filepath.Dir(f.model),
		ModelFile:  filepath.Base(f.model),
		DisableGPU: f.cpu,
		Threads:    f.threads,
		ColorMap:   depth.ColorMapOptions{Normalize: f.normalize},
	}
}

func (f *flags) openBackend() (depth.Backend, error) {
	return backend.Open(f.backend, f.model, f.libonnx, f.device)
}

func newRootCmd() *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:          "depthmap",
		Short:        "Monocular depth estimation",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if f.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&f.model, "model", "m", depth.DefaultModelFile, "model file (.tflite or .onnx)")
	pf.StringVar(&f.backend, "backend", backend.Auto, "inference backend: auto, onnx or tflite")
	pf.StringVar(&f.libonnx, "libonnx", "", "path to the ONNX Runtime shared library")
	pf.IntVar(&f.device, "gpu-device", 0, "CUDA device id")
	pf.IntVar(&f.threads, "threads", depth.DefaultThreads, "CPU threads when no GPU is used")
	pf.BoolVar(&f.cpu, "cpu", false, "never use a GPU delegate")
	pf.BoolVarP(&f.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newRenderCmd(f), newProbeCmd(f))
	return root
}

func newRenderCmd(f *flags) *cobra.Command {
	var out string
	var raw bool
	cmd := &cobra.Command{
		Use:   "render IMAGE",
		Short: "Render the colored depth map of IMAGE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := readImage(args[0])
			if err != nil {
				return err
			}

			b, err := f.openBackend()
			if err != nil {
				return err
			}
			defer onnx.Destroy()

			m, err := depth.NewModel(b, f.options())
			if err != nil {
				return err
			}
			defer m.Close()

			if raw {
				out = outputPath(out, cmd.Flags().Changed("output"), raw)
				res, err := m.Estimate(cmd.Context(), img)
				if err != nil {
					return err
				}
				return writeJSON(out, res)
			}

			depthImg, err := m.InferImage(cmd.Context(), img)
			if err != nil {
				return err
			}
			return writePNG(out, depthImg)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "depth.png", "output file (depth.json with --raw)")
	cmd.Flags().BoolVar(&raw, "raw", false, "write uncolored depth values as JSON")
	cmd.Flags().BoolVar(&f.normalize, "normalize", false, "stretch the palette over the observed depth range")
	return cmd
}

// outputPath swaps the PNG default for a JSON one when raw values are written.
func outputPath(out string, explicit, raw bool) string {
	if raw && !explicit {
		return "depth.json"
	}
	return out
}

func newProbeCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "probe",
		Short: "Print the delegate that would be used",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := f.openBackend()
			if err != nil {
				return err
			}
			defer onnx.Destroy()
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", b.Name(), depth.SelectDelegate(b, f.options()))
			return nil
		},
	}
}

func readImage(path string) (image.Image, error) {
	fd, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	img, _, err := image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func writePNG(path string, img image.Image) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(fd, img); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}

func writeJSON(path string, v any) error {
	fd, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := json.NewEncoder(fd).Encode(v); err != nil {
		fd.Close()
		return err
	}
	return fd.Close()
}
