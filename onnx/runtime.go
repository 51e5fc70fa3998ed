package onnx

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

var (
	initOnce sync.Once
	initErr  error
)

// LibPath resolves the ONNX Runtime shared library. An explicit path wins;
// otherwise the usual install location for the OS is used.
func LibPath(custom string) string {
	if custom != "" {
		return custom
	}
	switch runtime.GOOS {
	case "linux":
		for _, path := range []string{
			"/usr/local/lib/libonnxruntime.so",
			"/usr/lib/libonnxruntime.so",
			"/usr/lib/x86_64-linux-gnu/libonnxruntime.so",
		} {
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
		return "libonnxruntime.so"
	case "darwin":
		return "/usr/local/lib/libonnxruntime.dylib"
	case "windows":
		return "onnxruntime.dll"
	default:
		return ""
	}
}

// Init loads the runtime library once per process.
func Init(libPath string) error {
	initOnce.Do(func() {
		path := LibPath(libPath)
		if path == "" {
			initErr = fmt.Errorf("ONNX Runtime library path could not be determined for %s", runtime.GOOS)
			return
		}
		slog.Info("Using ONNX Runtime library", slog.String("path", path))
		ort.SetSharedLibraryPath(path)
		if err := ort.InitializeEnvironment(); err != nil {
			initErr = fmt.Errorf("initialize ONNX Runtime environment: %w", err)
		}
	})
	return initErr
}

func Destroy() error {
	if !ort.IsInitialized() {
		return nil
	}
	return ort.DestroyEnvironment()
}
