package config

import (
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

type Config struct {
	Token   string `toml:"token" mapstructure:"token"`
	Host    string `toml:"host" mapstructure:"host"`
	Port    string `toml:"port" mapstructure:"port"`
	Libonnx string `toml:"libonnx" mapstructure:"libonnx"`

	ModelDir  string `toml:"model_dir" mapstructure:"model_dir"`
	ModelFile string `toml:"model_file" mapstructure:"model_file"`
	// Backend is one of auto, onnx or tflite. auto picks by model file extension.
	Backend     string `toml:"backend" mapstructure:"backend"`
	Threads     int    `toml:"threads" mapstructure:"threads"`
	DisableGPU  bool   `toml:"disable_gpu" mapstructure:"disable_gpu"`
	GPUDeviceID int    `toml:"gpu_device_id" mapstructure:"gpu_device_id"`
	Normalize   bool   `toml:"normalize" mapstructure:"normalize"`
	PoolSize    int    `toml:"pool_size" mapstructure:"pool_size"`

	LogLevel string `toml:"log_level" mapstructure:"log_level"`
}

var (
	cfg      = Default()
	loadOnce sync.Once
)

func Default() Config {
	return Config{
		Token:     "",
		Host:      "0.0.0.0",
		Port:      "8000",
		ModelDir:  "models",
		ModelFile: "optimized_pydnet++.tflite",
		Backend:   "auto",
		Threads:   4,
		PoolSize:  1,
		LogLevel:  "info",
	}
}

// Parse overlays a TOML document on the defaults.
func Parse(data []byte) (Config, error) {
	c := Default()
	if err := toml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	if c.PoolSize < 1 {
		c.PoolSize = 1
	}
	return c, nil
}

func C() Config {
	loadOnce.Do(func() {
		if _, err := os.Stat("config.toml"); err == nil {
			data, err := os.ReadFile("config.toml")
			if err != nil {
				panic(err)
			}
			c, err := Parse(data)
			if err != nil {
				panic(err)
			}
			cfg = c
		}
	})
	return cfg
}

func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
