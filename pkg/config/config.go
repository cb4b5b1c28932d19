// Package config loads dispatch, benchmark and logging settings from the
// environment, optionally seeded from a .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	matmul "github.com/tektwister/ai_engineering/matmul_engine"
)

// Environment variable names.
const (
	EnvNaiveMax        = "MATMUL_NAIVE_MAX"
	EnvLargeMin        = "MATMUL_LARGE_MIN"
	EnvSmallBlock      = "MATMUL_SMALL_BLOCK"
	EnvLargeBlock      = "MATMUL_LARGE_BLOCK"
	EnvBenchSizes      = "MATMUL_BENCH_SIZES"
	EnvBenchRounds     = "MATMUL_BENCH_ROUNDS"
	EnvBenchIterations = "MATMUL_BENCH_ITERATIONS"
	EnvBenchWarmup     = "MATMUL_BENCH_WARMUP"
	EnvResultsDir      = "MATMUL_RESULTS_DIR"
	EnvLogLevel        = "MATMUL_LOG_LEVEL"
)

// Config holds the settings for the engine and its benchmark tooling.
type Config struct {
	NaiveMax   int
	LargeMin   int
	SmallBlock int
	LargeBlock int

	BenchSizes      []int
	BenchRounds     int
	BenchIterations int
	BenchWarmup     int
	ResultsDir      string

	LogLevel string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		NaiveMax:        matmul.DefaultNaiveMax,
		LargeMin:        matmul.DefaultLargeMin,
		SmallBlock:      matmul.DefaultSmallBlock,
		LargeBlock:      matmul.DefaultLargeBlock,
		BenchSizes:      []int{128, 256, 512, 1024},
		BenchRounds:     5,
		BenchIterations: 3,
		BenchWarmup:     2,
		ResultsDir:      "results",
		LogLevel:        "info",
	}
}

// Load reads the configuration from environment variables.
// It attempts to find a .env file in the current or parent directories first;
// variables already set in the process environment win over the file.
func Load() (*Config, error) {
	_ = loadEnvFile()
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function, starting from Default.
// Unset or empty variables keep their defaults; malformed values are errors.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()

	ints := []struct {
		key string
		dst *int
	}{
		{EnvNaiveMax, &cfg.NaiveMax},
		{EnvLargeMin, &cfg.LargeMin},
		{EnvSmallBlock, &cfg.SmallBlock},
		{EnvLargeBlock, &cfg.LargeBlock},
		{EnvBenchRounds, &cfg.BenchRounds},
		{EnvBenchIterations, &cfg.BenchIterations},
		{EnvBenchWarmup, &cfg.BenchWarmup},
	}
	for _, v := range ints {
		raw, ok := lookup(v.key)
		if !ok || strings.TrimSpace(raw) == "" {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", v.key, err)
		}
		*v.dst = n
	}

	if raw, ok := lookup(EnvBenchSizes); ok && strings.TrimSpace(raw) != "" {
		sizes, err := ParseSizes(raw)
		if err != nil {
			return nil, fmt.Errorf("config: %s: %w", EnvBenchSizes, err)
		}
		cfg.BenchSizes = sizes
	}
	if raw, ok := lookup(EnvResultsDir); ok && raw != "" {
		cfg.ResultsDir = raw
	}
	if raw, ok := lookup(EnvLogLevel); ok && raw != "" {
		cfg.LogLevel = strings.ToLower(raw)
	}

	return cfg, nil
}

// ParseSizes parses a comma-separated list of positive matrix sizes.
func ParseSizes(raw string) ([]int, error) {
	var sizes []int
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("size %d must be > 0", n)
		}
		sizes = append(sizes, n)
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("no sizes in %q", raw)
	}
	return sizes, nil
}

// Policy returns the dispatch policy described by the configuration.
// It is validated when handed to matmul.NewEngine.
func (c *Config) Policy() matmul.Policy {
	return matmul.Policy{
		NaiveMax:   c.NaiveMax,
		LargeMin:   c.LargeMin,
		SmallBlock: c.SmallBlock,
		LargeBlock: c.LargeBlock,
	}
}

// loadEnvFile attempts to look up until it finds a .env file
func loadEnvFile() error {
	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	// Look up to 5 levels
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			return godotenv.Load(envPath)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return nil
}
