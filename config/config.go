// Package config loads the run configuration of the haplo command from an HCL file.
//
// A configuration file holds top-level attributes only:
//
//	parallelism = num_cpu * 2
//	flip_policy = "majority-ones"
//	compression = "s2"
//	log_level   = "debug"
//	log_format  = "json"
//
// Expressions are evaluated with the variable num_cpu set to the number of logical CPUs.
// Every attribute is optional; a missing file yields Default().
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/arloliu/haplo/block"
	"github.com/arloliu/haplo/errs"
	"github.com/arloliu/haplo/format"
	"github.com/arloliu/haplo/snapshot"
)

// Config is the resolved run configuration.
type Config struct {
	Parallelism int
	FlipPolicy  block.FlipPolicy
	Compression format.CompressionType
	LogLevel    string
	LogFormat   string
}

// hclFile mirrors the attributes accepted in a configuration file.
type hclFile struct {
	Parallelism *int    `hcl:"parallelism,optional"`
	FlipPolicy  *string `hcl:"flip_policy,optional"`
	Compression *string `hcl:"compression,optional"`
	LogLevel    *string `hcl:"log_level,optional"`
	LogFormat   *string `hcl:"log_format,optional"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Parallelism: runtime.GOMAXPROCS(0),
		FlipPolicy:  block.FlipNever,
		Compression: format.CompressionZstd,
		LogLevel:    "info",
		LogFormat:   "text",
	}
}

// Load reads the configuration file at path. A path that does not exist yields Default().
func Load(path string) (Config, error) {
	src, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}

	return Parse(src, path)
}

// Parse decodes HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string) (Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("%w: failed to parse %s: %w", errs.ErrInvalidConfig, filename, diags)
	}

	var raw hclFile
	diags = gohcl.DecodeBody(file.Body, evalContext(), &raw)
	if diags.HasErrors() {
		return Config{}, fmt.Errorf("%w: failed to decode %s: %w", errs.ErrInvalidConfig, filename, diags)
	}

	return raw.resolve(Default())
}

func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"num_cpu": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}
}

func (f *hclFile) resolve(cfg Config) (Config, error) {
	if f.Parallelism != nil {
		if *f.Parallelism < 1 {
			return Config{}, fmt.Errorf("%w: parallelism must be positive, got %d", errs.ErrInvalidConfig, *f.Parallelism)
		}
		cfg.Parallelism = *f.Parallelism
	}

	if f.FlipPolicy != nil {
		policy, ok := block.ParseFlipPolicy(*f.FlipPolicy)
		if !ok {
			return Config{}, fmt.Errorf("%w: unknown flip_policy %q", errs.ErrInvalidConfig, *f.FlipPolicy)
		}
		cfg.FlipPolicy = policy
	}

	if f.Compression != nil {
		ct, ok := format.ParseCompression(strings.ToLower(*f.Compression))
		if !ok {
			return Config{}, fmt.Errorf("%w: unknown compression %q", errs.ErrInvalidConfig, *f.Compression)
		}
		cfg.Compression = ct
	}

	if f.LogLevel != nil {
		switch lvl := strings.ToLower(*f.LogLevel); lvl {
		case "debug", "info", "warn", "error":
			cfg.LogLevel = lvl
		default:
			return Config{}, fmt.Errorf("%w: unknown log_level %q", errs.ErrInvalidConfig, *f.LogLevel)
		}
	}

	if f.LogFormat != nil {
		switch lf := strings.ToLower(*f.LogFormat); lf {
		case "text", "json":
			cfg.LogFormat = lf
		default:
			return Config{}, fmt.Errorf("%w: unknown log_format %q", errs.ErrInvalidConfig, *f.LogFormat)
		}
	}

	return cfg, nil
}

// BlockOptions converts the configuration into block build options.
func (c Config) BlockOptions(logger *slog.Logger) []block.Option {
	return []block.Option{
		block.WithParallelism(c.Parallelism),
		block.WithFlipPolicy(c.FlipPolicy),
		block.WithLogger(logger),
	}
}

// SnapshotOptions converts the configuration into snapshot encoder options.
func (c Config) SnapshotOptions() []snapshot.Option {
	return []snapshot.Option{snapshot.WithCompression(c.Compression)}
}
