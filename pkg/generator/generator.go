package generator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrymomot/qsgen/pkg/logger"
)

// Generator scans a package and writes query string methods for its types.
type Generator struct {
	cfg    Config
	log    *slog.Logger
	stdout io.Writer
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for progress and diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithStdout makes Run write the generated source to w instead of a file.
func WithStdout(w io.Writer) Option {
	return func(g *Generator) {
		g.stdout = w
	}
}

// New validates cfg and returns a Generator.
func New(cfg Config, opts ...Option) (*Generator, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}

	g := &Generator{
		cfg: cfg,
		log: logger.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Config returns the effective configuration, defaults applied.
func (g *Generator) Config() Config {
	return g.cfg
}

// Result describes a completed Run.
type Result struct {
	// Path is the generated file, empty when writing to stdout.
	Path string
	// Types lists the generated types in source order.
	Types []string
	// Written is false when the existing file already had the same content
	// or the output went to stdout.
	Written bool
}

// Run inspects dir, renders the generated file and writes it next to the
// package sources. An unchanged file is not rewritten.
func (g *Generator) Run(ctx context.Context, dir string) (Result, error) {
	start := time.Now()

	pkg, err := g.Inspect(ctx, dir)
	if err != nil {
		return Result{}, err
	}
	if len(pkg.Types) == 0 {
		return Result{}, fmt.Errorf("%w in package %s", ErrNoTypes, pkg.Name)
	}

	src, err := g.Render(pkg)
	if err != nil {
		return Result{}, err
	}

	res := Result{Types: pkg.TypeNames()}
	if g.stdout != nil {
		if _, err := g.stdout.Write(src); err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrWrite, err)
		}
		return res, nil
	}

	res.Path = filepath.Join(dir, g.cfg.Output)
	existing, err := os.ReadFile(res.Path)
	switch {
	case err == nil && bytes.Equal(existing, src):
		g.log.DebugContext(ctx, "generated file is up to date",
			logger.Component("generator"),
			logger.File(res.Path),
		)
		return res, nil
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return Result{}, fmt.Errorf("%w: %v", ErrWrite, err)
	}

	if err := os.WriteFile(res.Path, src, 0o644); err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrWrite, err)
	}
	res.Written = true

	g.log.InfoContext(ctx, "generated query string methods",
		logger.Component("generator"),
		logger.Package(pkg.Name),
		logger.File(res.Path),
		logger.Types(res.Types),
		logger.Count(len(res.Types)),
		logger.Duration(time.Since(start)),
	)
	return res, nil
}
