// Package wrenanalyzer is the public entry point to the Wren static
// analysis pipeline: scan, parse, resolve scope, then type-check,
// collecting diagnostics from every stage into one ordered list.
package wrenanalyzer

import (
	"github.com/wren-lang/wren-analyzer/core/ast"
	"github.com/wren-lang/wren-analyzer/core/diag"
	"github.com/wren-lang/wren-analyzer/core/source"
	"github.com/wren-lang/wren-analyzer/runtime/parser"
	"github.com/wren-lang/wren-analyzer/runtime/resolver"
	"github.com/wren-lang/wren-analyzer/runtime/typecheck"
)

// Result is the outcome of running the pipeline over one source file:
// the parsed module (always non-nil, even on syntax errors — the parser
// makes best-effort progress) and every diagnostic collected along the
// way, in parser → resolver → type-checker order.
type Result struct {
	Module      *ast.Module
	Diagnostics []diag.Diagnostic
}

// Config holds the options an Option can set.
type Config struct {
	Debug bool
}

// Option configures a Config, following the functional-options shape
// used throughout this pipeline's stages.
type Option func(*Config)

// WithDebug enables debug-level trace logging in the scanner and parser
// (also controllable via the WREN_ANALYZER_DEBUG environment variable).
func WithDebug(enabled bool) Option {
	return func(c *Config) { c.Debug = enabled }
}

func newConfig(opts []Option) *Config {
	c := &Config{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseOnly runs just the scanner and parser, returning the module it
// produced and only the parser's diagnostics.
func ParseOnly(sourceText, path string, opts ...Option) Result {
	cfg := newConfig(opts)
	buf := source.New(path, sourceText)
	mod, diags := parser.ParseModule(buf, parser.WithDebug(cfg.Debug))
	return Result{Module: mod, Diagnostics: diags.All()}
}

// Analyze runs the full pipeline: scan, parse, resolve, and — only when
// no error-severity diagnostic exists from the earlier stages — type
// check. Diagnostics are returned in parser → resolver → type-checker
// order, each stage's internal order preserved (spec §6, §7).
func Analyze(sourceText, path string, opts ...Option) Result {
	cfg := newConfig(opts)
	buf := source.New(path, sourceText)

	mod, parseDiags := parser.ParseModule(buf, parser.WithDebug(cfg.Debug))
	all := &diag.List{}
	for _, d := range parseDiags.All() {
		all.Add(d)
	}

	resolverDiags := resolver.Resolve(mod)
	for _, d := range resolverDiags.All() {
		all.Add(d)
	}

	if !all.HasErrors() {
		checkDiags := typecheck.Check(mod)
		for _, d := range checkDiags.All() {
			all.Add(d)
		}
	}

	return Result{Module: mod, Diagnostics: all.All()}
}
