// Package compiler runs the whole translation pipeline for a single program.
package compiler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ava12/minisculus/codegen"
	"github.com/ava12/minisculus/config"
	"github.com/ava12/minisculus/grammar"
	"github.com/ava12/minisculus/lexer"
	"github.com/ava12/minisculus/source"
	"github.com/ava12/minisculus/tree"
)

// Result holds the artefacts of every phase.
type Result struct {
	Stripped *source.Source
	Tokens   []*lexer.Token
	Tree     tree.Node
	Code     string
	Labels   int
}

type options struct {
	logger  *slog.Logger
	trace   bool
	codegen []codegen.Option
}

type Option func(*options)

// Logger sets the logger receiving phase records.
func Logger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Trace passes the logger to the lexer and the parser, so every token and rule
// application is logged at debug level.
func Trace(trace bool) Option {
	return func(o *options) {
		o.trace = trace
	}
}

// Codegen adds generator options.
func Codegen(opts ...codegen.Option) Option {
	return func(o *options) {
		o.codegen = append(o.codegen, opts...)
	}
}

// WithConfig applies generator settings from configuration.
func WithConfig(cfg config.Codegen) Option {
	return Codegen(codegen.LabelPrefix(cfg.LabelPrefix), codegen.Indent(cfg.Indent))
}

// Compile translates src. name is used in error messages.
// Every call uses its own lexer, parser, and generator, so Compile may be called concurrently.
// Returns the first error, the Result then contains artefacts of the completed phases.
func Compile(ctx context.Context, name string, src []byte, opts ...Option) (*Result, error) {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger.With("source", name)
	started := time.Now()
	res := &Result{}

	stripped, e := lexer.StripComments(source.New(name, src))
	if e != nil {
		return res, e
	}
	res.Stripped = stripped
	log.Debug("comments stripped", "lines", stripped.LineCount())
	if e = ctx.Err(); e != nil {
		return res, e
	}

	lx := grammar.NewLexer()
	if o.trace {
		lx.SetLogger(log)
	}
	res.Tokens, e = lx.Scan(stripped)
	if e != nil {
		return res, e
	}
	log.Debug("tokens scanned", "tokens", len(res.Tokens))
	if e = ctx.Err(); e != nil {
		return res, e
	}

	p := grammar.NewParser()
	if o.trace {
		p.SetLogger(log)
	}
	res.Tree, e = p.Parse(res.Tokens)
	if e != nil {
		return res, e
	}
	log.Debug("tree built")
	if e = ctx.Err(); e != nil {
		return res, e
	}

	g := codegen.New(o.codegen...)
	res.Code = g.Generate(res.Tree)
	res.Labels = g.Labels()
	log.Debug("code generated", "bytes", len(res.Code), "labels", res.Labels)

	log.Info("compiled", "tokens", len(res.Tokens), "labels", res.Labels, "elapsed", time.Since(started))
	return res, nil
}
