/*
minisculus is a console utility translating a program to stack machine code.
Usage is

	minisculus [-c <config>] [-o <name>] [-tokens] [-tree] [-dot] [-run] [-v] [-log-level <level>] <file>

-c <config> loads settings from a CUE file, may be repeated, files are unified;

-o <name> defines output file name, default is the name of input file with .sm suffix,
"-" writes code to standard output;

-tokens, -tree, -dot additionally write token dump, tree dump, and DOT graph
to files with .tokens, .tree, and .dot suffixes next to the output file;

-run executes generated code reading input values from standard input;

-v logs every token and rule application;

-log-level <level> sets log level: debug, info, warn, or error.

Command line flags override configuration values.
An output file that would replace the source file is refused with exit code 2.
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/ava12/minisculus"
	"github.com/ava12/minisculus/compiler"
	"github.com/ava12/minisculus/config"
	"github.com/ava12/minisculus/dump"
	"github.com/ava12/minisculus/logs"
	"github.com/ava12/minisculus/vm"
)

type configFiles []string

func (cf *configFiles) String() string {
	return strings.Join(*cf, ",")
}

func (cf *configFiles) Set(name string) error {
	*cf = append(*cf, name)
	return nil
}

type options struct {
	configs           configFiles
	inFileName        string
	outFileName       string
	tokens, tree, dot bool
	execute, verbose  bool
	logLevel          string
	stdin             io.Reader
	stdout, stderr    io.Writer
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	o := options{stdin: stdin, stdout: stdout, stderr: stderr}
	fs := flag.NewFlagSet("minisculus", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage is  minisculus [-c <config>] [-o <name>] [-tokens] [-tree] [-dot] [-run] [-v] [-log-level <level>] <file>")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output(), "  <file>")
		fmt.Fprintln(fs.Output(), "\tsource file name")
	}

	fs.Var(&o.configs, "c", "CUE configuration file, may be repeated")
	fs.StringVar(&o.outFileName, "o", "", "output file name, default is the name of input file with .sm suffix, - for standard output")
	fs.BoolVar(&o.tokens, "tokens", false, "write token dump")
	fs.BoolVar(&o.tree, "tree", false, "write tree dump")
	fs.BoolVar(&o.dot, "dot", false, "write DOT graph")
	fs.BoolVar(&o.execute, "run", false, "execute generated code")
	fs.BoolVar(&o.verbose, "v", false, "log every token and rule application")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn, or error")
	if e := fs.Parse(args); e != nil {
		return 2
	}
	o.inFileName = fs.Arg(0)
	if o.inFileName == "" || fs.NArg() > 1 {
		fs.Usage()
		return 2
	}

	cfg, e := config.Load(o.configs...)
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return 3
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "tokens":
			cfg.Output.Tokens = o.tokens
		case "tree":
			cfg.Output.Tree = o.tree
		case "dot":
			cfg.Output.Dot = o.dot
		case "log-level":
			cfg.Log.Level = o.logLevel
		}
	})
	if o.verbose && !isSet(fs, "log-level") {
		cfg.Log.Level = "debug"
	}

	logger, e := logs.New(cfg.Log, stderr)
	if e != nil {
		fmt.Fprintln(stderr, e.Error())
		return 3
	}
	defer logger.Close()

	if e = translate(ctx, &o, cfg, logger); e != nil {
		fmt.Fprintln(stderr, e.Error())
		var me *minisculus.Error
		if errors.As(e, &me) && me.Class() == minisculus.RuntimeErrors {
			return 4
		}
		if errors.Is(e, errOverwrite) {
			return 2
		}
		return 3
	}
	return 0
}

func isSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// errOverwrite is returned when an output file would replace the source file.
var errOverwrite = errors.New("output file is the source file")

type artefact struct {
	name    string
	content func(res *compiler.Result) string
}

// artefacts lists files to write, code goes last; an empty name means standard output.
func artefacts(o *options, cfg *config.Config) []artefact {
	base := o.outFileName
	if base == "" || base == "-" {
		base = o.inFileName
	}
	base = base[:len(base)-len(filepath.Ext(base))]

	var res []artefact
	if cfg.Output.Tokens {
		res = append(res, artefact{base + ".tokens", func(r *compiler.Result) string { return dump.Tokens(r.Tokens) }})
	}
	if cfg.Output.Tree {
		res = append(res, artefact{base + ".tree", func(r *compiler.Result) string { return dump.Tree(r.Tree, "  ") }})
	}
	if cfg.Output.Dot {
		res = append(res, artefact{base + ".dot", func(r *compiler.Result) string { return dump.Dot(r.Tree) }})
	}

	code := artefact{o.outFileName, func(r *compiler.Result) string { return r.Code }}
	switch o.outFileName {
	case "-":
		code.name = ""
	case "":
		code.name = base + ".sm"
	}
	return append(res, code)
}

func samePath(a, b string) bool {
	if fa, e := os.Stat(a); e == nil {
		if fb, e := os.Stat(b); e == nil {
			return os.SameFile(fa, fb)
		}
	}
	absA, ea := filepath.Abs(a)
	absB, eb := filepath.Abs(b)
	return ea == nil && eb == nil && absA == absB
}

func translate(ctx context.Context, o *options, cfg *config.Config, logger *logs.Logger) error {
	outputs := artefacts(o, cfg)
	for _, a := range outputs {
		if a.name != "" && samePath(a.name, o.inFileName) {
			return fmt.Errorf("%w: %s", errOverwrite, a.name)
		}
	}

	src, e := os.ReadFile(o.inFileName)
	if e != nil {
		return e
	}

	res, e := compiler.Compile(ctx, o.inFileName, src,
		compiler.Logger(logger.Logger),
		compiler.Trace(o.verbose),
		compiler.WithConfig(cfg.Codegen),
	)
	if e != nil {
		return e
	}

	for _, a := range outputs {
		if a.name == "" {
			_, e = io.WriteString(o.stdout, a.content(res))
		} else {
			e = writeFile(a.name, a.content(res))
		}
		if e != nil {
			return e
		}
		logger.Info("output written", "file", a.name)
	}

	if o.execute {
		return vm.Execute(ctx, res.Code, o.stdin, o.stdout,
			vm.MaxSteps(cfg.VM.MaxSteps),
			vm.Logger(logger.With("source", o.inFileName)),
		)
	}
	return nil
}

func writeFile(name, content string) error {
	return os.WriteFile(name, []byte(content), 0o666)
}
