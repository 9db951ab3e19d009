// Package config loads compiler settings from CUE files.
//
// Every file is unified with the embedded schema (schema.cue), so unknown fields and
// conflicting values are rejected and missing values take schema defaults.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/ava12/minisculus"
)

// Error codes used by config:
const (
	ErrInvalidConfig = minisculus.ConfigErrors + iota
	ErrMissingValue
)

//go:embed schema.cue
var Schema string

type Log struct {
	Level   string `json:"level"`
	Format  string `json:"format"`
	File    string `json:"file"`
	Journal bool   `json:"journal"`
}

type Codegen struct {
	LabelPrefix string `json:"labelPrefix"`
	Indent      string `json:"indent"`
}

// Output selects additional artefacts written next to the generated code.
type Output struct {
	Tokens bool `json:"tokens"`
	Tree   bool `json:"tree"`
	Dot    bool `json:"dot"`
}

type VM struct {
	MaxSteps int `json:"maxSteps"`
}

type Config struct {
	Log     Log     `json:"log"`
	Codegen Codegen `json:"codegen"`
	Output  Output  `json:"output"`
	VM      VM      `json:"vm"`
}

// Loader accumulates configuration sources. All sources share a single CUE context
// and are unified in the order they were added.
type Loader struct {
	ctx   *cue.Context
	value cue.Value
}

// NewLoader creates a Loader holding the schema only.
func NewLoader() *Loader {
	ctx := cuecontext.New()
	schema := ctx.CompileString(Schema, cue.Filename("schema.cue"))
	if e := schema.Err(); e != nil {
		panic(e)
	}
	return &Loader{ctx, schema.LookupPath(cue.ParsePath("#Config"))}
}

// AddFile reads and unifies a CUE file.
func (l *Loader) AddFile(path string) error {
	content, e := os.ReadFile(path)
	if e != nil {
		return fmt.Errorf("reading config: %w", e)
	}
	return l.AddSource(path, content)
}

// AddSource unifies CUE source; name is used in error messages.
func (l *Loader) AddSource(name string, content []byte) error {
	value := l.ctx.CompileBytes(content, cue.Filename(name))
	if e := value.Err(); e != nil {
		return invalidConfig(e)
	}

	value = l.value.Unify(value)
	if e := value.Validate(); e != nil {
		return invalidConfig(e)
	}
	l.value = value
	return nil
}

// Lookup decodes the value at a dotted path (e.g. "log.level") into target.
func (l *Loader) Lookup(path string, target any) error {
	value := l.value.LookupPath(cue.ParsePath(path))
	if !value.Exists() {
		return minisculus.FormatError(ErrMissingValue, "no config value at %q", path)
	}
	if e := value.Decode(target); e != nil {
		return invalidConfig(e)
	}
	return nil
}

// Config decodes the accumulated value.
func (l *Loader) Config() (*Config, error) {
	c := &Config{}
	if e := l.value.Decode(c); e != nil {
		return nil, invalidConfig(e)
	}
	return c, nil
}

// Load unifies files in order and returns the resulting configuration.
// With no files it returns the defaults.
func Load(paths ...string) (*Config, error) {
	l := NewLoader()
	for _, path := range paths {
		if e := l.AddFile(path); e != nil {
			return nil, e
		}
	}
	return l.Config()
}

// Default returns the schema defaults.
func Default() *Config {
	c, e := NewLoader().Config()
	if e != nil {
		panic(e)
	}
	return c
}

func invalidConfig(e error) *minisculus.Error {
	return minisculus.FormatError(ErrInvalidConfig, "invalid config: %s", e)
}
