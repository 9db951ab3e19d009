// Package vm executes stack machine listings emitted by codegen.
package vm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/ava12/minisculus"
)

// Error codes used by vm:
const (
	ErrBadInstruction = minisculus.RuntimeErrors + iota
	ErrDuplicateLabel
	ErrUnknownLabel
	ErrStackUnderflow
	ErrDivisionByZero
	ErrUnsetVariable
	ErrBadInput
	ErrStepLimit
	ErrConstantRange
)

// DefaultMaxSteps limits the number of executed instructions.
const DefaultMaxSteps = 1_000_000

const checkInterval = 1024

// Machine runs a single program. Variables keep their values between Run calls.
type Machine struct {
	program  *Program
	input    *bufio.Reader
	output   io.Writer
	logger   *slog.Logger
	stack    []int64
	vars     map[string]int64
	maxSteps int
	steps    int
}

// Option configures a Machine.
type Option func(*Machine)

// MaxSteps sets the instruction limit, 0 means no limit.
func MaxSteps(n int) Option {
	return func(m *Machine) {
		m.maxSteps = n
	}
}

// Logger sets a logger receiving a debug record for every instruction.
func Logger(logger *slog.Logger) Option {
	return func(m *Machine) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a Machine reading READ values from in and writing PRINT values to out, one per line.
func New(p *Program, in io.Reader, out io.Writer, opts ...Option) *Machine {
	m := &Machine{
		program:  p,
		input:    bufio.NewReader(in),
		output:   out,
		logger:   slog.New(slog.DiscardHandler),
		vars:     make(map[string]int64),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Var returns variable value.
func (m *Machine) Var(name string) (value int64, defined bool) {
	value, defined = m.vars[name]
	return
}

// Steps returns the number of executed instructions.
func (m *Machine) Steps() int {
	return m.steps
}

// Run executes the program from the first instruction until it falls off the end.
// Checks ctx every few instructions.
func (m *Machine) Run(ctx context.Context) error {
	code := m.program.Code
	m.stack = m.stack[:0]
	for pc := 0; pc < len(code); {
		if m.steps%checkInterval == 0 {
			if e := ctx.Err(); e != nil {
				return e
			}
		}
		if m.maxSteps > 0 && m.steps >= m.maxSteps {
			return minisculus.FormatError(ErrStepLimit, "step limit %d exceeded", m.maxSteps)
		}
		m.steps++

		ins := &code[pc]
		m.logger.Debug("exec", "pc", pc, "line", ins.Line, "op", ins.Op, "stack", len(m.stack))
		pc++
		switch ins.Op {
		case OpPushConst:
			m.push(ins.Value)

		case OpPushVar:
			v, f := m.vars[ins.Name]
			if !f {
				return m.error(ins, ErrUnsetVariable, "variable %s is not set", ins.Name)
			}
			m.push(v)

		case OpLoad:
			v, e := m.pop(ins)
			if e != nil {
				return e
			}
			m.vars[ins.Name] = v

		case OpAdd, OpSub, OpMul, OpDiv:
			b, e := m.pop(ins)
			if e != nil {
				return e
			}
			a, e := m.pop(ins)
			if e != nil {
				return e
			}
			r, e := m.arith(ins, a, b)
			if e != nil {
				return e
			}
			m.push(r)

		case OpRead:
			var v int64
			if _, e := fmt.Fscan(m.input, &v); e != nil {
				return m.error(ins, ErrBadInput, "cannot read %s: %s", ins.Name, e)
			}
			m.vars[ins.Name] = v

		case OpPrint:
			v, e := m.pop(ins)
			if e != nil {
				return e
			}
			if _, e := fmt.Fprintln(m.output, v); e != nil {
				return e
			}

		case OpJump:
			pc = ins.Target

		case OpCondJump:
			v, e := m.pop(ins)
			if e != nil {
				return e
			}
			if v == 0 {
				pc = ins.Target
			}
		}
	}

	return nil
}

func (m *Machine) push(v int64) {
	m.stack = append(m.stack, v)
}

func (m *Machine) pop(ins *Instruction) (int64, error) {
	l := len(m.stack)
	if l == 0 {
		return 0, m.error(ins, ErrStackUnderflow, "stack underflow")
	}
	v := m.stack[l-1]
	m.stack = m.stack[:l-1]
	return v, nil
}

func (m *Machine) arith(ins *Instruction, a, b int64) (int64, error) {
	switch ins.Op {
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	default:
		if b == 0 {
			return 0, m.error(ins, ErrDivisionByZero, "division by zero")
		}
		return a / b, nil
	}
}

func (m *Machine) error(ins *Instruction, code int, msg string, params ...any) *minisculus.Error {
	return listingError(ins.Line, code, msg, params...)
}

// Execute decodes listing and runs it with a new Machine.
func Execute(ctx context.Context, listing string, in io.Reader, out io.Writer, opts ...Option) error {
	p, e := Decode(listing)
	if e != nil {
		return e
	}
	return New(p, in, out, opts...).Run(ctx)
}
