package vm

import (
	"bufio"
	"errors"
	"strconv"
	"strings"

	"github.com/ava12/minisculus"
	"github.com/ava12/minisculus/codegen"
)

// Op is an instruction code.
type Op int

const (
	OpPushConst Op = iota
	OpPushVar
	OpLoad
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpRead
	OpPrint
	OpJump
	OpCondJump
)

// Instruction is a decoded listing line. Value is set for OpPushConst, Name for instructions taking a variable,
// Target for jumps.
type Instruction struct {
	Op     Op
	Value  int64
	Name   string
	Target int
	Line   int
}

// Program is a decoded listing with resolved jump targets.
type Program struct {
	Code   []Instruction
	Labels map[string]int
}

var operators = map[string]Op{"+": OpAdd, "-": OpSub, "*": OpMul, "/": OpDiv}

// Decode parses a listing produced by codegen.
// Blank lines are skipped, any leading whitespace is allowed.
func Decode(listing string) (*Program, error) {
	p := &Program{Labels: make(map[string]int)}
	var jumps []int

	sc := bufio.NewScanner(strings.NewReader(listing))
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		if label, f := strings.CutSuffix(text, ":"); f && !strings.ContainsAny(label, " \t") {
			if _, dup := p.Labels[label]; dup {
				return nil, listingError(line, ErrDuplicateLabel, "duplicate label %q", label)
			}
			p.Labels[label] = len(p.Code)
			continue
		}

		fields := strings.Fields(text)
		ins := Instruction{Line: line}
		args := 1
		switch fields[0] {
		case codegen.PushConst:
			ins.Op = OpPushConst
			if len(fields) == 2 {
				v, e := strconv.ParseInt(fields[1], 10, 64)
				if errors.Is(e, strconv.ErrRange) {
					return nil, listingError(line, ErrConstantRange, "constant %s does not fit in 64 bits", fields[1])
				}
				if e != nil {
					return nil, listingError(line, ErrBadInstruction, "bad constant %q", fields[1])
				}
				ins.Value = v
			}
		case codegen.PushVar:
			ins.Op = OpPushVar
		case codegen.Load:
			ins.Op = OpLoad
		case codegen.Read:
			ins.Op = OpRead
		case codegen.Op:
			if len(fields) == 2 {
				op, f := operators[fields[1]]
				if !f {
					return nil, listingError(line, ErrBadInstruction, "unknown operator %q", fields[1])
				}
				ins.Op = op
			}
		case codegen.Print:
			ins.Op = OpPrint
			args = 0
		case codegen.Jump:
			ins.Op = OpJump
		case codegen.CondJump:
			ins.Op = OpCondJump
		default:
			return nil, listingError(line, ErrBadInstruction, "unknown instruction %q", fields[0])
		}

		if len(fields) != args+1 {
			return nil, listingError(line, ErrBadInstruction, "%s expects %d argument(s), got %d", fields[0], args, len(fields)-1)
		}
		if args > 0 {
			ins.Name = fields[1]
		}
		if ins.Op == OpJump || ins.Op == OpCondJump {
			jumps = append(jumps, len(p.Code))
		}
		p.Code = append(p.Code, ins)
	}
	if e := sc.Err(); e != nil {
		return nil, e
	}

	for _, i := range jumps {
		ins := &p.Code[i]
		target, f := p.Labels[ins.Name]
		if !f {
			return nil, listingError(ins.Line, ErrUnknownLabel, "unknown label %q", ins.Name)
		}
		ins.Target = target
	}

	return p, nil
}

func listingError(line, code int, msg string, params ...any) *minisculus.Error {
	e := minisculus.FormatError(code, msg, params...)
	return minisculus.NewError(code, e.Message, "", line, 0)
}

var opNames = [...]string{
	OpPushConst: codegen.PushConst,
	OpPushVar:   codegen.PushVar,
	OpLoad:      codegen.Load,
	OpAdd:       "+",
	OpSub:       "-",
	OpMul:       "*",
	OpDiv:       "/",
	OpRead:      codegen.Read,
	OpPrint:     codegen.Print,
	OpJump:      codegen.Jump,
	OpCondJump:  codegen.CondJump,
}

func (op Op) String() string {
	if op >= 0 && int(op) < len(opNames) {
		return opNames[op]
	}
	return "Op(" + strconv.Itoa(int(op)) + ")"
}
