package vm_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ava12/minisculus/codegen"
	"github.com/ava12/minisculus/grammar"
	"github.com/ava12/minisculus/internal/test"
	"github.com/ava12/minisculus/source"
	"github.com/ava12/minisculus/vm"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	tokens, e := grammar.NewLexer().Tokenize(source.NewString("sample", src))
	test.ExpectNoError(t, e)
	root, e := grammar.NewParser().Parse(tokens)
	test.ExpectNoError(t, e)
	return codegen.Generate(root)
}

func run(t *testing.T, src, input string, opts ...vm.Option) (string, error) {
	t.Helper()
	out := &strings.Builder{}
	e := vm.Execute(context.Background(), compile(t, src), strings.NewReader(input), out, opts...)
	return out.String(), e
}

func TestPrograms(t *testing.T) {
	samples := []struct {
		src, input, output string
	}{
		{"write 1 + 2 * 3", "", "7\n"},
		{"write 10 - 4 - 3", "", "3\n"},
		{"write 7 / 2", "", "3\n"},
		{"write (1 + 2) * 3 / -4", "", "-2\n"},
		{"begin x := 5; y := x * x; write y - x end", "", "20\n"},
		{"begin input a; input b; write a * b end", "6 7", "42\n"},
		{"begin input x; if x then write 1 else write 2 end", "0", "2\n"},
		{"begin input x; if x then write 1 else write 2 end", "-3", "1\n"},
		{"begin input n; while n do begin write n; n := n - 1 end end", "3", "3\n2\n1\n"},
		{
			"begin input n; f := 1; while n do begin f := f * n; n := n - 1 end; write f end",
			"5\n", "120\n",
		},
		{"/* nothing */ begin input n; while n do n := n - 1 end % done", "1000", ""},
	}

	for _, s := range samples {
		output, e := run(t, s.src, s.input)
		test.ExpectNoError(t, e)
		test.ExpectString(t, s.output, output)
	}
}

func TestRuntimeErrors(t *testing.T) {
	samples := []struct {
		src, input string
		code       int
	}{
		{"write 1 / 0", "", vm.ErrDivisionByZero},
		{"begin z := 0; write 5 / z end", "", vm.ErrDivisionByZero},
		{"write x", "", vm.ErrUnsetVariable},
		{"input x", "", vm.ErrBadInput},
		{"input x", "abc", vm.ErrBadInput},
		{"while 1 do x := 1", "", vm.ErrStepLimit},
		{"write 99999999999999999999", "", vm.ErrConstantRange},
	}

	for _, s := range samples {
		_, e := run(t, s.src, s.input, vm.MaxSteps(100))
		test.ExpectErrorCode(t, s.code, e)
	}
}

func TestStepLimit(t *testing.T) {
	p, e := vm.Decode(compile(t, "begin input n; while n do n := n - 1 end"))
	test.ExpectNoError(t, e)

	m := vm.New(p, strings.NewReader("10"), &strings.Builder{}, vm.MaxSteps(0))
	test.ExpectNoError(t, m.Run(context.Background()))
	// READ, then 10 iterations of 7 instructions, then the final check
	test.ExpectInt(t, 1+10*7+2, m.Steps())

	m = vm.New(p, strings.NewReader("10"), &strings.Builder{}, vm.MaxSteps(20))
	test.ExpectErrorCode(t, vm.ErrStepLimit, m.Run(context.Background()))
	test.ExpectInt(t, 20, m.Steps())
}

func TestCancel(t *testing.T) {
	p, e := vm.Decode(compile(t, "while 1 do x := 1"))
	test.ExpectNoError(t, e)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := vm.New(p, strings.NewReader(""), &strings.Builder{}, vm.MaxSteps(0))
	e = m.Run(ctx)
	test.Assert(t, errors.Is(e, context.Canceled), "expecting cancellation, got %v", e)
}

func TestVariables(t *testing.T) {
	p, e := vm.Decode(compile(t, "begin input a; b := a + 1 end"))
	test.ExpectNoError(t, e)

	m := vm.New(p, strings.NewReader("41"), &strings.Builder{})
	test.ExpectNoError(t, m.Run(context.Background()))
	v, f := m.Var("b")
	test.ExpectBool(t, true, f)
	test.Expect(t, v == 42, 42, v)
	_, f = m.Var("c")
	test.ExpectBool(t, false, f)
}

func TestDecode(t *testing.T) {
	p, e := vm.Decode("\n  L0:\n    cPUSH -7\n\tcJUMP L0\nL1:\n  JUMP L1\n")
	test.ExpectNoError(t, e)
	test.ExpectInt(t, 3, len(p.Code))
	test.ExpectInt(t, 0, p.Labels["L0"])
	test.ExpectInt(t, 2, p.Labels["L1"])

	test.Expect(t, p.Code[0].Op == vm.OpPushConst, vm.OpPushConst, p.Code[0].Op)
	test.Expect(t, p.Code[0].Value == -7, -7, p.Code[0].Value)
	test.ExpectInt(t, 3, p.Code[0].Line)
	test.ExpectInt(t, 0, p.Code[1].Target)
	test.ExpectInt(t, 2, p.Code[2].Target)
	test.ExpectString(t, "cJUMP", p.Code[1].Op.String())
}

func TestDecodeErrors(t *testing.T) {
	samples := []struct {
		listing string
		code    int
		line    int
	}{
		{"JUMP nowhere", vm.ErrUnknownLabel, 1},
		{"L0:\nPRINT\nL0:", vm.ErrDuplicateLabel, 3},
		{"FOO x", vm.ErrBadInstruction, 1},
		{"PRINT 1", vm.ErrBadInstruction, 1},
		{"cPUSH", vm.ErrBadInstruction, 1},
		{"\ncPUSH x", vm.ErrBadInstruction, 2},
		{"OP1 %", vm.ErrBadInstruction, 1},
		{"LOAD a b", vm.ErrBadInstruction, 1},
		{"cPUSH 9223372036854775807\ncPUSH 99999999999999999999", vm.ErrConstantRange, 2},
		{"cPUSH -9223372036854775809", vm.ErrConstantRange, 1},
		{"JUMP a\nJUMP b\nJUMP c", vm.ErrUnknownLabel, 1},
		{"b:\nJUMP b\nJUMP c\nJUMP a", vm.ErrUnknownLabel, 3},
	}

	for _, s := range samples {
		_, e := vm.Decode(s.listing)
		ee := test.ExpectErrorCode(t, s.code, e)
		test.ExpectInt(t, s.line, ee.Line)
	}
}

func TestStackUnderflow(t *testing.T) {
	e := vm.Execute(context.Background(), "cPUSH 1\nPRINT\nPRINT\n", strings.NewReader(""), &strings.Builder{})
	ee := test.ExpectErrorCode(t, vm.ErrStackUnderflow, e)
	test.ExpectInt(t, 3, ee.Line)
}
