package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ava12/minisculus/internal/test"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.ExpectNoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, name string) string {
	t.Helper()
	content, e := os.ReadFile(name)
	test.ExpectNoError(t, e)
	return string(content)
}

func runArgs(t *testing.T, stdin string, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	out, errOut := &strings.Builder{}, &strings.Builder{}
	code = run(context.Background(), args, strings.NewReader(stdin), out, errOut)
	return code, out.String(), errOut.String()
}

func TestArtefacts(t *testing.T) {
	src := writeSource(t, "prog.msc", "begin x := 3 ; write x end")
	code, _, stderr := runArgs(t, "", "-tokens", "-tree", "-dot", src)
	test.ExpectInt(t, 0, code)
	test.ExpectString(t, "", stderr)

	base := strings.TrimSuffix(src, ".msc")
	test.ExpectString(t, "    cPUSH 3\n    LOAD x\n    rPUSH x\n    PRINT\n", readFile(t, base+".sm"))
	test.ExpectString(t, "[Begin], [Id(x)], [Assign], [Num(3)], [Semicolon], [Write], [Id(x)], [End]\n", readFile(t, base+".tokens"))
	test.Assert(t, strings.HasPrefix(readFile(t, base+".tree"), "Begin\n  Begin @1\n  StatementList\n"), "unexpected tree dump")
	test.Assert(t, strings.HasPrefix(readFile(t, base+".dot"), "digraph G {\n"), "unexpected DOT graph")
}

func TestRunAndStdout(t *testing.T) {
	src := writeSource(t, "count.msc", "begin input n; while n do begin write n; n := n - 1 end end")
	code, stdout, _ := runArgs(t, "2", "-o", "-", "-run", src)
	test.ExpectInt(t, 0, code)
	test.Assert(t, strings.HasSuffix(stdout, "PRINT\n    rPUSH n\n    cPUSH 1\n    OP1 -\n    LOAD n\n    JUMP L0\nL1:\n2\n1\n"), "unexpected output %q", stdout)
}

func TestConfigAndOverride(t *testing.T) {
	cfg := writeSource(t, "cfg.cue", "codegen: {labelPrefix: \"lbl\", indent: \"\"}\noutput: tokens: true\n")
	src := writeSource(t, "if.msc", "if x then write 1 else write 2")
	out := filepath.Join(filepath.Dir(src), "out.txt")

	code, _, _ := runArgs(t, "", "-c", cfg, "-tokens=false", "-o", out, src)
	test.ExpectInt(t, 0, code)
	test.Assert(t, strings.Contains(readFile(t, out), "cJUMP lbl0\n"), "config not applied")
	_, e := os.Stat(filepath.Join(filepath.Dir(src), "out.tokens"))
	test.Assert(t, os.IsNotExist(e), "token dump written despite -tokens=false")
}

func TestFailures(t *testing.T) {
	code, _, _ := runArgs(t, "")
	test.ExpectInt(t, 2, code)

	code, _, stderr := runArgs(t, "", "-o", "-", writeSource(t, "bad.msc", "write 1 write 2"))
	test.ExpectInt(t, 3, code)
	test.Assert(t, strings.Contains(stderr, "expecting end of input"), "unexpected message %q", stderr)

	code, _, stderr = runArgs(t, "", "-o", "-", "-run", writeSource(t, "div.msc", "write 1 / 0"))
	test.ExpectInt(t, 4, code)
	test.Assert(t, strings.Contains(stderr, "division by zero"), "unexpected message %q", stderr)

	code, _, _ = runArgs(t, "", "-c", writeSource(t, "bad.cue", "vm: speed: 1"), writeSource(t, "ok.msc", "write 1"))
	test.ExpectInt(t, 3, code)
}

func TestVerbose(t *testing.T) {
	code, _, stderr := runArgs(t, "", "-v", "-o", "-", writeSource(t, "v.msc", "write 1"))
	test.ExpectInt(t, 0, code)
	test.Assert(t, strings.Contains(stderr, "msg=token "), "missing token trace in %q", stderr)
}

func TestSourceIsNotOverwritten(t *testing.T) {
	samples := []struct {
		name string
		args []string
	}{
		{"prog.sm", nil},
		{"prog.tree", []string{"-tree"}},
		{"prog.dot", []string{"-o", "-", "-dot"}},
		{"prog.msc", []string{"-o", "@"}},
	}

	for _, s := range samples {
		src := writeSource(t, s.name, "write 1")
		args := make([]string, 0, len(s.args)+1)
		for _, arg := range s.args {
			if arg == "@" {
				arg = src
			}
			args = append(args, arg)
		}
		code, _, stderr := runArgs(t, "", append(args, src)...)
		test.ExpectInt(t, 2, code)
		test.Assert(t, strings.Contains(stderr, "output file is the source file"), "unexpected message %q", stderr)
		test.ExpectString(t, "write 1", readFile(t, src))
	}

	src := writeSource(t, "prog.sm", "write 1")
	code, stdout, _ := runArgs(t, "", "-o", "-", src)
	test.ExpectInt(t, 0, code)
	test.ExpectString(t, "    cPUSH 1\n    PRINT\n", stdout)
}
