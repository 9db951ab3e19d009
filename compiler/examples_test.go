package compiler

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/ava12/minisculus/examples"
	"github.com/ava12/minisculus/internal/test"
	"github.com/ava12/minisculus/vm"
)

func TestExamples(t *testing.T) {
	names, e := fs.Glob(examples.Files, "*.msc")
	test.ExpectNoError(t, e)
	test.Assert(t, len(names) > 0, "no examples found")

	for _, name := range names {
		base := strings.TrimSuffix(name, ".msc")
		t.Run(base, func(t *testing.T) {
			src, e := fs.ReadFile(examples.Files, name)
			test.ExpectNoError(t, e)
			input, e := fs.ReadFile(examples.Files, base+".in")
			test.ExpectNoError(t, e)
			expected, e := fs.ReadFile(examples.Files, base+".out")
			test.ExpectNoError(t, e)

			res, e := Compile(context.Background(), name, src)
			test.ExpectNoError(t, e)
			out := &strings.Builder{}
			test.ExpectNoError(t, vm.Execute(context.Background(), res.Code, strings.NewReader(string(input)), out))
			test.ExpectString(t, string(expected), out.String())
		})
	}
}
