package lexer

import (
	"strings"
	"testing"

	"github.com/ava12/minisculus/internal/test"
	"github.com/ava12/minisculus/source"
)

func strip(t *testing.T, text string) string {
	res, e := StripComments(source.NewString("", text))
	test.ExpectNoError(t, e)
	return string(res.Content())
}

func TestStripComments(t *testing.T) {
	samples := []struct {
		src, expected string
	}{
		{"x := 1 % set x\nwrite x", "x := 1 \nwrite x"},
		{"% only comment", ""},
		{"a /* b */ c", "a   c"},
		{"a /* b /* c */ d */ e", "a   e"},
		{"a /* b\n/* c\n*/ d\n */ e", "a \n\n\n  e"},
		{"a */ b", "a */ b"},
		{"x * / y", "x * / y"},
		{"a/**/b", "a b"},
	}

	for i, s := range samples {
		got := strip(t, s.src)
		if got != s.expected {
			t.Errorf("sample #%d: expecting %q, got %q", i, s.expected, got)
		}
	}
}

func TestUnterminatedComment(t *testing.T) {
	samples := []string{
		"/* open",
		"/* /* */",
		"/* % */ b",
		"x\n/*/",
	}

	for _, s := range samples {
		_, e := StripComments(source.NewString("", s))
		test.ExpectErrorCode(t, ErrUnterminatedComment, e)
	}
}

func TestStripPreservesLineCount(t *testing.T) {
	samples := []string{
		"",
		"\n\n",
		"a % b\nc % d\n",
		"/* one\ntwo\nthree */ x\ny",
		"/* a /*\n b */\n c */\n% /* \n",
		"begin % /*\n x := 1 /* \n\n */ ; write x\nend",
	}

	for i, s := range samples {
		got := strip(t, s)
		if strings.Count(got, "\n") != strings.Count(s, "\n") {
			t.Errorf("sample #%d: expecting %d newlines, got %d in %q", i, strings.Count(s, "\n"), strings.Count(got, "\n"), got)
		}
	}
}

func TestStripKeepsName(t *testing.T) {
	res, e := StripComments(source.NewString("name.msc", "x"))
	test.ExpectNoError(t, e)
	test.ExpectString(t, "name.msc", res.Name())
}
