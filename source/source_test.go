package source

import (
	"testing"
)

type result struct {
	pos, line, col int
}

func TestSourceLineCol(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 1, 1},
			{100, 1, 1},
		},
		"\n": {
			{0, 1, 1},
			{1, 2, 1},
			{100, 2, 1},
		},
		"0\n2\n4\n6789abcde\ng\ni\n": {
			{4, 3, 1},
			{5, 3, 2},
			{6, 4, 1},
			{7, 4, 2},
			{14, 4, 9},
			{19, 6, 2},
			{20, 7, 1},
			{9, 4, 4},
			{5, 3, 2},
		},
		"xéy\nz": {
			{3, 1, 3},
			{5, 2, 1},
		},
	}

	for text, results := range samples {
		source := NewString("", text)
		for _, res := range results {
			l, c := source.LineCol(res.pos)
			if l != res.line || c != res.col {
				t.Errorf("sample %q: expected %v, got line: %d, col: %d", text, res, l, c)
			}
		}
	}
}

func TestSourcePos(t *testing.T) {
	samples := map[string][]result{
		"": {
			{0, 0, 1},
			{0, 1, 0},
			{0, 1, 1},
			{0, 2, 1},
		},
		"hello\nworld\n": {
			{0, 1, 1},
			{1, 1, 2},
			{6, 2, 1},
			{7, 2, 2},
			{12, 2, 10},
			{12, 3, 1},
			{12, 4, 1},
		},
	}

	for text, results := range samples {
		source := NewString("", text)
		for _, res := range results {
			p := source.Pos(res.line, res.col)
			if p != res.pos {
				t.Errorf("sample %q: expected %v, got pos: %d", text, res, p)
			}
		}
	}
}

func TestLines(t *testing.T) {
	s := NewString("lines", "begin\n  x := 1\n\nend")
	expected := []struct {
		text   string
		offset int
	}{
		{"begin", 0},
		{"  x := 1", 6},
		{"", 15},
		{"end", 16},
	}

	if s.LineCount() != len(expected) {
		t.Fatalf("expecting %d lines, got %d", len(expected), s.LineCount())
	}

	for i, e := range expected {
		text, offset := s.Line(i + 1)
		if string(text) != e.text || offset != e.offset {
			t.Errorf("line %d: expecting %q at %d, got %q at %d", i+1, e.text, e.offset, text, offset)
		}
	}

	if text, offset := s.Line(5); text != nil || offset != -1 {
		t.Errorf("line 5: expecting nil at -1, got %q at %d", text, offset)
	}
}

func TestNewPos(t *testing.T) {
	s := NewString("pos", "a\nbc")
	p := NewPos(s, 3)
	if p.SourceName() != "pos" || p.Line() != 2 || p.Col() != 2 || p.Pos() != 3 {
		t.Fatalf("unexpected position %v", p)
	}
}
