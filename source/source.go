// Package source defines source file used by lexer.
package source

import (
	"bytes"
	"unicode/utf8"
)

// Source holds source text and the starting offset of every physical line.
// Source is immutable except for the line lookup cache, so it must not be shared between goroutines.
type Source struct {
	name          string
	content       []byte
	lineStarts    []int
	prevLineIndex int
}

// New creates a Source. name is used in error messages and may be empty.
func New(name string, content []byte) *Source {
	s := &Source{name: name, content: content, prevLineIndex: -1}
	lineCnt := bytes.Count(content, []byte("\n")) + 1
	s.lineStarts = make([]int, lineCnt)
	s.lineStarts[0] = 0
	j := 1
	for i := 0; i < len(content) && j < lineCnt; i++ {
		if content[i] == '\n' {
			s.lineStarts[j] = i + 1
			j++
		}
	}

	return s
}

// NewString is the same as New, but takes content as a string.
func NewString(name, content string) *Source {
	return New(name, []byte(content))
}

// Name returns source name.
func (s *Source) Name() string {
	return s.name
}

// Content returns source text.
func (s *Source) Content() []byte {
	return s.content
}

// Len returns source text length in bytes.
func (s *Source) Len() int {
	return len(s.content)
}

// LineCount returns the number of physical lines, always > 0.
// Text following the last newline (possibly empty) counts as a line.
func (s *Source) LineCount() int {
	return len(s.lineStarts)
}

// Line returns the content of 1-based line number n without the trailing newline
// and the byte offset of its first character.
// Returns nil, -1 if n is out of range.
func (s *Source) Line(n int) (content []byte, offset int) {
	if n <= 0 || n > len(s.lineStarts) {
		return nil, -1
	}

	offset = s.lineStarts[n-1]
	end := len(s.content)
	if n < len(s.lineStarts) {
		end = s.lineStarts[n] - 1
	}
	return s.content[offset:end], offset
}

// LineCol converts byte offset to 1-based line and column numbers.
// Columns are counted in runes. Offsets out of range are clamped.
func (s *Source) LineCol(pos int) (line, col int) {
	var lineIndex int
	if pos < 0 {
		pos = 0
		lineIndex = 0
	} else if pos >= len(s.content) {
		pos = len(s.content)
		lineIndex = len(s.lineStarts) - 1
	} else {
		lineIndex = s.findLineIndex(pos)
	}

	lineStart := s.lineStarts[lineIndex]
	return lineIndex + 1, utf8.RuneCount(s.content[lineStart:pos]) + 1
}

// Pos converts 1-based line and column numbers to byte offset.
// Treats columns as bytes, not runes.
func (s *Source) Pos(line, col int) int {
	if line <= 0 || col <= 0 {
		return 0
	}

	l := len(s.content)
	if line > len(s.lineStarts) {
		return l
	}

	res := s.lineStarts[line-1] + col - 1
	if res > l {
		return l
	}
	return res
}

func (s *Source) findLineIndex(pos int) int {
	if s.prevLineIndex >= 0 && s.lineStarts[s.prevLineIndex] <= pos {
		lineIndex := s.prevLineIndex
		last := len(s.lineStarts) - 1
		for lineIndex <= last && s.lineStarts[lineIndex] <= pos {
			lineIndex++
		}
		lineIndex--
		s.prevLineIndex = lineIndex
		return lineIndex
	}

	leftIndex := 0
	rightIndex := len(s.lineStarts) - 1
	index := 0
	if s.prevLineIndex >= 0 {
		rightIndex = s.prevLineIndex
	}
	for leftIndex < rightIndex {
		index = (leftIndex + rightIndex + 1) >> 1
		lineStart := s.lineStarts[index]
		if lineStart == pos {
			break
		}

		if lineStart < pos {
			leftIndex = index
		} else {
			rightIndex = index - 1
			index = rightIndex
		}
	}
	s.prevLineIndex = index
	return index
}

// Pos is a position in source file, implements minisculus.SourcePos.
type Pos struct {
	src            *Source
	pos, line, col int
}

// NewPos creates a Pos for given byte offset.
func NewPos(s *Source, pos int) Pos {
	line, col := s.LineCol(pos)
	return Pos{s, pos, line, col}
}

// Source returns source file, may be nil.
func (p Pos) Source() *Source {
	return p.src
}

// SourceName returns source name or empty string.
func (p Pos) SourceName() string {
	if p.src == nil {
		return ""
	}
	return p.src.Name()
}

// Pos returns byte offset.
func (p Pos) Pos() int {
	return p.pos
}

// Line returns 1-based line number.
func (p Pos) Line() int {
	return p.line
}

// Col returns 1-based column number.
func (p Pos) Col() int {
	return p.col
}
