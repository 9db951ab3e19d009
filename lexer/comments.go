package lexer

import (
	"regexp"
	"strings"

	"github.com/ava12/minisculus"
	"github.com/ava12/minisculus/source"
)

const (
	openComment  = "/*"
	closeComment = "*/"
)

var singleLineComment = regexp.MustCompile(`%[^\n]*`)

// StripComments returns a source with the same name and no comments.
//
// Single line comments (from % to the end of line) are removed first, so a % inside a block comment
// hides the rest of its line including any comment delimiters.
// Block comments (/* ... */) may be nested, each /* must have its own */.
// A block comment is replaced with the newlines it contained followed by a single space,
// so line numbers of the remaining text do not change.
// */ outside of any block comment is left as is.
//
// Returns ErrUnterminatedComment positioned at the outermost /* if the text ends inside a block comment.
func StripComments(src *source.Source) (*source.Source, error) {
	text := singleLineComment.ReplaceAllString(string(src.Content()), "")
	var (
		res                    strings.Builder
		depth, start, newlines int
	)
	res.Grow(len(text))

	for i := 0; i < len(text); {
		if strings.HasPrefix(text[i:], openComment) {
			if depth == 0 {
				start = i
				newlines = 0
			}
			depth++
			i += len(openComment)
			continue
		}

		if depth > 0 && strings.HasPrefix(text[i:], closeComment) {
			depth--
			i += len(closeComment)
			if depth == 0 {
				res.WriteString(strings.Repeat("\n", newlines))
				res.WriteByte(' ')
			}
			continue
		}

		if depth == 0 {
			res.WriteByte(text[i])
		} else if text[i] == '\n' {
			newlines++
		}
		i++
	}

	if depth > 0 {
		pos := source.NewPos(source.NewString(src.Name(), text), start)
		return nil, minisculus.FormatErrorPos(pos, ErrUnterminatedComment, "unterminated comment")
	}

	return source.NewString(src.Name(), res.String()), nil
}
