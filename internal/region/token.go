package region

import (
	"fmt"
	"strings"

	"epigen/internal/errors"
)

// TokenKind discriminates tokens.
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenBegin
	TokenEnd
)

// String returns a human-readable token kind.
func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "text"
	case TokenBegin:
		return "begin"
	case TokenEnd:
		return "end"
	default:
		return fmt.Sprintf("TokenKind(%d)", int(k))
	}
}

// Token is a run of text lines or a single marker line.
type Token struct {
	Kind TokenKind
	// Raw is the exact source text, newline included.
	Raw string
	// Path is the marker argument.
	Path string
	// Line is the 1-based first line of the token.
	Line int
}

// Markers are the BEGIN/END macro names.
type Markers struct {
	Begin string
	End   string
}

// DefaultMarkers are the markers of epigen artifacts.
var DefaultMarkers = Markers{Begin: "EPI_GENREGION_BEGIN", End: "EPI_GENREGION_END"}

// Tokenize splits src into text and marker tokens. A line is a marker when,
// once surrounding blanks are trimmed, it starts with a marker name followed
// by "(" or nothing. Anything after that must be a well-formed "(path)".
func (m Markers) Tokenize(src string) ([]Token, error) {
	var (
		tokens []Token
		text   strings.Builder
		start  int
	)

	flush := func() {
		if text.Len() > 0 {
			tokens = append(tokens, Token{Kind: TokenText, Raw: text.String(), Line: start})
			text.Reset()
		}
	}

	line := 0

	for rest := src; rest != ""; {
		line++

		raw := rest
		if i := strings.IndexByte(rest, '\n'); i >= 0 {
			raw, rest = rest[:i+1], rest[i+1:]
		} else {
			rest = ""
		}

		kind, path, err := m.classify(raw)
		if err != nil {
			return nil, errors.Mark(errors.Wrapf(err, "line %d", line), errors.ErrMalformedArtifact)
		}

		if kind == TokenText {
			if text.Len() == 0 {
				start = line
			}

			text.WriteString(raw)

			continue
		}

		flush()
		tokens = append(tokens, Token{Kind: kind, Raw: raw, Path: path, Line: line})
	}

	flush()

	return tokens, nil
}

func (m Markers) classify(raw string) (TokenKind, string, error) {
	trimmed := strings.TrimSpace(raw)

	for _, mk := range []struct {
		name string
		kind TokenKind
	}{{m.Begin, TokenBegin}, {m.End, TokenEnd}} {
		if !strings.HasPrefix(trimmed, mk.name) {
			continue
		}

		arg := trimmed[len(mk.name):]
		if arg != "" && arg[0] != '(' {
			// A longer identifier such as EPI_GENREGION_BEGIN_X is plain text.
			continue
		}

		if !strings.HasPrefix(arg, "(") || !strings.HasSuffix(arg, ")") {
			return TokenText, "", errors.Newf("malformed marker %q", trimmed)
		}

		path := strings.TrimSpace(arg[1 : len(arg)-1])
		if path == "" || strings.ContainsAny(path, "() \t") {
			return TokenText, "", errors.Newf("malformed marker path in %q", trimmed)
		}

		return mk.kind, path, nil
	}

	return TokenText, "", nil
}
