// Package lexer converts a character stream into a stream of tokens,
// synthesizing Indent/Dedent tokens from leading whitespace.
//
// The algorithm mirrors original_source/mython/lexer.cpp's FindNextToken
// dispatch (ProcSpace/ProcIndent/ProcWord/ProcShielding/ProcComment),
// reshaped into an explicit state machine over {AtLineStart, InLine, AtEof}
// as recommended for tagged-state lexers, and driven by two counters
// (currentIndent, indentTarget) rather than the original's recursive calls.
package lexer

import (
	"bufio"
	"io"
	"strings"

	"mython/interpreter-go/pkg/token"
)

const spacesPerIndent = 2

// Lexer is a single-pass, character-at-a-time tokenizer. It is not safe
// for concurrent use.
type Lexer struct {
	r *bufio.Reader

	current token.Token

	atLineStart bool // haven't seen a non-whitespace token on this line yet
	pendingSpaces int

	currentIndent int
	indentTarget  int
	hasPending    bool
	pendingChar   byte

	doneEof bool
}

// New constructs a Lexer over r and advances it to the first token.
func New(r io.Reader) *Lexer {
	l := &Lexer{
		r:           bufio.NewReader(r),
		atLineStart: true,
	}
	l.advance()
	return l
}

// CurrentToken returns the last token produced. Never fails once constructed.
func (l *Lexer) CurrentToken() token.Token { return l.current }

// NextToken advances the lexer and returns the new current token.
func (l *Lexer) NextToken() token.Token {
	l.advance()
	return l.current
}

func (l *Lexer) emit(t token.Token) { l.current = t }

// advance produces exactly one new token, consuming as many
// zero-token-producing characters (blank-line whitespace, comments) as
// necessary first.
func (l *Lexer) advance() {
	for {
		if l.hasPending {
			if l.settleOneIndentStep() {
				return
			}
			c := l.pendingChar
			l.hasPending = false
			l.atLineStart = false
			l.tokenizeChar(c)
			return
		}

		c, err := l.r.ReadByte()
		if err != nil {
			l.procEndStream()
			return
		}

		switch {
		case c == '\n':
			if l.procNewline() {
				return
			}
			// blank line: nothing emitted, keep scanning
		case c == ' ':
			l.pendingSpaces++
		case c == '#':
			if l.procComment() {
				return // comment ran straight into EOF, Eof already emitted
			}
		default:
			if l.atLineStart {
				l.indentTarget = l.pendingSpaces / spacesPerIndent
				l.pendingSpaces = 0
				l.hasPending = true
				l.pendingChar = c
				// loop back around: settleOneIndentStep decides Indent/Dedent/consume
				continue
			}
			l.tokenizeChar(c)
			return
		}
	}
}

// settleOneIndentStep emits a single Indent or Dedent toward indentTarget.
// Returns true if it emitted a token (caller should return to the consumer).
func (l *Lexer) settleOneIndentStep() bool {
	if l.currentIndent < l.indentTarget {
		l.currentIndent++
		l.emit(token.Simple(token.Indent))
		return true
	}
	if l.currentIndent > l.indentTarget {
		l.currentIndent--
		l.emit(token.Simple(token.Dedent))
		return true
	}
	return false
}

// procNewline handles a physical '\n'. It reports true if it emitted a
// Newline token; a blank line emits nothing and reports false.
func (l *Lexer) procNewline() bool {
	l.pendingSpaces = 0
	if l.atLineStart {
		return false
	}
	l.atLineStart = true
	l.emit(token.Simple(token.Newline))
	return true
}

// procComment consumes a line comment up to (but not including) the
// terminating newline. It reports true if it emitted Eof directly because
// the stream ended immediately after the comment (mirroring lexer.cpp's
// ProcComment, which special-cases comment-then-EOF).
func (l *Lexer) procComment() bool {
	for {
		b, err := l.r.Peek(1)
		if err != nil {
			l.doneEof = true
			l.emit(token.Simple(token.Eof))
			return true
		}
		if b[0] == '\n' {
			return false
		}
		l.r.ReadByte()
	}
}

func (l *Lexer) procEndStream() {
	if l.doneEof {
		l.emit(token.Simple(token.Eof))
		return
	}
	if !l.atLineStart {
		l.atLineStart = true
		l.emit(token.Simple(token.Newline))
		return
	}
	if l.currentIndent > 0 {
		l.currentIndent--
		l.emit(token.Simple(token.Dedent))
		return
	}
	l.doneEof = true
	l.emit(token.Simple(token.Eof))
}

func (l *Lexer) tokenizeChar(c byte) {
	switch {
	case isDigit(c):
		l.procNumber(c)
	case c == '_' || isAlpha(c):
		l.procWord(c)
	case c == '\'' || c == '"':
		l.procString(c)
	case c == '=' && l.peekIs('='):
		l.r.ReadByte()
		l.emit(token.Simple(token.Eq))
	case c == '!' && l.peekIs('='):
		l.r.ReadByte()
		l.emit(token.Simple(token.NotEq))
	case c == '<' && l.peekIs('='):
		l.r.ReadByte()
		l.emit(token.Simple(token.LessOrEq))
	case c == '>' && l.peekIs('='):
		l.r.ReadByte()
		l.emit(token.Simple(token.GreaterOrEq))
	default:
		l.emit(token.CharTok(c))
	}
}

func (l *Lexer) peekIs(want byte) bool {
	b, err := l.r.Peek(1)
	return err == nil && len(b) == 1 && b[0] == want
}

func (l *Lexer) procNumber(first byte) {
	var sb strings.Builder
	sb.WriteByte(first)
	for {
		b, err := l.r.Peek(1)
		if err != nil || len(b) == 0 || !isDigit(b[0]) {
			break
		}
		sb.WriteByte(b[0])
		l.r.ReadByte()
	}
	l.emit(token.NumberTok(parseInt(sb.String())))
}

func (l *Lexer) procWord(first byte) {
	var sb strings.Builder
	sb.WriteByte(first)
	for {
		b, err := l.r.Peek(1)
		if err != nil || len(b) == 0 {
			break
		}
		c := b[0]
		if c == '_' || isAlpha(c) || isDigit(c) {
			sb.WriteByte(c)
			l.r.ReadByte()
			continue
		}
		break
	}
	word := sb.String()
	if kw, ok := token.Keywords[word]; ok {
		l.emit(token.Simple(kw))
		return
	}
	l.emit(token.IdTok(word))
}

func (l *Lexer) procString(quote byte) {
	var sb strings.Builder
	for {
		c, err := l.r.ReadByte()
		if err != nil {
			break // unterminated string: emit what we have, mirrors lexer.cpp's lack of raise
		}
		if c == quote {
			break
		}
		if c == '\\' {
			esc, err := l.r.ReadByte()
			if err != nil {
				break
			}
			switch esc {
			case '\'':
				sb.WriteByte('\'')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			default:
				// Unrecognized escape: unspecified by spec.md; drop the backslash.
				sb.WriteByte(esc)
			}
			continue
		}
		sb.WriteByte(c)
	}
	l.emit(token.StringTok(sb.String()))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isAlpha(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func parseInt(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}
