package tokenizer

import (
	"fmt"
	"iter"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenIterator uses the Go 1.23 iterator pattern
type TokenIterator iter.Seq2[Token, error]

// timestampBody is the lexical shape of the digits between t' and '.
// Calendar plausibility beyond digit ranges is the validator's job.
var timestampBody = regexp.MustCompile(`^\d{4}-[01]\d-[0-3]\dT[0-2]\d:[0-5]\d:[0-5]\d(\.\d+)?Z$`)

// PatternTokenizer is a tokenizer that returns an iterator
type PatternTokenizer struct {
	input   string
	options TokenizerOptions
}

// TokenizerOptions are options for the tokenizer
type TokenizerOptions struct {
	SkipWhitespace bool
}

// NewPatternTokenizer creates a new PatternTokenizer
func NewPatternTokenizer(input string, options ...TokenizerOptions) *PatternTokenizer {
	opts := TokenizerOptions{
		SkipWhitespace: false,
	}
	if len(options) > 0 {
		opts = options[0]
	}

	return &PatternTokenizer{
		input:   input,
		options: opts,
	}
}

// Tokens returns an iterator of tokens. A lexical error is yielded once and
// terminates the sequence.
func (t *PatternTokenizer) Tokens() TokenIterator {
	return func(yield func(Token, error) bool) {
		tokenizer := &tokenizer{
			input:  t.input,
			line:   1,
			column: 1,
		}

		tokenizer.readChar()

		for {
			token, err := tokenizer.nextToken()
			if err != nil {
				yield(Token{}, err)
				return
			}

			if token.Type == EOF {
				yield(token, nil)
				return
			}

			if t.options.SkipWhitespace && token.Type == WHITESPACE {
				continue
			}

			if !yield(token, nil) {
				return
			}
		}
	}
}

// AllTokens gets all tokens as a slice
func (t *PatternTokenizer) AllTokens() ([]Token, error) {
	tokens := make([]Token, 0, 32)

	for token, err := range t.Tokens() {
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Type == EOF {
			break
		}
	}

	return tokens, nil
}

// Internal tokenizer implementation
type tokenizer struct {
	input    string
	position int // byte offset one past current
	line     int
	column   int
	current  rune
	width    int // byte width of current
}

// nextToken gets the next token
func (t *tokenizer) nextToken() (Token, error) {
	switch t.current {
	case 0:
		return Token{Type: EOF, Position: t.startPosition()}, nil
	case ' ', '\t', '\r', '\n':
		return t.readWhitespace(), nil
	case '[':
		return t.readSymbol(OPENED_BRACKET), nil
	case ']':
		return t.readSymbol(CLOSED_BRACKET), nil
	case '(':
		return t.readSymbol(OPENED_PARENS), nil
	case ')':
		return t.readSymbol(CLOSED_PARENS), nil
	case ',':
		return t.readSymbol(COMMA), nil
	case '\'':
		return t.readString()
	case '=':
		return t.readSymbol(EQUAL), nil
	case '!':
		if t.peekChar() == '=' {
			return t.readTwoCharSymbol(NOT_EQUAL, "!="), nil
		}
		return Token{}, fmt.Errorf("%w: '!' at line %d, column %d", ErrUnexpectedCharacter, t.line, t.column-1)
	case '<':
		if t.peekChar() == '=' {
			return t.readTwoCharSymbol(LESS_EQUAL, "<="), nil
		}
		return t.readSymbol(LESS_THAN), nil
	case '>':
		if t.peekChar() == '=' {
			return t.readTwoCharSymbol(GREATER_EQUAL, ">="), nil
		}
		return t.readSymbol(GREATER_THAN), nil
	case '-':
		if unicode.IsDigit(t.peekChar()) {
			return t.readNumber()
		}
		return Token{}, fmt.Errorf("%w: '-' at line %d, column %d", ErrUnexpectedCharacter, t.line, t.column-1)
	default:
		if t.current == 't' && t.peekChar() == '\'' {
			return t.readTimestamp()
		}
		if unicode.IsLetter(t.current) {
			return t.readWord()
		}
		if unicode.IsDigit(t.current) {
			return t.readNumber()
		}
		return Token{}, fmt.Errorf("%w: %q at line %d, column %d", ErrUnexpectedCharacter, string(t.current), t.line, t.column-1)
	}
}

// readChar decodes the next rune. Positions stay byte offsets; columns
// count runes.
func (t *tokenizer) readChar() {
	if t.position >= len(t.input) {
		t.current = 0
		t.width = 1
		t.position++
		return
	}

	r, width := utf8.DecodeRuneInString(t.input[t.position:])
	t.current = r
	t.width = width
	t.position += width

	if t.current == '\n' {
		t.line++
		t.column = 1
	} else {
		t.column++
	}
}

// peekChar looks ahead at the next rune
func (t *tokenizer) peekChar() rune {
	if t.position >= len(t.input) {
		return 0
	}

	r, _ := utf8.DecodeRuneInString(t.input[t.position:])
	return r
}

func (t *tokenizer) startPosition() Position {
	return Position{
		Line:   t.line,
		Column: t.column - 1,
		Offset: t.position - t.width,
	}
}

// readWhitespace reads whitespace characters
func (t *tokenizer) readWhitespace() Token {
	var builder strings.Builder
	start := t.startPosition()

	for unicode.IsSpace(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return Token{
		Type:     WHITESPACE,
		Value:    builder.String(),
		Position: start,
	}
}

// readWord reads identifiers, keywords, and object paths
func (t *tokenizer) readWord() (Token, error) {
	start := t.startPosition()

	word := t.readName()

	// Keywords are reserved case-sensitively and never continue into a path.
	switch word {
	case "AND":
		return Token{Type: AND, Value: word, Position: start}, nil
	case "OR":
		return Token{Type: OR, Value: word, Position: start}, nil
	case "IN":
		return Token{Type: IN, Value: word, Position: start}, nil
	case "LIKE":
		return Token{Type: LIKE, Value: word, Position: start}, nil
	case "MATCHES":
		return Token{Type: MATCHES, Value: word, Position: start}, nil
	case "ISSUBSET":
		return Token{Type: ISSUBSET, Value: word, Position: start}, nil
	case "ISSUPERSET":
		return Token{Type: ISSUPERSET, Value: word, Position: start}, nil
	case "START":
		return Token{Type: START, Value: word, Position: start}, nil
	case "STOP":
		return Token{Type: STOP, Value: word, Position: start}, nil
	case "NOT":
		return t.readNotIn(start)
	}

	var builder strings.Builder
	builder.WriteString(word)

	// Path continuations: '.name', ':name', '[digits]', consumed greedily.
	isPath := false

	for {
		switch t.current {
		case '.', ':':
			builder.WriteRune(t.current)
			t.readChar()

			if !unicode.IsLetter(t.current) {
				return Token{}, fmt.Errorf("%w: expected name after separator at line %d, column %d", ErrMalformedPath, t.line, t.column-1)
			}
			builder.WriteString(t.readName())
			isPath = true
		case '[':
			builder.WriteRune(t.current)
			t.readChar()

			if !unicode.IsDigit(t.current) {
				return Token{}, fmt.Errorf("%w: expected index after '[' at line %d, column %d", ErrMalformedPath, t.line, t.column-1)
			}
			for unicode.IsDigit(t.current) {
				builder.WriteRune(t.current)
				t.readChar()
			}
			if t.current != ']' {
				return Token{}, fmt.Errorf("%w: expected ']' to close index at line %d, column %d", ErrMalformedPath, t.line, t.column-1)
			}
			builder.WriteRune(t.current)
			t.readChar()
			isPath = true
		default:
			tokenType := IDENTIFIER
			if isPath {
				tokenType = PATH
			}
			return Token{Type: tokenType, Value: builder.String(), Position: start}, nil
		}
	}
}

// readNotIn consumes the IN keyword after NOT so the pair surfaces as one
// NOT_IN token.
func (t *tokenizer) readNotIn(start Position) (Token, error) {
	for t.current == ' ' || t.current == '\t' || t.current == '\r' || t.current == '\n' {
		t.readChar()
	}

	if !unicode.IsLetter(t.current) {
		return Token{}, fmt.Errorf("%w: at line %d, column %d", ErrDanglingNot, start.Line, start.Column)
	}

	word := t.readName()
	if word != "IN" {
		return Token{}, fmt.Errorf("%w: found %q at line %d, column %d", ErrDanglingNot, word, start.Line, start.Column)
	}

	return Token{Type: NOT_IN, Value: "NOT IN", Position: start}, nil
}

// readName reads one identifier: letter start, then letters, digits, '_', '-'.
func (t *tokenizer) readName() string {
	var builder strings.Builder

	builder.WriteRune(t.current)
	t.readChar()

	for unicode.IsLetter(t.current) || unicode.IsDigit(t.current) || t.current == '_' || t.current == '-' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	return builder.String()
}

// readString reads a quoted string literal. The content is any run of
// non-quote characters; there is no escape mechanism.
func (t *tokenizer) readString() (Token, error) {
	var builder strings.Builder
	start := t.startPosition()

	t.readChar() // opening quote

	for t.current != 0 && t.current != '\'' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if t.current == 0 {
		return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedString, start.Line, start.Column)
	}

	t.readChar() // closing quote

	return Token{
		Type:     STRING,
		Value:    builder.String(),
		Position: start,
	}, nil
}

// readTimestamp reads a t'...' literal and checks its digit shape.
func (t *tokenizer) readTimestamp() (Token, error) {
	var builder strings.Builder
	start := t.startPosition()

	t.readChar() // t
	t.readChar() // opening quote

	for t.current != 0 && t.current != '\'' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if t.current == 0 {
		return Token{}, fmt.Errorf("%w at line %d, column %d", ErrUnterminatedString, start.Line, start.Column)
	}

	t.readChar() // closing quote

	body := builder.String()
	if !timestampBody.MatchString(body) {
		return Token{}, fmt.Errorf("%w: t'%s' at line %d, column %d", ErrMalformedTimestamp, body, start.Line, start.Column)
	}

	return Token{
		Type:     TIMESTAMP,
		Value:    body,
		Position: start,
	}, nil
}

// readNumber reads numeric literals
func (t *tokenizer) readNumber() (Token, error) {
	var builder strings.Builder
	start := t.startPosition()

	if t.current == '-' {
		builder.WriteRune(t.current)
		t.readChar()
	}

	for unicode.IsDigit(t.current) {
		builder.WriteRune(t.current)
		t.readChar()
	}

	if t.current == '.' && unicode.IsDigit(t.peekChar()) {
		builder.WriteRune(t.current)
		t.readChar()

		for unicode.IsDigit(t.current) {
			builder.WriteRune(t.current)
			t.readChar()
		}
	}

	return Token{
		Type:     NUMBER,
		Value:    builder.String(),
		Position: start,
	}, nil
}

// readSymbol consumes the current character as a single-character token.
func (t *tokenizer) readSymbol(tokenType TokenType) Token {
	token := Token{
		Type:     tokenType,
		Value:    string(t.current),
		Position: t.startPosition(),
	}
	t.readChar()

	return token
}

// readTwoCharSymbol consumes the current character and its successor.
func (t *tokenizer) readTwoCharSymbol(tokenType TokenType, value string) Token {
	token := Token{
		Type:     tokenType,
		Value:    value,
		Position: t.startPosition(),
	}
	t.readChar()
	t.readChar()

	return token
}
