package tokenizer

import "errors"

// Sentinel errors
var (
	ErrUnexpectedCharacter = errors.New("unexpected character")
	ErrUnterminatedString  = errors.New("unterminated string literal")
	ErrMalformedTimestamp  = errors.New("malformed timestamp literal")
	ErrMalformedPath       = errors.New("malformed object path")
	ErrDanglingNot         = errors.New("NOT must be followed by IN")
)

// TokenType represents the type of a token
type TokenType int

const (
	// Basic tokens
	EOF TokenType = iota
	WHITESPACE
	IDENTIFIER // bare name (letter start; letters, digits, '_', '-')
	PATH       // identifier with '.'/':' segments and/or [index] selectors
	NUMBER     // numeric literals
	STRING     // 'quoted' string literals, no escapes
	TIMESTAMP  // t'...' literals

	// Structural tokens
	OPENED_BRACKET // [
	CLOSED_BRACKET // ]
	OPENED_PARENS  // (
	CLOSED_PARENS  // )
	COMMA          // ,

	// Comparison operators
	EQUAL         // =
	NOT_EQUAL     // !=
	LESS_THAN     // <
	GREATER_THAN  // >
	LESS_EQUAL    // <=
	GREATER_EQUAL // >=

	// Extended operators
	IN         // IN keyword
	NOT_IN     // NOT IN keyword pair, lexed as a unit
	LIKE       // LIKE keyword
	MATCHES    // MATCHES keyword
	ISSUBSET   // ISSUBSET keyword
	ISSUPERSET // ISSUPERSET keyword

	// Logical and qualifier keywords
	AND   // AND keyword
	OR    // OR keyword
	START // START keyword
	STOP  // STOP keyword
)

// String returns the string representation of TokenType
func (t TokenType) String() string {
	switch t {
	case EOF:
		return "EOF"
	case WHITESPACE:
		return "WHITESPACE"
	case IDENTIFIER:
		return "IDENTIFIER"
	case PATH:
		return "PATH"
	case NUMBER:
		return "NUMBER"
	case STRING:
		return "STRING"
	case TIMESTAMP:
		return "TIMESTAMP"
	case OPENED_BRACKET:
		return "OPENED_BRACKET"
	case CLOSED_BRACKET:
		return "CLOSED_BRACKET"
	case OPENED_PARENS:
		return "OPENED_PARENS"
	case CLOSED_PARENS:
		return "CLOSED_PARENS"
	case COMMA:
		return "COMMA"
	case EQUAL:
		return "EQUAL"
	case NOT_EQUAL:
		return "NOT_EQUAL"
	case LESS_THAN:
		return "LESS_THAN"
	case GREATER_THAN:
		return "GREATER_THAN"
	case LESS_EQUAL:
		return "LESS_EQUAL"
	case GREATER_EQUAL:
		return "GREATER_EQUAL"
	case IN:
		return "IN"
	case NOT_IN:
		return "NOT_IN"
	case LIKE:
		return "LIKE"
	case MATCHES:
		return "MATCHES"
	case ISSUBSET:
		return "ISSUBSET"
	case ISSUPERSET:
		return "ISSUPERSET"
	case AND:
		return "AND"
	case OR:
		return "OR"
	case START:
		return "START"
	case STOP:
		return "STOP"
	default:
		return "UNKNOWN"
	}
}

// Position represents a position in the source pattern
type Position struct {
	Line   int
	Column int
	Offset int
}

// Token represents a classified lexeme. Value holds the significant text:
// for STRING and TIMESTAMP literals the enclosing quotes (and t prefix) are
// stripped, for everything else it is the raw lexeme.
type Token struct {
	Type     TokenType
	Value    string
	Position Position
}

// String returns the string representation of Token
func (t Token) String() string {
	return t.Type.String() + ": " + t.Value
}
