package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stixkit/stixpat/tokenizer"
)

// ParseError reports the offending token together with the grammar
// productions that could have matched at that point.
type ParseError struct {
	Token    tokenizer.Token
	Expected []string
}

func (e *ParseError) Error() string {
	found := e.Token.String()
	if e.Token.Type == tokenizer.EOF {
		found = "end of pattern"
	}

	return fmt.Sprintf("unexpected %s at line %d, column %d: expected %s",
		found, e.Token.Position.Line, e.Token.Position.Column, strings.Join(e.Expected, " or "))
}

// patternParser is a hand-written LL(1) recursive-descent parser over a
// whitespace-free token slice.
type patternParser struct {
	tokens []tokenizer.Token
	pos    int
}

// peek returns the current token, or a synthetic EOF one past the input.
func (p *patternParser) peek() tokenizer.Token {
	if p.pos >= len(p.tokens) {
		var position tokenizer.Position
		if n := len(p.tokens); n > 0 {
			last := p.tokens[n-1]
			position = tokenizer.Position{
				Line:   last.Position.Line,
				Column: last.Position.Column + len(last.Value),
				Offset: last.Position.Offset + len(last.Value),
			}
		} else {
			position = tokenizer.Position{Line: 1, Column: 1}
		}
		return tokenizer.Token{Type: tokenizer.EOF, Position: position}
	}

	return p.tokens[p.pos]
}

func (p *patternParser) advance() tokenizer.Token {
	token := p.peek()
	if p.pos < len(p.tokens) {
		p.pos++
	}

	return token
}

func (p *patternParser) fail(expected ...string) error {
	return &ParseError{Token: p.peek(), Expected: expected}
}

// parseObservationOr: observationAnd (OR observationAnd)*
func (p *patternParser) parseObservationOr() (ObservationExpression, error) {
	left, err := p.parseObservationAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == tokenizer.OR {
		p.advance()

		right, err := p.parseObservationAnd()
		if err != nil {
			return nil, err
		}

		left = &ObservationCombination{Operator: LogicalOr, Left: left, Right: right}
	}

	return left, nil
}

// parseObservationAnd: observationAtom (AND observationAtom)*
func (p *patternParser) parseObservationAnd() (ObservationExpression, error) {
	left, err := p.parseObservationAtom()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == tokenizer.AND {
		p.advance()

		right, err := p.parseObservationAtom()
		if err != nil {
			return nil, err
		}

		left = &ObservationCombination{Operator: LogicalAnd, Left: left, Right: right}
	}

	return left, nil
}

// parseObservationAtom: '[' comparisonOr ']' | '(' observationOr ')'
func (p *patternParser) parseObservationAtom() (ObservationExpression, error) {
	switch p.peek().Type {
	case tokenizer.OPENED_BRACKET:
		open := p.advance()

		expression, err := p.parseComparisonOr()
		if err != nil {
			return nil, err
		}

		if p.peek().Type != tokenizer.CLOSED_BRACKET {
			return nil, p.fail("']'", "'AND'", "'OR'")
		}
		p.advance()

		return &ObservationGroup{Expression: expression, Position: open.Position}, nil
	case tokenizer.OPENED_PARENS:
		p.advance()

		expression, err := p.parseObservationOr()
		if err != nil {
			return nil, err
		}

		if p.peek().Type != tokenizer.CLOSED_PARENS {
			return nil, p.fail("')'", "'AND'", "'OR'")
		}
		p.advance()

		return expression, nil
	default:
		return nil, p.fail("bracketed comparison group", "parenthesized observation expression")
	}
}

// parseComparisonOr: comparisonAnd (OR comparisonAnd)*
func (p *patternParser) parseComparisonOr() (ComparisonExpression, error) {
	left, err := p.parseComparisonAnd()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == tokenizer.OR {
		p.advance()

		right, err := p.parseComparisonAnd()
		if err != nil {
			return nil, err
		}

		left = &ComparisonCombination{Operator: LogicalOr, Left: left, Right: right}
	}

	return left, nil
}

// parseComparisonAnd: comparison (AND comparison)*
func (p *patternParser) parseComparisonAnd() (ComparisonExpression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}

	for p.peek().Type == tokenizer.AND {
		p.advance()

		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}

		left = &ComparisonCombination{Operator: LogicalAnd, Left: left, Right: right}
	}

	return left, nil
}

// parseComparison: path operator value
func (p *patternParser) parseComparison() (ComparisonExpression, error) {
	token := p.peek()
	if token.Type != tokenizer.PATH && token.Type != tokenizer.IDENTIFIER {
		return nil, p.fail("object path")
	}
	p.advance()

	path := Path{Raw: token.Value, Position: token.Position}

	operator, err := p.parseOperator()
	if err != nil {
		return nil, err
	}

	value, err := p.parseValue()
	if err != nil {
		return nil, err
	}

	return &Comparison{Path: path, Operator: operator, Value: value, Position: token.Position}, nil
}

func (p *patternParser) parseOperator() (Operator, error) {
	var operator Operator

	switch p.peek().Type {
	case tokenizer.EQUAL:
		operator = OpEqual
	case tokenizer.NOT_EQUAL:
		operator = OpNotEqual
	case tokenizer.LESS_THAN:
		operator = OpLessThan
	case tokenizer.GREATER_THAN:
		operator = OpGreaterThan
	case tokenizer.LESS_EQUAL:
		operator = OpLessEqual
	case tokenizer.GREATER_EQUAL:
		operator = OpGreaterEqual
	case tokenizer.IN:
		operator = OpIn
	case tokenizer.NOT_IN:
		operator = OpNotIn
	case tokenizer.LIKE:
		operator = OpLike
	case tokenizer.MATCHES:
		operator = OpMatches
	case tokenizer.ISSUBSET:
		operator = OpIsSubset
	case tokenizer.ISSUPERSET:
		operator = OpIsSuperset
	default:
		return 0, p.fail("comparison operator")
	}

	p.advance()

	return operator, nil
}

// parseValue builds the tagged union at parse time: a quoted/numeric token
// is a literal, a parenthesis opens a list literal, and a dotted bare path
// is a reference to another object.
func (p *patternParser) parseValue() (Value, error) {
	token := p.peek()

	switch token.Type {
	case tokenizer.STRING:
		p.advance()
		return StringLiteral{Value: token.Value, Position: token.Position}, nil
	case tokenizer.NUMBER:
		p.advance()
		return p.makeNumberLiteral(token)
	case tokenizer.OPENED_PARENS:
		return p.parseListLiteral()
	case tokenizer.PATH:
		// The object name is a bare identifier; the referenced path after the
		// first dot may carry further dots and [index] selectors.
		dot := strings.Index(token.Value, ".")
		if dot < 1 || strings.Contains(token.Value, ":") || strings.Contains(token.Value[:dot], "[") {
			return nil, p.fail("object reference (Object.property)")
		}
		p.advance()

		return Reference{
			Object:   token.Value[:dot],
			Path:     token.Value[dot+1:],
			Position: token.Position,
		}, nil
	default:
		return nil, p.fail("string literal", "number literal", "list literal", "object reference")
	}
}

// parseListLiteral: '(' literal (',' literal)* ')' — one or more entries.
func (p *patternParser) parseListLiteral() (Value, error) {
	open := p.advance() // '('

	var items []Value

	for {
		item, err := p.parseScalarLiteral()
		if err != nil {
			return nil, err
		}
		items = append(items, item)

		if p.peek().Type != tokenizer.COMMA {
			break
		}
		p.advance()
	}

	if p.peek().Type != tokenizer.CLOSED_PARENS {
		return nil, p.fail("','", "')'")
	}
	p.advance()

	return ListLiteral{Items: items, Position: open.Position}, nil
}

func (p *patternParser) parseScalarLiteral() (Value, error) {
	token := p.peek()

	switch token.Type {
	case tokenizer.STRING:
		p.advance()
		return StringLiteral{Value: token.Value, Position: token.Position}, nil
	case tokenizer.NUMBER:
		p.advance()
		return p.makeNumberLiteral(token)
	default:
		return nil, p.fail("string literal", "number literal")
	}
}

func (p *patternParser) makeNumberLiteral(token tokenizer.Token) (Value, error) {
	value, err := decimal.NewFromString(token.Value)
	if err != nil {
		return nil, &ParseError{Token: token, Expected: []string{"number literal"}}
	}

	return NumberLiteral{Value: value, Position: token.Position}, nil
}
