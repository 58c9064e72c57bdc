package parser

import (
	"strings"

	"github.com/shopspring/decimal"
	"github.com/stixkit/stixpat/tokenizer"
)

// LogicalOperator joins two expressions at the same level.
type LogicalOperator int

const (
	LogicalAnd LogicalOperator = iota
	LogicalOr
)

func (o LogicalOperator) String() string {
	if o == LogicalOr {
		return "OR"
	}
	return "AND"
}

// Operator is a comparison operator. The simple family applies to scalar
// literals; the extended family carries its own value-shape requirement.
type Operator int

const (
	OpEqual Operator = iota
	OpNotEqual
	OpLessThan
	OpGreaterThan
	OpLessEqual
	OpGreaterEqual
	OpIn
	OpNotIn
	OpLike
	OpMatches
	OpIsSubset
	OpIsSuperset
)

// Extended reports whether the operator belongs to the keyword family
// (IN, NOT IN, LIKE, MATCHES, ISSUBSET, ISSUPERSET).
func (o Operator) Extended() bool {
	return o >= OpIn
}

func (o Operator) String() string {
	switch o {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "!="
	case OpLessThan:
		return "<"
	case OpGreaterThan:
		return ">"
	case OpLessEqual:
		return "<="
	case OpGreaterEqual:
		return ">="
	case OpIn:
		return "IN"
	case OpNotIn:
		return "NOT IN"
	case OpLike:
		return "LIKE"
	case OpMatches:
		return "MATCHES"
	case OpIsSubset:
		return "ISSUBSET"
	case OpIsSuperset:
		return "ISSUPERSET"
	default:
		return "UNKNOWN"
	}
}

// Path is a dotted/indexed property locator. Raw keeps the source text;
// Segments recovers the parsed form on demand.
type Path struct {
	Raw      string
	Position tokenizer.Position
}

func (p Path) String() string {
	return p.Raw
}

// Segments parses Raw into its ordered segment list.
func (p Path) Segments() ([]PathSegment, error) {
	return ParsePathSegments(p.Raw)
}

// Value is the right-hand side of a comparison: a scalar literal, a list
// literal, or a reference to a property of another named object.
type Value interface {
	String() string
	valueNode()
}

// StringLiteral is a quoted string. Value holds the content without quotes.
type StringLiteral struct {
	Value    string
	Position tokenizer.Position
}

func (s StringLiteral) valueNode() {}
func (s StringLiteral) String() string {
	return "'" + s.Value + "'"
}

// NumberLiteral is a numeric literal kept as an exact decimal.
type NumberLiteral struct {
	Value    decimal.Decimal
	Position tokenizer.Position
}

func (n NumberLiteral) valueNode() {}
func (n NumberLiteral) String() string {
	return n.Value.String()
}

// ListLiteral is a non-empty parenthesized sequence of scalar literals.
type ListLiteral struct {
	Items    []Value
	Position tokenizer.Position
}

func (l ListLiteral) valueNode() {}
func (l ListLiteral) String() string {
	parts := make([]string, len(l.Items))
	for i, item := range l.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Reference denotes "substitute the value found at Path on the named
// external object". Resolution is left to the caller.
type Reference struct {
	Object   string
	Path     string
	Position tokenizer.Position
}

func (r Reference) valueNode() {}
func (r Reference) String() string {
	return r.Object + "." + r.Path
}

// ComparisonExpression is a boolean tree over comparisons inside one
// bracketed observation group.
type ComparisonExpression interface {
	String() string
	comparisonNode()
}

// Comparison is a leaf predicate: path operator value.
type Comparison struct {
	Path     Path
	Operator Operator
	Value    Value
	Position tokenizer.Position
}

func (c *Comparison) comparisonNode() {}
func (c *Comparison) String() string {
	return c.Path.String() + " " + c.Operator.String() + " " + c.Value.String()
}

// ComparisonCombination joins two comparison expressions with AND or OR.
type ComparisonCombination struct {
	Operator LogicalOperator
	Left     ComparisonExpression
	Right    ComparisonExpression
}

func (c *ComparisonCombination) comparisonNode() {}
func (c *ComparisonCombination) String() string {
	return c.Left.String() + " " + c.Operator.String() + " " + c.Right.String()
}

// ObservationExpression is one bracketed comparison group or an AND/OR tree
// over nested observation expressions.
type ObservationExpression interface {
	String() string
	observationNode()
}

// ObservationGroup is a single bracketed comparison expression.
type ObservationGroup struct {
	Expression ComparisonExpression
	Position   tokenizer.Position
}

func (g *ObservationGroup) observationNode() {}
func (g *ObservationGroup) String() string {
	return "[" + g.Expression.String() + "]"
}

// ObservationCombination joins two observation expressions with AND or OR.
type ObservationCombination struct {
	Operator LogicalOperator
	Left     ObservationExpression
	Right    ObservationExpression
}

func (c *ObservationCombination) observationNode() {}
func (c *ObservationCombination) String() string {
	return printObservationOperand(c.Left) + " " + c.Operator.String() + " " + printObservationOperand(c.Right)
}

// printObservationOperand parenthesizes nested combinations so the printed
// form re-parses to an equivalent tree regardless of operator precedence.
func printObservationOperand(expr ObservationExpression) string {
	if _, ok := expr.(*ObservationCombination); ok {
		return "(" + expr.String() + ")"
	}
	return expr.String()
}

// TimestampLiteral is a t'...' literal. Value holds the digits between the
// quotes; calendar validity is checked by the validator.
type TimestampLiteral struct {
	Value    string
	Position tokenizer.Position
}

func (t TimestampLiteral) String() string {
	return "t'" + t.Value + "'"
}

// Qualifier is the optional time window attached to the whole pattern.
type Qualifier struct {
	Start TimestampLiteral
	Stop  TimestampLiteral
}

func (q *Qualifier) String() string {
	return "START " + q.Start.String() + " STOP " + q.Stop.String()
}

// Pattern is the AST root. It is immutable after parsing; the validator and
// the reference extractor are read-only consumers.
type Pattern struct {
	Observation ObservationExpression
	Qualifier   *Qualifier
}

func (p *Pattern) String() string {
	if p.Qualifier == nil {
		return p.Observation.String()
	}
	return p.Observation.String() + " " + p.Qualifier.String()
}
