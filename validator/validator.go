package validator

import (
	"fmt"
	"time"

	"github.com/stixkit/stixpat/parser"
	"github.com/stixkit/stixpat/tokenizer"
)

// ErrorKind classifies a semantic violation.
type ErrorKind int

const (
	TypeMismatch ErrorKind = iota
	MalformedPath
	MalformedTimestamp
	InvertedQualifierWindow
	EmptyPattern
)

func (k ErrorKind) String() string {
	switch k {
	case TypeMismatch:
		return "TypeMismatch"
	case MalformedPath:
		return "MalformedPath"
	case MalformedTimestamp:
		return "MalformedTimestamp"
	case InvertedQualifierWindow:
		return "InvertedQualifierWindow"
	case EmptyPattern:
		return "EmptyPattern"
	default:
		return "Unknown"
	}
}

// SemanticError is one validator finding. Validation collects every finding
// in a single pass instead of stopping at the first.
type SemanticError struct {
	Kind     ErrorKind
	Position tokenizer.Position
	Message  string
}

func (e SemanticError) Error() string {
	return fmt.Sprintf("[%s] %s at line %d, column %d", e.Kind, e.Message, e.Position.Line, e.Position.Column)
}

// Options configures validation behaviour.
type Options struct {
	// StrictTimestamps enables calendar validity checks on qualifier
	// timestamps beyond the lexical digit-shape check.
	StrictTimestamps bool
}

// Validate checks a parsed pattern against the semantic rules that the
// grammar cannot express. A nil result means the pattern is valid. The AST
// is never mutated; concurrent validation of separate patterns is safe.
func Validate(pattern *parser.Pattern) []SemanticError {
	return ValidateWithOptions(pattern, Options{StrictTimestamps: true})
}

// ValidateWithOptions is Validate with explicit options.
func ValidateWithOptions(pattern *parser.Pattern, opts Options) []SemanticError {
	v := &validator{opts: opts}

	if pattern == nil || pattern.Observation == nil {
		v.report(EmptyPattern, tokenizer.Position{Line: 1, Column: 1}, "pattern contains no comparisons")
		return v.errs
	}

	v.walkObservation(pattern.Observation)

	if v.comparisons == 0 {
		v.report(EmptyPattern, tokenizer.Position{Line: 1, Column: 1}, "pattern contains no comparisons")
	}

	if pattern.Qualifier != nil {
		v.checkQualifier(pattern.Qualifier)
	}

	return v.errs
}

type validator struct {
	opts        Options
	errs        []SemanticError
	comparisons int
}

func (v *validator) report(kind ErrorKind, pos tokenizer.Position, format string, args ...any) {
	v.errs = append(v.errs, SemanticError{
		Kind:     kind,
		Position: pos,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) walkObservation(expr parser.ObservationExpression) {
	switch node := expr.(type) {
	case *parser.ObservationGroup:
		if node.Expression != nil {
			v.walkComparisonExpression(node.Expression)
		}
	case *parser.ObservationCombination:
		v.walkObservation(node.Left)
		v.walkObservation(node.Right)
	}
}

func (v *validator) walkComparisonExpression(expr parser.ComparisonExpression) {
	switch node := expr.(type) {
	case *parser.Comparison:
		v.comparisons++
		v.checkComparison(node)
	case *parser.ComparisonCombination:
		v.walkComparisonExpression(node.Left)
		v.walkComparisonExpression(node.Right)
	}
}

// checkComparison applies every rule independently so one comparison can
// surface multiple findings.
func (v *validator) checkComparison(c *parser.Comparison) {
	if _, err := c.Path.Segments(); err != nil {
		v.report(MalformedPath, c.Path.Position, "malformed path %q: %v", c.Path.Raw, err)
	}

	if ref, ok := c.Value.(parser.Reference); ok {
		v.checkReference(ref)
		return
	}

	if !c.Operator.Extended() {
		if _, ok := c.Value.(parser.ListLiteral); ok {
			v.report(TypeMismatch, c.Position, "operator %s requires a scalar literal or reference, got list literal %s", c.Operator, c.Value)
		}
		return
	}

	switch c.Operator {
	case parser.OpIn, parser.OpNotIn:
		if _, ok := c.Value.(parser.ListLiteral); !ok {
			v.report(TypeMismatch, c.Position, "operator %s requires a list literal or reference, got scalar literal %s", c.Operator, c.Value)
		}
	case parser.OpLike, parser.OpMatches:
		if _, ok := c.Value.(parser.StringLiteral); !ok {
			v.report(TypeMismatch, c.Position, "operator %s requires a string literal or reference, got %s", c.Operator, c.Value)
		}
	case parser.OpIsSubset, parser.OpIsSuperset:
		if _, ok := c.Value.(parser.StringLiteral); !ok {
			v.report(TypeMismatch, c.Position, "operator %s requires a string literal in set notation or reference, got %s", c.Operator, c.Value)
		}
	}
}

// checkReference re-checks the object name and path of a reference value;
// the parser splits them syntactically but does not verify segment grammar.
func (v *validator) checkReference(ref parser.Reference) {
	segments, err := parser.ParsePathSegments(ref.Object)
	if err != nil || len(segments) != 1 || len(segments[0].Indexes) != 0 {
		v.report(MalformedPath, ref.Position, "malformed reference object name %q", ref.Object)
	}

	if _, err := parser.ParsePathSegments(ref.Path); err != nil {
		v.report(MalformedPath, ref.Position, "malformed reference path %q: %v", ref.Path, err)
	}
}

func (v *validator) checkQualifier(q *parser.Qualifier) {
	start := v.checkTimestamp(q.Start)
	stop := v.checkTimestamp(q.Stop)

	if start != nil && stop != nil && start.After(*stop) {
		v.report(InvertedQualifierWindow, q.Start.Position,
			"qualifier window is inverted: start %s is after stop %s", q.Start, q.Stop)
	}
}

// checkTimestamp parses a timestamp literal for calendar validity. The
// lexer only enforced digit shape, so month 13 or day 32 surface here.
func (v *validator) checkTimestamp(ts parser.TimestampLiteral) *time.Time {
	parsed, err := time.Parse(time.RFC3339, ts.Value)
	if err != nil {
		if v.opts.StrictTimestamps {
			v.report(MalformedTimestamp, ts.Position, "timestamp %s is not a valid calendar instant", ts)
		}
		return nil
	}

	return &parsed
}
