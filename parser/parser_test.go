package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stixkit/stixpat/tokenizer"
)

func TestParseSingleComparison(t *testing.T) {
	pattern, err := Parse("[file:name = 'evil.exe']")
	assert.NoError(t, err)

	group, ok := pattern.Observation.(*ObservationGroup)
	assert.True(t, ok)

	comparison, ok := group.Expression.(*Comparison)
	assert.True(t, ok)

	assert.Equal(t, "file:name", comparison.Path.Raw)
	assert.Equal(t, OpEqual, comparison.Operator)

	literal, ok := comparison.Value.(StringLiteral)
	assert.True(t, ok)
	assert.Equal(t, "evil.exe", literal.Value)

	assert.Zero(t, pattern.Qualifier)
}

func TestParseEndToEndExample(t *testing.T) {
	input := "[file:name = 'evil.exe' AND file:size > 1024] START t'2023-01-01T00:00:00Z' STOP t'2023-12-31T23:59:59Z'"

	pattern, err := Parse(input)
	assert.NoError(t, err)

	group, ok := pattern.Observation.(*ObservationGroup)
	assert.True(t, ok)

	combination, ok := group.Expression.(*ComparisonCombination)
	assert.True(t, ok)
	assert.Equal(t, LogicalAnd, combination.Operator)

	left, ok := combination.Left.(*Comparison)
	assert.True(t, ok)
	assert.Equal(t, "file:name", left.Path.Raw)

	right, ok := combination.Right.(*Comparison)
	assert.True(t, ok)
	assert.Equal(t, OpGreaterThan, right.Operator)

	number, ok := right.Value.(NumberLiteral)
	assert.True(t, ok)
	assert.Equal(t, "1024", number.Value.String())

	assert.NotZero(t, pattern.Qualifier)
	assert.Equal(t, "2023-01-01T00:00:00Z", pattern.Qualifier.Start.Value)
	assert.Equal(t, "2023-12-31T23:59:59Z", pattern.Qualifier.Stop.Value)
}

func TestParseReference(t *testing.T) {
	pattern, err := Parse("[network-traffic:dst_ref.value = Indicator.pattern_value]")
	assert.NoError(t, err)

	group := pattern.Observation.(*ObservationGroup)
	comparison := group.Expression.(*Comparison)

	reference, ok := comparison.Value.(Reference)
	assert.True(t, ok)
	assert.Equal(t, "Indicator", reference.Object)
	assert.Equal(t, "pattern_value", reference.Path)
}

func TestParseReferenceWithDottedPath(t *testing.T) {
	pattern, err := Parse("[a:b = ObjA.x.y]")
	assert.NoError(t, err)

	reference := pattern.Observation.(*ObservationGroup).Expression.(*Comparison).Value.(Reference)
	assert.Equal(t, "ObjA", reference.Object)
	assert.Equal(t, "x.y", reference.Path)
}

func TestParseReferenceWithIndexSelector(t *testing.T) {
	pattern, err := Parse("[network-traffic:src_ref = Conn.to_refs[0].value]")
	assert.NoError(t, err)

	reference := pattern.Observation.(*ObservationGroup).Expression.(*Comparison).Value.(Reference)
	assert.Equal(t, "Conn", reference.Object)
	assert.Equal(t, "to_refs[0].value", reference.Path)

	segments, err := ParsePathSegments(reference.Path)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(segments))
	assert.Equal(t, []int{0}, segments[0].Indexes)
}

func TestParseListLiteral(t *testing.T) {
	pattern, err := Parse("[a:b IN ('x', 'y', 3)]")
	assert.NoError(t, err)

	comparison := pattern.Observation.(*ObservationGroup).Expression.(*Comparison)
	assert.Equal(t, OpIn, comparison.Operator)

	list, ok := comparison.Value.(ListLiteral)
	assert.True(t, ok)
	assert.Equal(t, 3, len(list.Items))
	assert.Equal(t, "'x'", list.Items[0].String())
	assert.Equal(t, "3", list.Items[2].String())
}

func TestParseNotIn(t *testing.T) {
	pattern, err := Parse("[a:b NOT IN ('x')]")
	assert.NoError(t, err)

	comparison := pattern.Observation.(*ObservationGroup).Expression.(*Comparison)
	assert.Equal(t, OpNotIn, comparison.Operator)
}

func TestObservationPrecedence(t *testing.T) {
	// AND binds tighter than OR
	pattern, err := Parse("[a:b = 1] OR [c:d = 2] AND [e:f = 3]")
	assert.NoError(t, err)

	top, ok := pattern.Observation.(*ObservationCombination)
	assert.True(t, ok)
	assert.Equal(t, LogicalOr, top.Operator)

	_, ok = top.Left.(*ObservationGroup)
	assert.True(t, ok)

	right, ok := top.Right.(*ObservationCombination)
	assert.True(t, ok)
	assert.Equal(t, LogicalAnd, right.Operator)
}

func TestObservationLeftAssociativity(t *testing.T) {
	pattern, err := Parse("[a:b = 1] AND [c:d = 2] AND [e:f = 3]")
	assert.NoError(t, err)

	top := pattern.Observation.(*ObservationCombination)

	left, ok := top.Left.(*ObservationCombination)
	assert.True(t, ok)
	assert.Equal(t, LogicalAnd, left.Operator)

	_, ok = top.Right.(*ObservationGroup)
	assert.True(t, ok)
}

func TestParenthesizedObservations(t *testing.T) {
	pattern, err := Parse("([a:b = 1] OR [c:d = 2]) AND [e:f = 3]")
	assert.NoError(t, err)

	top := pattern.Observation.(*ObservationCombination)
	assert.Equal(t, LogicalAnd, top.Operator)

	left, ok := top.Left.(*ObservationCombination)
	assert.True(t, ok)
	assert.Equal(t, LogicalOr, left.Operator)
}

func TestComparisonPrecedence(t *testing.T) {
	pattern, err := Parse("[a:b = 1 OR c:d = 2 AND e:f = 3]")
	assert.NoError(t, err)

	group := pattern.Observation.(*ObservationGroup)

	top, ok := group.Expression.(*ComparisonCombination)
	assert.True(t, ok)
	assert.Equal(t, LogicalOr, top.Operator)

	right, ok := top.Right.(*ComparisonCombination)
	assert.True(t, ok)
	assert.Equal(t, LogicalAnd, right.Operator)
}

func TestParseDeterminism(t *testing.T) {
	input := "([a:b = 1] OR [c:d = 2]) AND [e:f LIKE '%x%']"

	first, err := Parse(input)
	assert.NoError(t, err)

	second, err := Parse(input)
	assert.NoError(t, err)

	assert.Equal(t, first.String(), second.String())
}

func TestPrinterRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "single comparison", input: "[file:name = 'evil.exe']"},
		{name: "two comparisons", input: "[file:name = 'evil.exe' AND file:size > 1024]"},
		{name: "observation combination", input: "[a:b = 1] OR [c:d = 2] AND [e:f = 3]"},
		{name: "parenthesized group", input: "([a:b = 1] OR [c:d = 2]) AND [e:f = 3]"},
		{name: "list literal", input: "[a:b IN ('x', 'y')]"},
		{name: "not in", input: "[a:b NOT IN (1, 2)]"},
		{name: "reference", input: "[a:b = ObjA.x.y]"},
		{name: "unicode string literal", input: "[file:name = 'café.exe']"},
		{name: "qualifier", input: "[a:b = 1] START t'2023-01-01T00:00:00Z' STOP t'2023-12-31T23:59:59Z'"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			pattern, err := Parse(test.input)
			assert.NoError(t, err)

			printed := pattern.String()

			reparsed, err := Parse(printed)
			assert.NoError(t, err)
			assert.Equal(t, printed, reparsed.String())
		})
	}
}

func TestPrinterCanonicalForm(t *testing.T) {
	// Canonically formatted input survives a parse/print cycle byte for byte.
	input := "[file:name = 'evil.exe' AND file:size > 1024] START t'2023-01-01T00:00:00Z' STOP t'2023-12-31T23:59:59Z'"

	pattern, err := Parse(input)
	assert.NoError(t, err)
	assert.Equal(t, input, pattern.String())
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedOffset int
	}{
		{name: "empty input", input: "", expectedOffset: 0},
		{name: "missing closing bracket", input: "[a:b = 1", expectedOffset: 8},
		{name: "missing operator", input: "[a:b 'x']", expectedOffset: 5},
		{name: "missing value", input: "[a:b =]", expectedOffset: 6},
		{name: "bare identifier as value", input: "[a:b = c]", expectedOffset: 7},
		{name: "colon path as value", input: "[a:b = c:d]", expectedOffset: 7},
		{name: "empty list literal", input: "[a:b IN ()]", expectedOffset: 9},
		{name: "list with trailing comma", input: "[a:b IN ('x',)]", expectedOffset: 13},
		{name: "dangling AND", input: "[a:b = 1] AND", expectedOffset: 13},
		{name: "unbalanced parens", input: "([a:b = 1] OR [c:d = 2]", expectedOffset: 23},
		{name: "qualifier in the middle", input: "[a:b = 1] START t'2023-01-01T00:00:00Z' STOP t'2023-01-02T00:00:00Z' OR [c:d = 2]", expectedOffset: 69},
		{name: "incomplete qualifier", input: "[a:b = 1] START t'2023-01-01T00:00:00Z'", expectedOffset: 10},
		{name: "stop without start", input: "[a:b = 1] STOP t'2023-01-01T00:00:00Z'", expectedOffset: 10},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(test.input)
			assert.Error(t, err)

			parseErr, ok := err.(*ParseError)
			assert.True(t, ok)
			assert.NotZero(t, len(parseErr.Expected))
			assert.Equal(t, test.expectedOffset, parseErr.Token.Position.Offset)
		})
	}
}

func TestOperatorFamilies(t *testing.T) {
	for _, op := range []Operator{OpEqual, OpNotEqual, OpLessThan, OpGreaterThan, OpLessEqual, OpGreaterEqual} {
		assert.False(t, op.Extended())
	}

	for _, op := range []Operator{OpIn, OpNotIn, OpLike, OpMatches, OpIsSubset, OpIsSuperset} {
		assert.True(t, op.Extended())
	}
}

func TestParseErrorMessage(t *testing.T) {
	_, err := Parse("[a:b = 1] [c:d = 2]")
	assert.Error(t, err)

	parseErr, ok := err.(*ParseError)
	assert.True(t, ok)
	assert.Equal(t, tokenizer.OPENED_BRACKET, parseErr.Token.Type)
	assert.Contains(t, err.Error(), "expected")
}
