package validator

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/stixkit/stixpat/parser"
)

func mustParse(t *testing.T, input string) *parser.Pattern {
	t.Helper()

	pattern, err := parser.Parse(input)
	assert.NoError(t, err)

	return pattern
}

func TestValidPatterns(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "simple equality", input: "[file:name = 'evil.exe']"},
		{name: "number comparison", input: "[file:size > 1024]"},
		{name: "in with list", input: "[a:b IN ('x', 'y')]"},
		{name: "not in with list", input: "[a:b NOT IN (1, 2)]"},
		{name: "like with string", input: "[url:value LIKE '%page/1%']"},
		{name: "matches with string", input: "[a:b MATCHES '^ev.l$']"},
		{name: "issubset with cidr string", input: "[ipv4-addr:value ISSUBSET '10.0.0.0/8']"},
		{name: "reference with simple operator", input: "[a:b = Indicator.pattern_value]"},
		{name: "reference with in", input: "[a:b IN Watchlist.values]"},
		{name: "reference with like", input: "[a:b LIKE Indicator.glob]"},
		{name: "reference with index selector", input: "[a:b = Conn.to_refs[0].value]"},
		{name: "qualifier window", input: "[a:b = 1] START t'2023-01-01T00:00:00Z' STOP t'2023-12-31T23:59:59Z'"},
		{name: "zero width window", input: "[a:b = 1] START t'2023-01-01T00:00:00Z' STOP t'2023-01-01T00:00:00Z'"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			errs := Validate(mustParse(t, test.input))
			assert.Equal(t, 0, len(errs))
		})
	}
}

func TestTypeMismatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "simple operator with list", input: "[a:b = ('x', 'y')]"},
		{name: "less than with list", input: "[a:b < (1, 2)]"},
		{name: "in with scalar string", input: "[a:b IN 'x']"},
		{name: "in with scalar number", input: "[a:b IN 5]"},
		{name: "like with number", input: "[a:b LIKE 5]"},
		{name: "like with list", input: "[a:b LIKE ('x')]"},
		{name: "matches with number", input: "[a:b MATCHES 5]"},
		{name: "issubset with list", input: "[a:b ISSUBSET ('10.0.0.0/8')]"},
		{name: "issuperset with number", input: "[a:b ISSUPERSET 5]"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			errs := Validate(mustParse(t, test.input))
			assert.Equal(t, 1, len(errs))
			assert.Equal(t, TypeMismatch, errs[0].Kind)
		})
	}
}

func TestAllViolationsCollected(t *testing.T) {
	errs := Validate(mustParse(t, "[a:b IN 'x' AND c:d = ('a', 'b') OR e:f LIKE 5]"))

	assert.Equal(t, 3, len(errs))
	for _, err := range errs {
		assert.Equal(t, TypeMismatch, err.Kind)
	}
}

func TestInvertedQualifierWindow(t *testing.T) {
	errs := Validate(mustParse(t, "[a:b = 1] START t'2024-01-02T00:00:00Z' STOP t'2024-01-01T00:00:00Z'"))

	assert.Equal(t, 1, len(errs))
	assert.Equal(t, InvertedQualifierWindow, errs[0].Kind)
}

func TestMalformedTimestamp(t *testing.T) {
	// Lexically valid digits, no such calendar day.
	errs := Validate(mustParse(t, "[a:b = 1] START t'2023-02-30T00:00:00Z' STOP t'2023-03-01T00:00:00Z'"))

	assert.Equal(t, 1, len(errs))
	assert.Equal(t, MalformedTimestamp, errs[0].Kind)
}

func TestLenientTimestamps(t *testing.T) {
	pattern := mustParse(t, "[a:b = 1] START t'2023-02-30T00:00:00Z' STOP t'2023-03-01T00:00:00Z'")

	errs := ValidateWithOptions(pattern, Options{StrictTimestamps: false})
	assert.Equal(t, 0, len(errs))
}

func TestEmptyPattern(t *testing.T) {
	tests := []struct {
		name    string
		pattern *parser.Pattern
	}{
		{name: "nil pattern", pattern: nil},
		{name: "nil observation", pattern: &parser.Pattern{}},
		{name: "group without comparisons", pattern: &parser.Pattern{Observation: &parser.ObservationGroup{}}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			errs := Validate(test.pattern)
			assert.Equal(t, 1, len(errs))
			assert.Equal(t, EmptyPattern, errs[0].Kind)
		})
	}
}

func TestMalformedPathOnHandBuiltAST(t *testing.T) {
	// The lexer rejects these shapes, so the defensive re-check only fires
	// on hand-constructed trees.
	pattern := &parser.Pattern{
		Observation: &parser.ObservationGroup{
			Expression: &parser.Comparison{
				Path:     parser.Path{Raw: "1bad:path"},
				Operator: parser.OpEqual,
				Value:    parser.StringLiteral{Value: "x"},
			},
		},
	}

	errs := Validate(pattern)
	assert.Equal(t, 1, len(errs))
	assert.Equal(t, MalformedPath, errs[0].Kind)
}

func TestMalformedReferenceOnHandBuiltAST(t *testing.T) {
	pattern := &parser.Pattern{
		Observation: &parser.ObservationGroup{
			Expression: &parser.Comparison{
				Path:     parser.Path{Raw: "a:b"},
				Operator: parser.OpEqual,
				Value:    parser.Reference{Object: "2bad", Path: "x..y"},
			},
		},
	}

	errs := Validate(pattern)
	assert.Equal(t, 2, len(errs))
	assert.Equal(t, MalformedPath, errs[0].Kind)
	assert.Equal(t, MalformedPath, errs[1].Kind)
}

func TestSemanticErrorMessage(t *testing.T) {
	errs := Validate(mustParse(t, "[a:b IN 'x']"))

	assert.Equal(t, 1, len(errs))
	assert.Contains(t, errs[0].Error(), "TypeMismatch")
	assert.Contains(t, errs[0].Error(), "IN")
}
