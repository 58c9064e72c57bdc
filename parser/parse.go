package parser

import (
	"github.com/stixkit/stixpat/tokenizer"
)

// Parse performs syntactic analysis of a pattern string and returns the AST.
// It is deterministic and stateless; concurrent calls are safe. Semantic
// rules (operator/value compatibility, calendar-valid timestamps, window
// ordering) are the validator's job.
func Parse(pattern string) (*Pattern, error) {
	t := tokenizer.NewPatternTokenizer(pattern, tokenizer.TokenizerOptions{SkipWhitespace: true})

	tokens, err := t.AllTokens()
	if err != nil {
		return nil, err
	}

	// Drop the trailing EOF marker; the parser synthesizes its own.
	if n := len(tokens); n > 0 && tokens[n-1].Type == tokenizer.EOF {
		tokens = tokens[:n-1]
	}

	body, qualifier, err := splitQualifier(tokens)
	if err != nil {
		return nil, err
	}

	p := &patternParser{tokens: body}

	observation, err := p.parseObservationOr()
	if err != nil {
		return nil, err
	}

	if p.pos != len(p.tokens) {
		return nil, p.fail("'AND'", "'OR'", "end of pattern")
	}

	return &Pattern{Observation: observation, Qualifier: qualifier}, nil
}
