package parser

import (
	pc "github.com/shibukawa/parsercombinator"
	"github.com/stixkit/stixpat/tokenizer"
)

// entity wraps a tokenizer token for the combinator step.
type entity struct {
	original tokenizer.Token
}

func tokensToEntities(tokens []tokenizer.Token) []pc.Token[entity] {
	results := make([]pc.Token[entity], 0, len(tokens))
	for _, token := range tokens {
		if token.Type == tokenizer.EOF {
			continue
		}

		results = append(results, pc.Token[entity]{
			Type: "raw",
			Pos: &pc.Pos{
				Line:  token.Position.Line,
				Col:   token.Position.Column,
				Index: token.Position.Offset,
			},
			Val: entity{original: token},
			Raw: token.Value,
		})
	}

	return results
}

func primitiveType(name string, types ...tokenizer.TokenType) pc.Parser[entity] {
	return pc.Trace(name, func(pctx *pc.ParseContext[entity], tokens []pc.Token[entity]) (int, []pc.Token[entity], error) {
		if len(tokens) == 0 {
			return 0, nil, pc.ErrNotMatch
		}

		o := tokens[0].Val.original
		for _, tokenType := range types {
			if o.Type == tokenType {
				return 1, []pc.Token[entity]{{Type: name, Pos: tokens[0].Pos, Val: entity{original: o}, Raw: o.Value}}, nil
			}
		}

		return 0, nil, pc.ErrNotMatch
	})
}

// qualifierParser recognizes START TIMESTAMP STOP TIMESTAMP.
func qualifierParser() pc.Parser[entity] {
	return pc.Seq(
		primitiveType("start", tokenizer.START),
		primitiveType("timestamp", tokenizer.TIMESTAMP),
		primitiveType("stop", tokenizer.STOP),
		primitiveType("timestamp", tokenizer.TIMESTAMP),
	)
}

// splitQualifier detaches the optional trailing time-window qualifier from
// the token stream. The grammar permits the qualifier once, at the very end
// of the whole pattern; a START keyword anywhere else is a parse error.
func splitQualifier(tokens []tokenizer.Token) ([]tokenizer.Token, *Qualifier, error) {
	startIndex := -1
	for i, token := range tokens {
		if token.Type == tokenizer.START {
			startIndex = i
			break
		}
	}

	if startIndex == -1 {
		return tokens, nil, nil
	}

	entities := tokensToEntities(tokens[startIndex:])
	pctx := pc.NewParseContext[entity]()

	consumed, parsed, err := qualifierParser()(pctx, entities)
	if err != nil {
		return nil, nil, &ParseError{
			Token:    tokens[startIndex],
			Expected: []string{"time-window qualifier (START t'...' STOP t'...')"},
		}
	}

	if consumed != len(entities) {
		return nil, nil, &ParseError{
			Token:    tokens[startIndex+consumed],
			Expected: []string{"end of pattern"},
		}
	}

	qualifier := &Qualifier{
		Start: TimestampLiteral{Value: parsed[1].Val.original.Value, Position: parsed[1].Val.original.Position},
		Stop:  TimestampLiteral{Value: parsed[3].Val.original.Value, Position: parsed[3].Val.original.Position},
	}

	return tokens[:startIndex], qualifier, nil
}
