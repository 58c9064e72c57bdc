// Package references extracts parameter references from parsed patterns so
// an external resolver can substitute concrete values.
package references

import (
	"github.com/stixkit/stixpat/parser"
)

type referenceKey struct {
	object string
	path   string
}

// Extract walks the AST in document order (depth-first, left to right) and
// returns every distinct reference value. The deduplication key is the
// (object, path) pair; the first occurrence determines position and later
// identical pairs are dropped. Extraction never fails: a pattern without
// references yields an empty result, and the AST is never mutated.
func Extract(pattern *parser.Pattern) []parser.Reference {
	e := &extractor{seen: make(map[referenceKey]struct{})}

	if pattern != nil && pattern.Observation != nil {
		e.walkObservation(pattern.Observation)
	}

	return e.refs
}

type extractor struct {
	seen map[referenceKey]struct{}
	refs []parser.Reference
}

func (e *extractor) walkObservation(expr parser.ObservationExpression) {
	switch node := expr.(type) {
	case *parser.ObservationGroup:
		if node.Expression != nil {
			e.walkComparisonExpression(node.Expression)
		}
	case *parser.ObservationCombination:
		e.walkObservation(node.Left)
		e.walkObservation(node.Right)
	}
}

func (e *extractor) walkComparisonExpression(expr parser.ComparisonExpression) {
	switch node := expr.(type) {
	case *parser.Comparison:
		if ref, ok := node.Value.(parser.Reference); ok {
			e.add(ref)
		}
	case *parser.ComparisonCombination:
		e.walkComparisonExpression(node.Left)
		e.walkComparisonExpression(node.Right)
	}
}

func (e *extractor) add(ref parser.Reference) {
	key := referenceKey{object: ref.Object, path: ref.Path}
	if _, ok := e.seen[key]; ok {
		return
	}

	e.seen[key] = struct{}{}
	e.refs = append(e.refs, ref)
}
