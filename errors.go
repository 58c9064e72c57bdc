package stixpat

import "errors"

// Common errors used throughout the stixpat package
var (
	// ErrPatternSyntax wraps any lexical or grammatical failure so callers can
	// detect "this pattern string is broken" with a single errors.Is check.
	ErrPatternSyntax = errors.New("invalid pattern syntax")

	// ErrConfigValidation is returned when configuration validation fails.
	ErrConfigValidation = errors.New("configuration validation failed")
)
