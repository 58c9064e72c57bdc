// Package cli implements the stixpat command set.
package cli

import (
	"errors"

	"github.com/stixkit/stixpat"
)

// Context represents the global context for commands
type Context struct {
	Config  string
	Verbose bool
	Quiet   bool
}

// Sentinel errors surfaced as non-zero exit codes
var (
	ErrValidationFailed = errors.New("one or more patterns failed validation")
	ErrNoInput          = errors.New("no pattern given (pass an argument or pipe stdin)")
)

// loadConfig loads the configuration named by the global --config flag.
func (ctx *Context) loadConfig() (*stixpat.Config, error) {
	return stixpat.LoadConfig(ctx.Config)
}
