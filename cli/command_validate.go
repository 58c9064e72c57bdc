package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/stixkit/stixpat"
	"github.com/stixkit/stixpat/parser"
	"github.com/stixkit/stixpat/validator"
)

// ValidateCmd represents the validate command
type ValidateCmd struct {
	Patterns []string `arg:"" optional:"" help:"Pattern strings to validate (default: one pattern from stdin)"`
}

// Run executes the validate command
func (cmd *ValidateCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	patterns := cmd.Patterns
	if len(patterns) == 0 {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		if strings.TrimSpace(string(input)) == "" {
			return ErrNoInput
		}
		patterns = []string{string(input)}
	}

	opts := validator.Options{StrictTimestamps: config.Validation.StrictTimestampsEnabled()}

	failed := false

	for _, source := range patterns {
		if !validateOne(source, opts, ctx.Quiet) {
			failed = true
		}
	}

	if failed {
		return ErrValidationFailed
	}

	return nil
}

// validateOne parses and validates a single pattern, printing every
// diagnostic rather than stopping at the first.
func validateOne(source string, opts validator.Options, quiet bool) bool {
	pattern, err := parser.Parse(source)
	if err != nil {
		color.Red("%v", fmt.Errorf("%w: %w", stixpat.ErrPatternSyntax, err))
		return false
	}

	errs := validator.ValidateWithOptions(pattern, opts)
	if len(errs) > 0 {
		for _, semErr := range errs {
			color.Red("%v", semErr)
		}
		return false
	}

	if !quiet {
		color.Green("OK: %s", pattern)
	}

	return true
}
