package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/stixkit/stixpat"
	"github.com/stixkit/stixpat/mdpattern"
	"github.com/stixkit/stixpat/parser"
	"github.com/stixkit/stixpat/validator"
)

// LintCmd represents the lint command
type LintCmd struct {
	Files []string `arg:"" help:"Markdown files containing fenced pattern blocks"`
}

// Run validates every fenced pattern block of every given document.
func (cmd *LintCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	opts := validator.Options{StrictTimestamps: config.Validation.StrictTimestampsEnabled()}

	failed := false

	for _, filename := range cmd.Files {
		if !cmd.lintFile(ctx, filename, opts) {
			failed = true
		}
	}

	if failed {
		return ErrValidationFailed
	}

	return nil
}

func (cmd *LintCmd) lintFile(ctx *Context, filename string, opts validator.Options) bool {
	file, err := os.Open(filename)
	if err != nil {
		color.Red("%s: %v", filename, err)
		return false
	}
	defer file.Close()

	blocks, err := mdpattern.ExtractBlocks(file)
	if err != nil {
		color.Red("%s: %v", filename, err)
		return false
	}

	if ctx.Verbose {
		color.Blue("%s: %d pattern block(s)", filename, len(blocks))
	}

	ok := true

	for _, block := range blocks {
		pattern, err := parser.Parse(block.Source)
		if err != nil {
			color.Red("%s:%d: %v", filename, block.Line, fmt.Errorf("%w: %w", stixpat.ErrPatternSyntax, err))
			ok = false
			continue
		}

		if errs := validator.ValidateWithOptions(pattern, opts); len(errs) > 0 {
			for _, semErr := range errs {
				color.Red("%s:%d: %v", filename, block.Line, semErr)
			}
			ok = false
		}
	}

	if ok && !ctx.Quiet {
		color.Green("%s: OK", filename)
	}

	return ok
}
