package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/stixkit/stixpat/parser"
)

// FormatCmd represents the format command
type FormatCmd struct {
	Pattern string `arg:"" optional:"" help:"Pattern string (default: stdin)"`
}

// Run parses a pattern and prints its canonical form.
func (cmd *FormatCmd) Run(ctx *Context) error {
	source := cmd.Pattern
	if source == "" {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		source = string(input)
	}

	if strings.TrimSpace(source) == "" {
		return ErrNoInput
	}

	pattern, err := parser.Parse(source)
	if err != nil {
		return err
	}

	fmt.Println(pattern)

	return nil
}
