package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/stixkit/stixpat/parser"
	"github.com/stixkit/stixpat/references"
)

// RefsCmd represents the refs command
type RefsCmd struct {
	Pattern string `arg:"" optional:"" help:"Pattern string (default: stdin)"`
	Format  string `help:"Output format: text, json, or yaml (overrides config)"`
}

// referenceOutput is the serialized shape of one extracted reference.
type referenceOutput struct {
	Object string `json:"object" yaml:"object"`
	Path   string `json:"path" yaml:"path"`
}

// Run executes the refs command
func (cmd *RefsCmd) Run(ctx *Context) error {
	config, err := ctx.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

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

	refs := references.Extract(pattern)

	output := make([]referenceOutput, len(refs))
	for i, ref := range refs {
		output[i] = referenceOutput{Object: ref.Object, Path: ref.Path}
	}

	format := cmd.Format
	if format == "" {
		format = config.Output.Format
	}

	return renderReferences(os.Stdout, output, format)
}

func renderReferences(w io.Writer, refs []referenceOutput, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(refs)
	case "yaml":
		data, err := yaml.Marshal(refs)
		if err != nil {
			return fmt.Errorf("failed to marshal references: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		for _, ref := range refs {
			fmt.Fprintf(w, "%s\t%s\n", ref.Object, ref.Path)
		}
		return nil
	}
}
