package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/stixkit/stixpat/cli"
)

// CLI represents the command-line interface
var CLI struct {
	Config  string `help:"Configuration file path" default:"stixpat.yaml"`
	Verbose bool   `help:"Enable verbose output" short:"v"`
	Quiet   bool   `help:"Suppress output" short:"q"`

	Validate cli.ValidateCmd `cmd:"" help:"Parse and validate patterns, reporting every diagnostic"`
	Refs     cli.RefsCmd     `cmd:"" help:"Extract parameter references from a pattern"`
	Format   cli.FormatCmd   `cmd:"" help:"Print the canonical form of a pattern"`
	Lint     cli.LintCmd     `cmd:"" help:"Validate fenced pattern blocks in Markdown documents"`
	Version  cli.VersionCmd  `cmd:"" help:"Show version information"`
}

func main() {
	ctx := kong.Parse(&CLI)

	appCtx := &cli.Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
	}

	err := ctx.Run(appCtx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
