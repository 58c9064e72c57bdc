// Package mdpattern extracts fenced pattern blocks from Markdown documents
// so whole documents of patterns can be linted in one pass.
package mdpattern

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Block is one fenced code block tagged as a pattern.
type Block struct {
	Source string // the pattern text
	Line   int    // 1-based line of the first pattern line in the document
}

// blockInfoTags are the fence info strings recognized as pattern blocks.
var blockInfoTags = map[string]bool{
	"pattern": true,
	"stix":    true,
}

// ExtractBlocks parses a Markdown document and returns every fenced code
// block tagged `pattern` or `stix`, in document order.
func ExtractBlocks(reader io.Reader) ([]Block, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
		),
	)

	doc := md.Parser().Parse(text.NewReader(content))

	var blocks []Block

	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		codeBlock, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		var info string
		if codeBlock.Info != nil {
			info = string(codeBlock.Info.Value(content))
		}

		if !blockInfoTags[strings.ToLower(strings.TrimSpace(info))] {
			return ast.WalkContinue, nil
		}

		lines := codeBlock.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}

		var builder strings.Builder
		for i := range lines.Len() {
			line := lines.At(i)
			builder.WriteString(strings.TrimRight(string(line.Value(content)), "\n"))
			builder.WriteString("\n")
		}

		blocks = append(blocks, Block{
			Source: strings.TrimSuffix(builder.String(), "\n"),
			Line:   lineNumber(content, lines.At(0).Start),
		})

		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk markdown document: %w", err)
	}

	return blocks, nil
}

func lineNumber(content []byte, offset int) int {
	if offset > len(content) {
		offset = len(content)
	}

	return bytes.Count(content[:offset], []byte("\n")) + 1
}
