package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestRenderReferencesText(t *testing.T) {
	refs := []referenceOutput{
		{Object: "Indicator", Path: "pattern_value"},
		{Object: "Watchlist", Path: "ips"},
	}

	var buf strings.Builder
	err := renderReferences(&buf, refs, "text")
	assert.NoError(t, err)

	assert.Equal(t, "Indicator\tpattern_value\nWatchlist\tips\n", buf.String())
}

func TestRenderReferencesJSON(t *testing.T) {
	refs := []referenceOutput{{Object: "Indicator", Path: "pattern_value"}}

	var buf strings.Builder
	err := renderReferences(&buf, refs, "json")
	assert.NoError(t, err)

	assert.Equal(t, "[\n  {\n    \"object\": \"Indicator\",\n    \"path\": \"pattern_value\"\n  }\n]\n", buf.String())
}

func TestRenderReferencesYAML(t *testing.T) {
	refs := []referenceOutput{{Object: "Indicator", Path: "pattern_value"}}

	var buf strings.Builder
	err := renderReferences(&buf, refs, "yaml")
	assert.NoError(t, err)

	assert.Equal(t, "- object: Indicator\n  path: pattern_value\n", buf.String())
}

func TestRenderReferencesEmpty(t *testing.T) {
	var buf strings.Builder
	err := renderReferences(&buf, nil, "text")
	assert.NoError(t, err)
	assert.Equal(t, "", buf.String())
}
