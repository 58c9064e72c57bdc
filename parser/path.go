package parser

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidPath indicates that a path string does not follow the segment
// grammar (letter-start names separated by '.' or ':', optional [index]
// selectors).
var ErrInvalidPath = errors.New("invalid object path")

// PathSegment is one step of a path: a name plus any integer index
// selectors that immediately follow it.
type PathSegment struct {
	Name    string
	Indexes []int
}

// ParsePathSegments splits a raw path into its ordered segments. Both '.'
// and ':' are accepted as segment separators.
func ParsePathSegments(raw string) ([]PathSegment, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	var segments []PathSegment

	pos := 0
	for {
		name, next, err := readSegmentName(raw, pos)
		if err != nil {
			return nil, err
		}

		segment := PathSegment{Name: name}

		pos = next
		for pos < len(raw) && raw[pos] == '[' {
			index, after, err := readIndexSelector(raw, pos)
			if err != nil {
				return nil, err
			}
			segment.Indexes = append(segment.Indexes, index)
			pos = after
		}

		segments = append(segments, segment)

		if pos >= len(raw) {
			return segments, nil
		}

		if raw[pos] != '.' && raw[pos] != ':' {
			return nil, fmt.Errorf("%w: unexpected %q at offset %d in %q", ErrInvalidPath, string(raw[pos]), pos, raw)
		}
		pos++
	}
}

func readSegmentName(raw string, pos int) (string, int, error) {
	start := pos
	if pos >= len(raw) || !isNameStart(raw[pos]) {
		return "", 0, fmt.Errorf("%w: expected name at offset %d in %q", ErrInvalidPath, pos, raw)
	}

	pos++
	for pos < len(raw) && isNamePart(raw[pos]) {
		pos++
	}

	return raw[start:pos], pos, nil
}

func readIndexSelector(raw string, pos int) (int, int, error) {
	pos++ // consume '['

	start := pos
	for pos < len(raw) && raw[pos] >= '0' && raw[pos] <= '9' {
		pos++
	}

	if pos == start || pos >= len(raw) || raw[pos] != ']' {
		return 0, 0, fmt.Errorf("%w: malformed index selector at offset %d in %q", ErrInvalidPath, start-1, raw)
	}

	index, err := strconv.Atoi(raw[start:pos])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrInvalidPath, err)
	}

	return index, pos + 1, nil
}

func isNameStart(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9') || c == '_' || c == '-'
}
