// Package mergedoc rewrites machine-managed regions inside human-edited
// markdown bodies (release descriptions, pull request descriptions).
package mergedoc

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// StartMarker opens the managed changelog section. Must match the
	// marker written by every deployed version of this tool, byte for byte.
	StartMarker = "<!-- START uman-changelog -->"
	// EndMarker closes the managed changelog section
	EndMarker = "<!-- END uman-changelog -->"
)

// ErrEndMarkerMissing reports a body that contains the START marker but no
// END marker after it. Such a document is never auto-repaired.
var ErrEndMarkerMissing = errors.New("mergedoc: START marker present without a matching END marker")

// Strategy is one way of installing a rendered block into a document body
type Strategy interface {
	// Merge returns the body with the block installed. The body outside
	// the managed region is preserved byte for byte.
	Merge(body, block string) (string, error)
}

// ReplaceDelimitedSection swaps the lines strictly between the sentinel
// markers for the new block, appending a fresh delimited region when the
// body has none. Re-applying the same block is a no-op, so runs can repeat
// safely.
type ReplaceDelimitedSection struct{}

// Merge implements Strategy
func (ReplaceDelimitedSection) Merge(body, block string) (string, error) {
	lines := strings.Split(body, "\n")
	start, end := -1, -1
	for i, line := range lines {
		if start == -1 {
			if strings.Contains(line, StartMarker) {
				start = i
			}
			continue
		}
		if strings.Contains(line, EndMarker) {
			end = i
			break
		}
	}

	blockLines := strings.Split(strings.TrimRight(block, "\n"), "\n")

	if start == -1 {
		region := StartMarker + "\n" + strings.Join(blockLines, "\n") + "\n" + EndMarker
		if body == "" {
			return region, nil
		}
		return body + "\n" + region, nil
	}
	if end == -1 {
		return "", ErrEndMarkerMissing
	}

	out := make([]string, 0, start+1+len(blockLines)+len(lines)-end)
	out = append(out, lines[:start+1]...)
	out = append(out, blockLines...)
	out = append(out, lines[end:]...)
	return strings.Join(out, "\n"), nil
}

// PrependNewRegion pushes a collapsible details region onto the very top of
// the body. It deliberately does NOT replace earlier regions: every
// application adds one more, preserving the history of generated summaries.
type PrependNewRegion struct {
	// Heading is the visible summary line of the collapsed region
	Heading string
}

// Merge implements Strategy
func (p PrependNewRegion) Merge(body, block string) (string, error) {
	heading := p.Heading
	if heading == "" {
		heading = "AI-generated impact summary"
	}

	var b strings.Builder
	b.WriteString("<details>\n")
	b.WriteString("<summary>" + heading + "</summary>\n\n")
	b.WriteString(strings.TrimRight(block, "\n"))
	b.WriteString("\n</details>\n")
	if body != "" {
		b.WriteString("\n")
		b.WriteString(body)
	}
	return b.String(), nil
}

// ParseStrategy maps a flag value to a Strategy. The heading only applies
// to the prepend strategy.
func ParseStrategy(name, heading string) (Strategy, error) {
	switch name {
	case "section":
		return ReplaceDelimitedSection{}, nil
	case "prepend":
		return PrependNewRegion{Heading: heading}, nil
	default:
		return nil, fmt.Errorf("unknown merge strategy %q (want section or prepend)", name)
	}
}
