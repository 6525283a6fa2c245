// Package changelog turns raw commit lists into pull request references
// and changelog table rows.
package changelog

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/umanai/uman-changelog/internal/models"
)

// ExtractMode selects which message format yields pull request candidates
type ExtractMode int

const (
	// ExtractMerges matches platform merge commits ("Merge pull request #N from x/y")
	ExtractMerges ExtractMode = iota
	// ExtractInline matches squash and direct commits carrying "(#N)" anywhere
	ExtractInline
)

var (
	mergeRefPattern  = regexp.MustCompile(`^Merge pull request #(\d+)`)
	inlineRefPattern = regexp.MustCompile(`\(#(\d+)\)`)
)

// Extractor pulls unique pull request numbers out of an ordered commit list.
// Rules run in a fixed order per commit: the excluded-source rule first, then
// the mode's match rule. Output preserves first-occurrence order.
type Extractor struct {
	mode     ExtractMode
	excluded *regexp.Regexp
}

// NewExtractor creates an Extractor. excludedSource names a head branch
// (e.g. "umanai/development") whose merge commits never count as release-worthy;
// empty string disables the exclusion.
func NewExtractor(mode ExtractMode, excludedSource string) *Extractor {
	e := &Extractor{mode: mode}
	if excludedSource != "" {
		e.excluded = regexp.MustCompile(
			fmt.Sprintf(`^Merge pull request #\d+ from %s$`, regexp.QuoteMeta(excludedSource)),
		)
	}
	return e
}

// Refs returns the unique pull request numbers referenced by commits,
// in order of first appearance. Candidates that fail to parse are dropped
// silently, never fatally.
func (e *Extractor) Refs(commits []models.CommitRecord) []int {
	var refs []int
	seen := make(map[int]bool)

	for _, c := range commits {
		if e.isExcludedMerge(c) {
			continue
		}
		n, ok := e.candidate(c)
		if !ok || seen[n] {
			continue
		}
		seen[n] = true
		refs = append(refs, n)
	}

	return refs
}

// isExcludedMerge reports whether the commit is a merge from the excluded
// source branch. Matched against the first message line only, so multi-line
// merge messages with a trailing title still match.
func (e *Extractor) isExcludedMerge(c models.CommitRecord) bool {
	if e.excluded == nil {
		return false
	}
	return e.excluded.MatchString(c.FirstLine())
}

func (e *Extractor) candidate(c models.CommitRecord) (int, bool) {
	var match []string
	switch e.mode {
	case ExtractInline:
		match = inlineRefPattern.FindStringSubmatch(c.Message)
	default:
		match = mergeRefPattern.FindStringSubmatch(c.FirstLine())
	}
	if len(match) < 2 {
		return 0, false
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
