package impact

import (
	"strings"

	"github.com/umanai/uman-changelog/internal/models"
)

// HasImpactLabel reports whether any of the labels contains any of the
// marker phrases, ignoring case.
func HasImpactLabel(labels, phrases []string) bool {
	for _, label := range labels {
		l := strings.ToLower(label)
		for _, phrase := range phrases {
			if phrase == "" {
				continue
			}
			if strings.Contains(l, strings.ToLower(phrase)) {
				return true
			}
		}
	}
	return false
}

// Filter returns the pull requests carrying an impact label, preserving
// input order. An empty result is a normal outcome, not an error.
func Filter(prs []models.PullRequestDetail, phrases []string) []models.PullRequestDetail {
	var matched []models.PullRequestDetail
	for _, pr := range prs {
		if HasImpactLabel(pr.Labels, phrases) {
			matched = append(matched, pr)
		}
	}
	return matched
}
