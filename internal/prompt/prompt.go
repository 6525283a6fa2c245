package prompt

import (
	"fmt"
	"strings"
)

// BuildSummaryPrompt formats the impact context for the model.
func BuildSummaryPrompt(releaseName, context string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Write the client impact summary for release %s.\n\n", releaseName)
	b.WriteString("You are writing for customers, not for engineers.\n")
	b.WriteString("Summarize what changed for them in plain language, one short bullet per change.\n")
	b.WriteString("Lead with user-visible behavior; mention performance or reliability only when users would notice.\n")
	b.WriteString("Do NOT mention file names, internal service names, or pull request numbers.\n")
	b.WriteString("Output markdown bullets only, with no heading and no preamble.\n\n")

	b.WriteString("Pull requests in this release:\n\n")
	b.WriteString(context)
	return b.String()
}
