package changelog

import "strings"

// Table renders rows as a markdown table for the given mode.
// Returns "" for an empty row set so callers can treat it as a no-op.
func Table(mode TableMode, rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	if mode == ModeCommits {
		return commitTable(rows)
	}
	return prereleaseTable(rows)
}

func prereleaseTable(rows []Row) string {
	var b strings.Builder
	b.WriteString("| Change | Author |\n")
	b.WriteString("| --- | --- |\n")
	for _, r := range rows {
		b.WriteString("| " + escapeCell(r.Title) + " | " + escapeCell(r.Author) + " |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func commitTable(rows []Row) string {
	var b strings.Builder
	b.WriteString("| Commit | SHA | Author |\n")
	b.WriteString("| --- | --- | --- |\n")
	for _, r := range rows {
		b.WriteString("| " + escapeCell(r.Title) + " | " + r.SHA + " | " + escapeCell(r.Author) + " |\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// escapeCell keeps literal pipes in commit messages from breaking the table
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
