package changelog

import (
	"reflect"
	"testing"

	"github.com/umanai/uman-changelog/internal/models"
)

func commitsFromMessages(messages ...string) []models.CommitRecord {
	var commits []models.CommitRecord
	for i, m := range messages {
		commits = append(commits, models.CommitRecord{SHA: string(rune('a' + i)), Message: m})
	}
	return commits
}

func TestExtractorMergeMode(t *testing.T) {
	e := NewExtractor(ExtractMerges, "umanai/development")

	t.Run("extracts numbers in first-occurrence order", func(t *testing.T) {
		refs := e.Refs(commitsFromMessages(
			"Merge pull request #7 from umanai/fix-login\n\nFix login",
			"Regular commit without a reference",
			"Merge pull request #3 from umanai/add-export\n\nAdd export",
		))
		if !reflect.DeepEqual(refs, []int{7, 3}) {
			t.Fatalf("unexpected refs: %v", refs)
		}
	})

	t.Run("collapses duplicate references", func(t *testing.T) {
		refs := e.Refs(commitsFromMessages(
			"Merge pull request #12 from umanai/feature",
			"Merge pull request #12 from umanai/feature",
		))
		if !reflect.DeepEqual(refs, []int{12}) {
			t.Fatalf("expected single ref 12, got %v", refs)
		}
	})

	t.Run("skips merges from the excluded source branch", func(t *testing.T) {
		refs := e.Refs(commitsFromMessages(
			"Merge pull request #12 from x/y",
			"Merge pull request #34 from umanai/development",
		))
		if !reflect.DeepEqual(refs, []int{12}) {
			t.Fatalf("expected {12}, got %v", refs)
		}
	})

	t.Run("excluded rule matches multi-line merge messages", func(t *testing.T) {
		refs := e.Refs(commitsFromMessages(
			"Merge pull request #34 from umanai/development\n\nRelease v1.2.0",
		))
		if len(refs) != 0 {
			t.Fatalf("expected no refs, got %v", refs)
		}
	})

	t.Run("similar branch names are not excluded", func(t *testing.T) {
		refs := e.Refs(commitsFromMessages(
			"Merge pull request #9 from umanai/development-tooling",
		))
		if !reflect.DeepEqual(refs, []int{9}) {
			t.Fatalf("expected {9}, got %v", refs)
		}
	})

	t.Run("ignores inline references in merge mode", func(t *testing.T) {
		refs := e.Refs(commitsFromMessages("Fix crash on resume (#55)"))
		if len(refs) != 0 {
			t.Fatalf("expected no refs, got %v", refs)
		}
	})

	t.Run("drops unparseable numbers silently", func(t *testing.T) {
		refs := e.Refs(commitsFromMessages(
			"Merge pull request #99999999999999999999 from umanai/huge",
			"Merge pull request #4 from umanai/ok",
		))
		if !reflect.DeepEqual(refs, []int{4}) {
			t.Fatalf("expected {4}, got %v", refs)
		}
	})
}

func TestExtractorInlineMode(t *testing.T) {
	e := NewExtractor(ExtractInline, "")

	refs := e.Refs(commitsFromMessages(
		"feat: add billing page (#101)",
		"chore: bump deps",
		"fix: handle empty cart (#87)",
		"docs: mention billing page (#101)",
	))
	if !reflect.DeepEqual(refs, []int{101, 87}) {
		t.Fatalf("unexpected refs: %v", refs)
	}
}

func TestExtractorNoExclusionConfigured(t *testing.T) {
	e := NewExtractor(ExtractMerges, "")

	refs := e.Refs(commitsFromMessages("Merge pull request #34 from umanai/development"))
	if !reflect.DeepEqual(refs, []int{34}) {
		t.Fatalf("expected {34} without an exclusion rule, got %v", refs)
	}
}
