package models

// Release represents a repository release
type Release struct {
	// ID is the platform identifier used for updates
	ID int64
	// TagName is the release tag (e.g. "v1.4.0")
	TagName string
	// Name is the human-readable release title
	Name string
	// Body is the release description markdown
	Body string
	// Draft reports whether the release is still unpublished
	Draft bool
	// TargetCommitish is the branch or SHA the release points at,
	// used as the comparison head while the tag does not exist yet
	TargetCommitish string
}

// Ref returns the comparison ref for this release: the tag when published,
// the target commitish while still a draft.
func (r Release) Ref() string {
	if r.Draft && r.TargetCommitish != "" {
		return r.TargetCommitish
	}
	return r.TagName
}

// Display returns the best human-readable identifier for the release
func (r Release) Display() string {
	if r.Name != "" {
		return r.Name
	}
	return r.TagName
}
