// Package git provides the read-only repository access facade for version
// calculation. It defines concrete entity types (Commit, Branch, Tag), the
// Repository interface, and higher-level domain queries via RepositoryStore.
package git

import (
	"strings"
	"time"

	"github.com/calcver/calcver/internal/semver"
)

const (
	localBranchPrefix = "refs/heads/"
	tagRefPrefix      = "refs/tags/"
)

// Commit represents one commit in the repository graph.
type Commit struct {
	Sha     string
	Parents []string // parent SHAs; len > 1 means merge commit
	When    time.Time
	Message string
}

// IsMerge returns true if the commit has more than one parent.
func (c Commit) IsMerge() bool {
	return len(c.Parents) > 1
}

// ShortSha returns the first n characters of the SHA.
func (c Commit) ShortSha(n int) string {
	if n >= len(c.Sha) {
		return c.Sha
	}
	return c.Sha[:n]
}

// IsEmpty returns true if the commit has no SHA (zero value).
func (c Commit) IsEmpty() bool {
	return c.Sha == ""
}

// ReferenceName represents a git reference with canonical and friendly forms.
type ReferenceName struct {
	Canonical string // e.g., "refs/heads/main"
	Friendly  string // e.g., "main"
}

// NewReferenceName creates a ReferenceName from a canonical ref path.
func NewReferenceName(canonical string) ReferenceName {
	friendly := canonical
	switch {
	case strings.HasPrefix(canonical, localBranchPrefix):
		friendly = canonical[len(localBranchPrefix):]
	case strings.HasPrefix(canonical, tagRefPrefix):
		friendly = canonical[len(tagRefPrefix):]
	}
	return ReferenceName{Canonical: canonical, Friendly: friendly}
}

// IsBranch returns true if this reference is a local branch.
func (r ReferenceName) IsBranch() bool {
	return strings.HasPrefix(r.Canonical, localBranchPrefix)
}

// IsTag returns true if this reference is a tag.
func (r ReferenceName) IsTag() bool {
	return strings.HasPrefix(r.Canonical, tagRefPrefix)
}

// Branch represents the checked-out branch.
type Branch struct {
	Name           ReferenceName
	Tip            *Commit
	IsDetachedHead bool
}

// FriendlyName returns the friendly name of the branch. A detached HEAD
// reports "HEAD".
func (b Branch) FriendlyName() string {
	if b.IsDetachedHead {
		return "HEAD"
	}
	return b.Name.Friendly
}

// Tag represents a git tag. Annotated is resolved by the backend at listing
// time; TargetSha is the hash the ref points at (the tag object itself for
// annotated tags).
type Tag struct {
	Name      ReferenceName
	TargetSha string
	Annotated bool
}

// VersionTag is a tag whose name parsed as a version, bound to the commit
// it (possibly after peeling) points at.
type VersionTag struct {
	Tag       Tag
	Version   semver.Version
	CommitSha string
}

// RawName returns the friendly tag name as it appears in the repository.
func (vt VersionTag) RawName() string {
	return vt.Tag.Name.Friendly
}
