package git

import (
	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/semver"
)

// RepositoryStore provides higher-level domain queries built on top of a
// Repository. It interprets raw git data in the context of semantic
// versioning.
type RepositoryStore struct {
	repo Repository
}

// NewRepositoryStore creates a new RepositoryStore wrapping the given Repository.
func NewRepositoryStore(repo Repository) *RepositoryStore {
	return &RepositoryStore{repo: repo}
}

// VersionTagsByCommit returns every tag that matches the given tag matcher,
// grouped by the SHA of the commit the tag (after peeling) points at.
// Non-matching tag names are skipped; a matching name with non-numeric
// groups is an error because the tag pattern was supposed to prevent it.
func (s *RepositoryStore) VersionTagsByCommit(matcher *semver.TagMatcher) (map[string][]VersionTag, error) {
	tags, err := s.repo.Tags()
	if err != nil {
		return nil, errs.RepositoryAccess("listing tags", err)
	}

	result := make(map[string][]VersionTag)
	for _, tag := range tags {
		ver, ok, err := matcher.Match(tag.Name.Friendly)
		if err != nil {
			return nil, errs.WrapConfiguration("matching tag "+tag.Name.Friendly, err)
		}
		if !ok {
			continue
		}

		commitSha, err := s.repo.PeelTagToCommit(tag)
		if err != nil {
			return nil, errs.RepositoryAccess("peeling tag "+tag.Name.Friendly, err)
		}

		result[commitSha] = append(result[commitSha], VersionTag{
			Tag:       tag,
			Version:   ver,
			CommitSha: commitSha,
		})
	}

	return result, nil
}

// TagsOnCommit returns all tags, version or not, whose peeled target is the
// given commit.
func (s *RepositoryStore) TagsOnCommit(sha string) ([]Tag, error) {
	tags, err := s.repo.Tags()
	if err != nil {
		return nil, errs.RepositoryAccess("listing tags", err)
	}

	var result []Tag
	for _, tag := range tags {
		commitSha, err := s.repo.PeelTagToCommit(tag)
		if err != nil {
			return nil, errs.RepositoryAccess("peeling tag "+tag.Name.Friendly, err)
		}
		if commitSha == sha {
			result = append(result, tag)
		}
	}

	return result, nil
}

// Commit loads a commit by SHA.
func (s *RepositoryStore) Commit(sha string) (Commit, error) {
	return s.repo.CommitFromSha(sha)
}

// Head returns the current HEAD branch.
func (s *RepositoryStore) Head() (Branch, error) {
	return s.repo.Head()
}

// UncommittedChanges returns the number of uncommitted changes.
func (s *RepositoryStore) UncommittedChanges() (int, error) {
	return s.repo.NumberOfUncommittedChanges()
}
