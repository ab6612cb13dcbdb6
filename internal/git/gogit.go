package git

import (
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Compile-time check that GoGitRepository implements Repository.
var _ Repository = (*GoGitRepository)(nil)

// GoGitRepository implements Repository using go-git.
type GoGitRepository struct {
	repo    *gogit.Repository
	path    string
	workDir string
}

// Open opens a git repository at the given path, walking up to the nearest
// .git directory.
func Open(path string) (*GoGitRepository, error) {
	r, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening git repository at %s: %w", path, err)
	}

	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()

	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

// Wrap adapts an already-open go-git repository. Useful for tests running
// against in-memory storage where there is no path to open.
func Wrap(r *gogit.Repository) (*GoGitRepository, error) {
	wt, err := r.Worktree()
	if err != nil {
		return nil, fmt.Errorf("getting worktree: %w", err)
	}

	root := wt.Filesystem.Root()

	return &GoGitRepository{
		repo:    r,
		path:    filepath.Join(root, ".git"),
		workDir: root,
	}, nil
}

func (r *GoGitRepository) Path() string {
	return r.path
}

func (r *GoGitRepository) WorkingDirectory() string {
	return r.workDir
}

func (r *GoGitRepository) Head() (Branch, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD: %w", err)
	}

	commit, err := r.commitFromHash(ref.Hash())
	if err != nil {
		return Branch{}, fmt.Errorf("getting HEAD commit: %w", err)
	}

	return Branch{
		Name:           NewReferenceName(string(ref.Name())),
		Tip:            &commit,
		IsDetachedHead: !ref.Name().IsBranch(),
	}, nil
}

func (r *GoGitRepository) CommitFromSha(sha string) (Commit, error) {
	return r.commitFromHash(plumbing.NewHash(sha))
}

func (r *GoGitRepository) Tags() ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		_, tagErr := r.repo.TagObject(ref.Hash())
		tags = append(tags, Tag{
			Name:      NewReferenceName(string(ref.Name())),
			TargetSha: ref.Hash().String(),
			Annotated: tagErr == nil,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	return tags, nil
}

func (r *GoGitRepository) PeelTagToCommit(tag Tag) (string, error) {
	hash := plumbing.NewHash(tag.TargetSha)

	// Annotated tags peel through (possibly nested) tag objects.
	tagObj, err := r.repo.TagObject(hash)
	if err == nil {
		commit, err := tagObj.Commit()
		if err != nil {
			return "", fmt.Errorf("peeling annotated tag %s: %w", tag.Name.Friendly, err)
		}
		return commit.Hash.String(), nil
	}

	// Lightweight tags must point directly at a commit.
	if _, err := r.repo.CommitObject(hash); err != nil {
		return "", fmt.Errorf("tag %s does not point to a commit: %w", tag.Name.Friendly, err)
	}

	return tag.TargetSha, nil
}

func (r *GoGitRepository) NumberOfUncommittedChanges() (int, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return 0, fmt.Errorf("getting worktree: %w", err)
	}

	status, err := wt.Status()
	if err != nil {
		return 0, fmt.Errorf("getting worktree status: %w", err)
	}

	count := 0
	for _, s := range status {
		if s.Staging != gogit.Unmodified || s.Worktree != gogit.Unmodified {
			count++
		}
	}

	return count, nil
}

// Close satisfies the facade's scoped-release contract. go-git holds no
// handle that outlives individual reads, so there is nothing to release.
func (r *GoGitRepository) Close() error {
	return nil
}

// commitFromHash loads a go-git commit and converts it to our Commit type.
func (r *GoGitRepository) commitFromHash(hash plumbing.Hash) (Commit, error) {
	c, err := r.repo.CommitObject(hash)
	if err != nil {
		return Commit{}, fmt.Errorf("loading commit %s: %w", hash.String(), err)
	}
	return convertCommit(c), nil
}

// convertCommit converts a go-git commit to our Commit type.
func convertCommit(c *object.Commit) Commit {
	parents := make([]string, 0, c.NumParents())
	for _, p := range c.ParentHashes {
		parents = append(parents, p.String())
	}

	return Commit{
		Sha:     c.Hash.String(),
		Parents: parents,
		When:    c.Committer.When,
		Message: c.Message,
	}
}
