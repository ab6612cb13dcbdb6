package testutil

import (
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
)

// MemRepo is an in-memory git repository for tests that never need to
// touch disk.
type MemRepo struct {
	t    testing.TB
	repo *gogit.Repository
	time time.Time
}

// NewMemRepo initializes a repository backed by in-memory storage and an
// in-memory worktree filesystem.
func NewMemRepo(t testing.TB) *MemRepo {
	t.Helper()

	repo, err := gogit.Init(memory.NewStorage(), memfs.New())
	if err != nil {
		t.Fatalf("initializing in-memory repo: %v", err)
	}

	return &MemRepo{
		t:    t,
		repo: repo,
		time: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// Repository returns the underlying go-git repository.
func (r *MemRepo) Repository() *gogit.Repository {
	return r.repo
}

// AddCommit writes a file and commits it, returning the commit SHA.
func (r *MemRepo) AddCommit(message string) string {
	r.t.Helper()
	r.time = r.time.Add(time.Minute)

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}

	filename := "file-" + r.time.Format("150405") + ".txt"
	if err := util.WriteFile(wt.Filesystem, filename, []byte(message), 0o644); err != nil {
		r.t.Fatalf("writing file: %v", err)
	}

	if _, err := wt.Add(filename); err != nil {
		r.t.Fatalf("staging file: %v", err)
	}

	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  r.time,
		},
	})
	if err != nil {
		r.t.Fatalf("committing: %v", err)
	}

	return hash.String()
}

// CreateTag creates a lightweight tag pointing at the given SHA.
func (r *MemRepo) CreateTag(name, sha string) {
	r.t.Helper()
	ref := plumbing.NewReferenceFromStrings("refs/tags/"+name, sha)
	if err := r.repo.Storer.SetReference(ref); err != nil {
		r.t.Fatalf("creating tag %s: %v", name, err)
	}
}

// CreateAnnotatedTag creates an annotated tag pointing at the given SHA.
func (r *MemRepo) CreateAnnotatedTag(name, sha, message string) {
	r.t.Helper()
	r.time = r.time.Add(time.Second)

	_, err := r.repo.CreateTag(name, plumbing.NewHash(sha), &gogit.CreateTagOptions{
		Tagger: &object.Signature{
			Name:  "Test",
			Email: "test@example.com",
			When:  r.time,
		},
		Message: message,
	})
	if err != nil {
		r.t.Fatalf("creating annotated tag %s: %v", name, err)
	}
}

// WriteFile writes an uncommitted file to the in-memory worktree, making
// it dirty.
func (r *MemRepo) WriteFile(name, content string) {
	r.t.Helper()

	wt, err := r.repo.Worktree()
	if err != nil {
		r.t.Fatalf("getting worktree: %v", err)
	}
	if err := util.WriteFile(wt.Filesystem, name, []byte(content), 0o644); err != nil {
		r.t.Fatalf("writing file %s: %v", name, err)
	}
}

// HeadSha returns the current HEAD commit SHA.
func (r *MemRepo) HeadSha() string {
	r.t.Helper()
	head, err := r.repo.Head()
	if err != nil {
		r.t.Fatalf("getting HEAD: %v", err)
	}
	return head.Hash().String()
}
