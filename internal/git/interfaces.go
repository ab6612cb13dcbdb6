package git

// Repository provides the low-level read-only git operations the engine
// needs. This is the key abstraction point for testing and backend
// swapping. All methods are fallible external calls whose failures are
// fatal for the current calculation; nothing is retried.
//
// Implementations are not required to be safe for concurrent use; callers
// that share one instance across calculators must provide that guarantee
// themselves.
type Repository interface {
	// Path returns the path to the .git directory.
	Path() string

	// WorkingDirectory returns the path to the working directory.
	WorkingDirectory() string

	// Head returns the current HEAD branch with its tip commit resolved.
	Head() (Branch, error)

	// CommitFromSha returns the commit with the given SHA.
	CommitFromSha(sha string) (Commit, error)

	// Tags returns all tags in the repository with Annotated resolved.
	Tags() ([]Tag, error)

	// PeelTagToCommit resolves a tag to its target commit SHA.
	// For lightweight tags, returns the target directly.
	// For annotated tags, peels through to the commit.
	PeelTagToCommit(tag Tag) (string, error)

	// NumberOfUncommittedChanges returns the count of uncommitted changes
	// in the working directory.
	NumberOfUncommittedChanges() (int, error)

	// Close releases the repository handle. Safe to call once on every
	// exit path; implementations with nothing to release return nil.
	Close() error
}
