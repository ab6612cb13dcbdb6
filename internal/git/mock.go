package git

// Compile-time check that MockRepository implements Repository.
var _ Repository = (*MockRepository)(nil)

// MockRepository is a configurable mock implementation of Repository for
// testing. Each method is backed by a function field. If the function field
// is nil, the method returns sensible zero values.
type MockRepository struct {
	PathFunc                       func() string
	WorkingDirectoryFunc           func() string
	HeadFunc                       func() (Branch, error)
	CommitFromShaFunc              func(string) (Commit, error)
	TagsFunc                       func() ([]Tag, error)
	PeelTagToCommitFunc            func(Tag) (string, error)
	NumberOfUncommittedChangesFunc func() (int, error)
	CloseFunc                      func() error
}

func (m *MockRepository) Path() string {
	if m.PathFunc != nil {
		return m.PathFunc()
	}
	return ""
}

func (m *MockRepository) WorkingDirectory() string {
	if m.WorkingDirectoryFunc != nil {
		return m.WorkingDirectoryFunc()
	}
	return ""
}

func (m *MockRepository) Head() (Branch, error) {
	if m.HeadFunc != nil {
		return m.HeadFunc()
	}
	return Branch{}, nil
}

func (m *MockRepository) CommitFromSha(sha string) (Commit, error) {
	if m.CommitFromShaFunc != nil {
		return m.CommitFromShaFunc(sha)
	}
	return Commit{}, nil
}

func (m *MockRepository) Tags() ([]Tag, error) {
	if m.TagsFunc != nil {
		return m.TagsFunc()
	}
	return nil, nil
}

func (m *MockRepository) PeelTagToCommit(tag Tag) (string, error) {
	if m.PeelTagToCommitFunc != nil {
		return m.PeelTagToCommitFunc(tag)
	}
	return tag.TargetSha, nil
}

func (m *MockRepository) NumberOfUncommittedChanges() (int, error) {
	if m.NumberOfUncommittedChangesFunc != nil {
		return m.NumberOfUncommittedChangesFunc()
	}
	return 0, nil
}

func (m *MockRepository) Close() error {
	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}
