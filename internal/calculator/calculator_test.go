package calculator

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/git"
	"github.com/calcver/calcver/internal/metadata"
)

// fakeRepo assembles a MockRepository over a fixed graph, tag list and HEAD.
type fakeRepo struct {
	commits map[string]git.Commit
	tags    []git.Tag
	head    git.Branch
	changes int
}

func (f *fakeRepo) mock() *git.MockRepository {
	return &git.MockRepository{
		HeadFunc: func() (git.Branch, error) { return f.head, nil },
		CommitFromShaFunc: func(sha string) (git.Commit, error) {
			commit, ok := f.commits[sha]
			if !ok {
				return git.Commit{}, fmt.Errorf("commit %s not found", sha)
			}
			return commit, nil
		},
		TagsFunc:                       func() ([]git.Tag, error) { return f.tags, nil },
		NumberOfUncommittedChangesFunc: func() (int, error) { return f.changes, nil },
	}
}

// historyRepo builds the five-commit history used throughout:
//
//	A <- B <- C <- D <- E        (tags: B=1.0.0, D=2.0.0)
func historyRepo(headSha string) *fakeRepo {
	when := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	commits := map[string]git.Commit{
		"sha-a": {Sha: "sha-a", When: when},
		"sha-b": {Sha: "sha-b", Parents: []string{"sha-a"}, When: when},
		"sha-c": {Sha: "sha-c", Parents: []string{"sha-b"}, When: when},
		"sha-d": {Sha: "sha-d", Parents: []string{"sha-c"}, When: when},
		"sha-e": {Sha: "sha-e", Parents: []string{"sha-d"}, When: when},
	}
	tip := commits[headSha]
	return &fakeRepo{
		commits: commits,
		tags: []git.Tag{
			{Name: git.NewReferenceName("refs/tags/1.0.0"), TargetSha: "sha-b"},
			{Name: git.NewReferenceName("refs/tags/2.0.0"), TargetSha: "sha-d"},
		},
		head: git.Branch{Name: git.NewReferenceName("refs/heads/master"), Tip: &tip},
	}
}

func TestCalculator_ComputeVersion_History(t *testing.T) {
	tests := []struct {
		name string
		head string
		want string
	}{
		{"untagged root", "sha-a", "0.0.0-0"},
		{"on first tag", "sha-b", "1.0.0"},
		{"one past first tag", "sha-c", "1.0.0-1"},
		{"on second tag", "sha-d", "2.0.0"},
		{"one past second tag", "sha-e", "2.0.0-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc, err := New(historyRepo(tt.head).mock(), nil)
			require.NoError(t, err)

			version, err := calc.ComputeVersion()
			require.NoError(t, err)
			require.Equal(t, tt.want, version)
		})
	}
}

func TestCalculator_ComputeVersion_Memoized(t *testing.T) {
	repo := historyRepo("sha-e")
	mock := repo.mock()

	headCalls := 0
	inner := mock.HeadFunc
	mock.HeadFunc = func() (git.Branch, error) {
		headCalls++
		return inner()
	}

	calc, err := New(mock, nil)
	require.NoError(t, err)

	first, err := calc.ComputeVersion()
	require.NoError(t, err)
	second, err := calc.ComputeVersion()
	require.NoError(t, err)

	require.Equal(t, first, second)
	require.Equal(t, 1, headCalls, "pipeline must run exactly once")
}

func TestCalculator_New_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = "bogus"

	_, err := New(historyRepo("sha-e").mock(), cfg)
	var cfgErr *errs.ConfigurationError
	require.ErrorAs(t, err, &cfgErr, "validation happens before any repository access")
}

func TestCalculator_FailIfDirty(t *testing.T) {
	repo := historyRepo("sha-d")
	repo.changes = 3

	cfg := config.Default()
	cfg.FailIfDirty = true

	calc, err := New(repo.mock(), cfg)
	require.NoError(t, err)

	_, err = calc.ComputeVersion()
	var dirtyErr *errs.DirtyRepositoryError
	require.ErrorAs(t, err, &dirtyErr)
	require.Equal(t, 3, dirtyErr.Changes)
}

func TestCalculator_DirtyQualifier(t *testing.T) {
	repo := historyRepo("sha-d")
	repo.changes = 1

	calc, err := New(repo.mock(), nil)
	require.NoError(t, err)

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "2.0.0-0-dirty", version, "a dirty tagged HEAD loses verbatim treatment")
}

func TestCalculator_BranchQualifier(t *testing.T) {
	repo := historyRepo("sha-e")
	repo.head.Name = git.NewReferenceName("refs/heads/feature/login")

	calc, err := New(repo.mock(), nil)
	require.NoError(t, err)

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "2.0.0-featurelogin-1", version)
}

func TestCalculator_DetachedHead(t *testing.T) {
	repo := historyRepo("sha-e")
	repo.head.Name = git.NewReferenceName("HEAD")
	repo.head.IsDetachedHead = true

	calc, err := New(repo.mock(), nil)
	require.NoError(t, err)

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "2.0.0-1", version, "detached HEAD is a non-qualifier branch by default")

	v, ok := calc.Metadata(metadata.DetachedHead)
	require.True(t, ok)
	require.Equal(t, "true", v)
	v, ok = calc.Metadata(metadata.BranchName)
	require.True(t, ok)
	require.Equal(t, "HEAD", v)
}

func TestCalculator_Metadata(t *testing.T) {
	calc, err := New(historyRepo("sha-e").mock(), nil)
	require.NoError(t, err)

	// nothing is available before the computation ran
	_, ok := calc.Metadata(metadata.BaseTag)
	require.False(t, ok)
	require.Nil(t, calc.MetadataSnapshot())

	_, err = calc.ComputeVersion()
	require.NoError(t, err)

	tests := []struct {
		key  metadata.Key
		want string
	}{
		{metadata.CalculatedVersion, "2.0.0-1"},
		{metadata.BaseVersion, "2.0.0"},
		{metadata.BaseTag, "2.0.0"},
		{metadata.BaseTagType, "lightweight"},
		{metadata.BaseCommitOnHead, "false"},
		{metadata.CurrentVersionMajor, "2"},
		{metadata.CurrentVersionMinor, "0"},
		{metadata.CurrentVersionPatch, "0"},
		{metadata.NextMajorVersion, "3.0.0"},
		{metadata.NextMinorVersion, "2.1.0"},
		{metadata.NextPatchVersion, "2.0.1"},
		{metadata.CommitDistance, "1"},
		{metadata.Dirty, "false"},
		{metadata.DirtyText, ""},
		{metadata.BranchName, "master"},
		{metadata.QualifiedBranchName, ""},
		{metadata.DetachedHead, "false"},
		{metadata.GitSha1Full, "sha-e"},
		{metadata.CommitTimestamp, "20250101120000"},
		{metadata.CommitISOTimestamp, "2025-01-01T12:00:00Z"},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			v, ok := calc.Metadata(tt.key)
			require.True(t, ok)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestCalculator_Metadata_HeadTags(t *testing.T) {
	repo := historyRepo("sha-d")
	repo.tags = append(repo.tags, git.Tag{
		Name:      git.NewReferenceName("refs/tags/milestone"),
		TargetSha: "sha-d",
		Annotated: true,
	})

	calc, err := New(repo.mock(), nil)
	require.NoError(t, err)
	_, err = calc.ComputeVersion()
	require.NoError(t, err)

	v, ok := calc.Metadata(metadata.HeadTags)
	require.True(t, ok)
	require.Equal(t, "2.0.0,milestone", v)

	v, ok = calc.Metadata(metadata.HeadAnnotatedTags)
	require.True(t, ok)
	require.Equal(t, "milestone", v)

	v, ok = calc.Metadata(metadata.HeadLightweightTags)
	require.True(t, ok)
	require.Equal(t, "2.0.0", v)
}

func TestCalculator_Metadata_BaseTagAbsent(t *testing.T) {
	repo := historyRepo("sha-a")

	calc, err := New(repo.mock(), nil)
	require.NoError(t, err)
	_, err = calc.ComputeVersion()
	require.NoError(t, err)

	_, ok := calc.Metadata(metadata.BaseTag)
	require.False(t, ok, "no tag was reachable")

	v, ok := calc.Metadata(metadata.BaseVersion)
	require.True(t, ok)
	require.Equal(t, "0.0.0", v)
}

func TestCalculator_PatternStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = config.StrategyPattern
	cfg.VersionPattern = "${major}.${minor}.${patch}+${distance}.${sha8}"

	calc, err := New(historyRepo("sha-e").mock(), cfg)
	require.NoError(t, err)

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "2.0.0+1.sha-e", version)
}

func TestCalculator_ScriptStrategy(t *testing.T) {
	cfg := config.Default()
	cfg.Strategy = config.StrategyScript
	cfg.Script = `metadata.CURRENT_VERSION_MAJOR + ";" + metadata.CURRENT_VERSION_MINOR + ";" + metadata.COMMIT_DISTANCE + ";build"`

	calc, err := New(historyRepo("sha-e").mock(), cfg)
	require.NoError(t, err)

	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "2.0.1-build", version)
}

func TestCalculator_MaxSearchDepth(t *testing.T) {
	cfg := config.Default()
	cfg.MaxSearchDepth = 1

	// nearest tag from sha-e is at distance 1, within the cap
	calc, err := New(historyRepo("sha-e").mock(), cfg)
	require.NoError(t, err)
	version, err := calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "2.0.0-1", version)

	// from sha-c the nearest tag is also at distance 1
	cfg2 := config.Default()
	cfg2.MaxSearchDepth = 1
	calc, err = New(historyRepo("sha-c").mock(), cfg2)
	require.NoError(t, err)
	version, err = calc.ComputeVersion()
	require.NoError(t, err)
	require.Equal(t, "1.0.0-1", version)
}

func TestCalculator_Close(t *testing.T) {
	closed := false
	mock := historyRepo("sha-e").mock()
	mock.CloseFunc = func() error {
		closed = true
		return nil
	}

	calc, err := New(mock, nil)
	require.NoError(t, err)
	require.NoError(t, calc.Close())
	require.True(t, closed)
}
