// Package calculator orchestrates the version computation pipeline:
// traversal, branch qualification, metadata assembly, and strategy
// evaluation.
package calculator

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/git"
	"github.com/calcver/calcver/internal/metadata"
	"github.com/calcver/calcver/internal/semver"
	"github.com/calcver/calcver/internal/strategy"
)

// commitTimestampFormat is the compact timestamp used as a version
// qualifier and for the COMMIT_TIMESTAMP metadata.
const commitTimestampFormat = "20060102150405"

// Calculator owns one version calculation over one repository handle. The
// computation runs once; repeated calls return the memoized result. Callers
// that need a fresh computation create a new instance.
type Calculator struct {
	repo  git.Repository
	store *git.RepositoryStore
	cfg   *config.Configuration
	log   zerolog.Logger

	once     sync.Once
	version  string
	provider *metadata.Provider
	err      error
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Calculator) { c.log = log }
}

// New creates a Calculator over an open repository. The configuration is
// validated here, before any repository access; nil means defaults.
func New(repo git.Repository, cfg *config.Configuration, opts ...Option) (*Calculator, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Calculator{
		repo:  repo,
		store: git.NewRepositoryStore(repo),
		cfg:   cfg,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ComputeVersion runs the pipeline once and returns the final version
// string. The result, error included, is memoized for the lifetime of the
// instance.
func (c *Calculator) ComputeVersion() (string, error) {
	c.once.Do(func() {
		c.version, c.provider, c.err = c.compute()
	})
	return c.version, c.err
}

// Metadata returns the named metadata value. Only meaningful after
// ComputeVersion has run; before that, and for keys not applicable to the
// current configuration, it reports ok=false.
func (c *Calculator) Metadata(key metadata.Key) (string, bool) {
	if c.provider == nil {
		return metadata.NotAvailable, false
	}
	return c.provider.Get(key)
}

// MetadataSnapshot resolves the full metadata set into a plain map. Empty
// until ComputeVersion has run.
func (c *Calculator) MetadataSnapshot() map[string]string {
	if c.provider == nil {
		return nil
	}
	return c.provider.Snapshot()
}

// Close releases the underlying repository handle.
func (c *Calculator) Close() error {
	return c.repo.Close()
}

func (c *Calculator) compute() (string, *metadata.Provider, error) {
	branch, err := c.store.Head()
	if err != nil {
		return "", nil, errs.RepositoryAccess("resolving HEAD", err)
	}
	if branch.Tip == nil {
		return "", nil, errs.RepositoryAccess("resolving HEAD", errors.New("branch has no tip commit"))
	}
	head := *branch.Tip

	changes, err := c.store.UncommittedChanges()
	if err != nil {
		return "", nil, errs.RepositoryAccess("checking working tree status", err)
	}
	dirty := changes > 0
	if dirty && c.cfg.FailIfDirty {
		return "", nil, &errs.DirtyRepositoryError{Changes: changes}
	}

	matcher, err := semver.NewTagMatcher(c.cfg.TagPattern)
	if err != nil {
		return "", nil, errs.WrapConfiguration("invalid tag pattern", err)
	}

	// Errors here are already classified by the store: repository reads
	// versus a tag pattern whose groups turned out non-numeric.
	tagsByCommit, err := c.store.VersionTagsByCommit(matcher)
	if err != nil {
		return "", nil, err
	}

	walker := NewWalker(c.store, tagsByCommit, c.cfg, c.log)
	traversal, err := walker.Walk(head)
	if err != nil {
		return "", nil, err
	}

	branchName := branch.FriendlyName()
	qualifier, err := config.QualifyBranch(branchName, c.cfg)
	if err != nil {
		return "", nil, errs.WrapConfiguration("qualifying branch "+branchName, err)
	}

	headTags, err := c.store.TagsOnCommit(head.Sha)
	if err != nil {
		return "", nil, err
	}

	provider := c.buildProvider(head, branch, traversal, qualifier, dirty, headTags)

	strat, err := strategy.ForName(c.cfg.Strategy)
	if err != nil {
		return "", nil, err
	}

	version, err := strat.Compute(provider, c.cfg)
	if err != nil {
		return "", nil, err
	}
	provider.Set(metadata.CalculatedVersion, version)

	c.log.Info().
		Str("strategy", strat.Name()).
		Str("version", version).
		Int("distance", traversal.Distance).
		Bool("dirty", dirty).
		Msg("version calculated")

	return version, provider, nil
}

// buildProvider registers every metadata key over the already-fetched raw
// data. Values are formatted lazily on first access and memoized.
func (c *Calculator) buildProvider(
	head git.Commit,
	branch git.Branch,
	traversal TraversalResult,
	qualifier string,
	dirty bool,
	headTags []git.Tag,
) *metadata.Provider {
	p := metadata.NewProvider()

	base := semver.New(0, 0, 0)
	if traversal.BaseTag != nil {
		base = traversal.BaseTag.Version

		tag := *traversal.BaseTag
		p.Register(metadata.BaseTag, func() string { return tag.RawName() })
		p.Register(metadata.BaseTagType, func() string {
			if tag.Tag.Annotated {
				return "annotated"
			}
			return "lightweight"
		})
	}

	p.Register(metadata.BaseVersion, func() string { return base.Base() })
	p.Register(metadata.BaseCommitOnHead, func() string { return strconv.FormatBool(traversal.OnHead) })

	p.Register(metadata.CurrentVersionMajor, func() string { return strconv.FormatInt(base.Major, 10) })
	p.Register(metadata.CurrentVersionMinor, func() string { return strconv.FormatInt(base.Minor, 10) })
	p.Register(metadata.CurrentVersionPatch, func() string { return strconv.FormatInt(base.Patch, 10) })

	p.Register(metadata.NextMajorVersion, func() string { return semver.New(base.Major+1, 0, 0).Base() })
	p.Register(metadata.NextMinorVersion, func() string { return semver.New(base.Major, base.Minor+1, 0).Base() })
	p.Register(metadata.NextPatchVersion, func() string { return semver.New(base.Major, base.Minor, base.Patch+1).Base() })

	p.Register(metadata.CommitDistance, func() string { return strconv.Itoa(traversal.Distance) })
	p.Register(metadata.Dirty, func() string { return strconv.FormatBool(dirty) })
	p.Register(metadata.DirtyText, func() string {
		if dirty {
			return config.DirtyMarker
		}
		return ""
	})

	p.Register(metadata.BranchName, func() string { return branch.FriendlyName() })
	p.Register(metadata.QualifiedBranchName, func() string { return qualifier })
	p.Register(metadata.DetachedHead, func() string { return strconv.FormatBool(branch.IsDetachedHead) })

	p.Register(metadata.GitSha1Full, func() string { return head.Sha })
	p.Register(metadata.GitSha1Abbreviated, func() string { return head.ShortSha(8) })
	p.Register(metadata.CommitTimestamp, func() string { return head.When.UTC().Format(commitTimestampFormat) })
	p.Register(metadata.CommitISOTimestamp, func() string { return head.When.UTC().Format(time.RFC3339) })

	p.Register(metadata.HeadTags, func() string { return joinTagNames(headTags, nil) })
	p.Register(metadata.HeadAnnotatedTags, func() string {
		annotated := true
		return joinTagNames(headTags, &annotated)
	})
	p.Register(metadata.HeadLightweightTags, func() string {
		annotated := false
		return joinTagNames(headTags, &annotated)
	})

	return p
}

// joinTagNames joins tag names with commas, optionally filtered on the
// annotated flag.
func joinTagNames(tags []git.Tag, annotated *bool) string {
	var names []string
	for _, tag := range tags {
		if annotated != nil && tag.Annotated != *annotated {
			continue
		}
		names = append(names, tag.Name.Friendly)
	}
	return strings.Join(names, ",")
}
