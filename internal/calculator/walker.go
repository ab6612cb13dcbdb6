package calculator

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/git"
)

// TraversalResult is the outcome of the nearest-tag search.
type TraversalResult struct {
	// BaseTag is the chosen tag, nil when no matching tag was reachable.
	BaseTag *git.VersionTag

	// Distance is the number of commits strictly between HEAD and the
	// chosen tagged ancestor along the shortest qualifying path, or the
	// depth at cutoff when no tag was found.
	Distance int

	// OnHead is true iff HEAD itself carries a matching tag.
	OnHead bool
}

// Walker performs the bounded breadth-first backward search from HEAD to
// the nearest tagged ancestor. The frontier advances one layer at a time so
// the first layer containing any tag is the minimal distance; a visited set
// keyed by SHA keeps merge diamonds from being re-queued.
type Walker struct {
	store        *git.RepositoryStore
	tagsByCommit map[string][]git.VersionTag
	maxDepth     int // 0 means uncapped
	lookupPolicy string
	log          zerolog.Logger
}

// NewWalker creates a Walker over the given pre-resolved tag index.
func NewWalker(store *git.RepositoryStore, tagsByCommit map[string][]git.VersionTag, cfg *config.Configuration, log zerolog.Logger) *Walker {
	return &Walker{
		store:        store,
		tagsByCommit: tagsByCommit,
		maxDepth:     cfg.MaxSearchDepth,
		lookupPolicy: cfg.LookupPolicy,
		log:          log,
	}
}

// Walk searches backward from head. Exhausting the graph or hitting the
// depth cap without a tag is not an error: the result carries a nil BaseTag
// and the depth reached, and the base version defaults to 0.0.0 upstream.
func (w *Walker) Walk(head git.Commit) (TraversalResult, error) {
	visited := map[string]struct{}{head.Sha: {}}
	frontier := []git.Commit{head}
	depth := 0

	for len(frontier) > 0 {
		var found []git.VersionTag
		for _, commit := range frontier {
			found = append(found, w.tagsByCommit[commit.Sha]...)
		}
		if len(found) > 0 {
			tag := w.selectTag(found)
			w.log.Debug().
				Str("tag", tag.RawName()).
				Int("distance", depth).
				Int("candidates", len(found)).
				Msg("nearest version tag selected")
			return TraversalResult{BaseTag: &tag, Distance: depth, OnHead: depth == 0}, nil
		}

		if w.maxDepth != config.MaxSearchDepthNone && depth >= w.maxDepth {
			w.log.Debug().Int("depth", depth).Msg("search depth cap reached without a tag")
			return TraversalResult{Distance: depth}, nil
		}

		var next []git.Commit
		for _, commit := range frontier {
			for _, parentSha := range commit.Parents {
				if _, seen := visited[parentSha]; seen {
					continue
				}
				visited[parentSha] = struct{}{}

				parent, err := w.store.Commit(parentSha)
				if err != nil {
					return TraversalResult{}, errs.RepositoryAccess("loading commit "+parentSha, err)
				}
				next = append(next, parent)
			}
		}

		if len(next) == 0 {
			w.log.Debug().Int("depth", depth).Msg("history exhausted without a tag")
			return TraversalResult{Distance: depth}, nil
		}

		frontier = next
		depth++
	}

	return TraversalResult{Distance: depth}, nil
}

// selectTag breaks ties among tags found at the same minimal distance using
// the configured lookup policy.
func (w *Walker) selectTag(tags []git.VersionTag) git.VersionTag {
	sorted := make([]git.VersionTag, len(tags))
	copy(sorted, tags)

	switch w.lookupPolicy {
	case config.LookupPolicyName:
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].RawName() < sorted[j].RawName()
		})
	default: // LookupPolicyMax
		sort.Slice(sorted, func(i, j int) bool {
			if cmp := sorted[i].Version.Compare(sorted[j].Version); cmp != 0 {
				return cmp > 0
			}
			return sorted[i].RawName() < sorted[j].RawName()
		})
	}

	return sorted[0]
}
