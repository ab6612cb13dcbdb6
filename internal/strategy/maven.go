package strategy

import (
	"strconv"

	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/metadata"
)

// snapshotQualifier replaces the whole qualifier chain when use-snapshot is
// set and the state is not a clean tagged HEAD.
const snapshotQualifier = "SNAPSHOT"

// MavenStrategy produces maven-like versions: a clean HEAD sitting on a
// version tag keeps the tag version verbatim; any other state appends the
// configured qualifiers (branch, distance, commit id, dirty marker,
// timestamp, in that order) or the SNAPSHOT suffix.
type MavenStrategy struct{}

func (s *MavenStrategy) Name() string { return config.StrategyMaven }

func (s *MavenStrategy) Compute(md *metadata.Provider, cfg *config.Configuration) (string, error) {
	base := baseVersion(md)
	distance := mdInt(md, metadata.CommitDistance)
	dirty := mdBool(md, metadata.Dirty)
	onHead := mdBool(md, metadata.BaseCommitOnHead)

	if onHead && distance == 0 && !dirty {
		return base.String(), nil
	}

	if cfg.AutoIncrementPatch && distance > 0 {
		base = base.IncrementPatch()
	}

	if cfg.UseSnapshot && (distance > 0 || dirty) {
		return base.WithQualifiers(snapshotQualifier).String(), nil
	}

	var qualifiers []string
	if q := mdString(md, metadata.QualifiedBranchName); q != "" {
		qualifiers = append(qualifiers, q)
	}
	if cfg.UseDistance {
		qualifiers = append(qualifiers, strconv.FormatInt(distance, 10))
	}
	if cfg.UseCommitID {
		sha := mdString(md, metadata.GitSha1Full)
		if len(sha) > cfg.CommitIDLength {
			sha = sha[:cfg.CommitIDLength]
		}
		if sha != "" {
			qualifiers = append(qualifiers, sha)
		}
	}
	if cfg.UseDirty && dirty {
		qualifiers = append(qualifiers, config.DirtyMarker)
	}
	if cfg.UseCommitTimestamp {
		if ts := mdString(md, metadata.CommitTimestamp); ts != "" {
			qualifiers = append(qualifiers, ts)
		}
	}

	return base.WithQualifiers(qualifiers...).String(), nil
}
