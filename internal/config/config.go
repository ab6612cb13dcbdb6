// Package config provides the flat calculation configuration, YAML loading,
// eager validation, and the branching policy engine.
package config

import (
	"go.uber.org/multierr"

	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/semver"
)

// Strategy names accepted by the "strategy" option. The set is closed:
// adding a strategy means updating Validate and the strategy dispatch.
const (
	StrategyMaven   = "maven"
	StrategyPattern = "pattern"
	StrategyScript  = "script"
)

// Lookup policies for breaking ties between tags found at the same minimal
// distance.
const (
	// LookupPolicyMax picks the numerically greatest version, ties broken
	// by lexicographic raw tag name.
	LookupPolicyMax = "max"
	// LookupPolicyName picks the lexicographically smallest raw tag name.
	LookupPolicyName = "name"
)

// Script kinds accepted by the "script-kind" option.
const (
	ScriptKindExpr = "expr"
	ScriptKindJS   = "js"
)

// DirtyMarker is the qualifier appended when the working tree has
// uncommitted changes and use-dirty is set.
const DirtyMarker = "dirty"

// MaxSearchDepthNone disables the traversal depth cap.
const MaxSearchDepthNone = 0

// Configuration is the flat set of recognized options for one calculation.
// It is immutable for the lifetime of a calculation and validated eagerly
// before any repository access.
type Configuration struct {
	Strategy     string `yaml:"strategy"`
	TagPattern   string `yaml:"tag-pattern"`
	LookupPolicy string `yaml:"lookup-policy"`

	AutoIncrementPatch bool `yaml:"auto-increment-patch"`
	UseDistance        bool `yaml:"use-distance"`
	UseDirty           bool `yaml:"use-dirty"`
	UseSnapshot        bool `yaml:"use-snapshot"`
	UseCommitTimestamp bool `yaml:"use-commit-timestamp"`
	UseCommitID        bool `yaml:"use-commit-id"`
	CommitIDLength     int  `yaml:"commit-id-length"`
	FailIfDirty        bool `yaml:"fail-if-dirty"`

	// MaxSearchDepth caps the backward traversal. Zero means no cap.
	MaxSearchDepth int `yaml:"max-search-depth"`

	UseDefaultBranchingPolicy bool           `yaml:"use-default-branching-policy"`
	NonQualifierBranches      []string       `yaml:"non-qualifier-branches"`
	BranchPolicies            []BranchPolicy `yaml:"branch-policies"`

	VersionPattern    string `yaml:"version-pattern"`
	TagVersionPattern string `yaml:"tag-version-pattern"`

	Script     string `yaml:"script"`
	ScriptKind string `yaml:"script-kind"`
}

// Default returns the configuration used when nothing is supplied: maven
// strategy, distance and dirty qualifiers on, default branching policy on,
// uncapped search.
func Default() *Configuration {
	return &Configuration{
		Strategy:                  StrategyMaven,
		TagPattern:                semver.DefaultTagPattern,
		LookupPolicy:              LookupPolicyMax,
		UseDistance:               true,
		UseDirty:                  true,
		CommitIDLength:            8,
		MaxSearchDepth:            MaxSearchDepthNone,
		UseDefaultBranchingPolicy: true,
		NonQualifierBranches:      []string{"master", "main", "HEAD"},
		ScriptKind:                ScriptKindExpr,
	}
}

// Validate checks the configuration for structural problems: unknown
// strategy or lookup-policy names, patterns that do not compile, a negative
// depth, or a script/strategy mismatch. All problems are reported together.
func (c *Configuration) Validate() error {
	var err error

	switch c.Strategy {
	case StrategyMaven, StrategyPattern, StrategyScript:
	default:
		err = multierr.Append(err, errs.Configuration("unknown strategy %q", c.Strategy))
	}

	switch c.LookupPolicy {
	case LookupPolicyMax, LookupPolicyName:
	default:
		err = multierr.Append(err, errs.Configuration("unknown lookup policy %q", c.LookupPolicy))
	}

	if _, mErr := semver.NewTagMatcher(c.TagPattern); mErr != nil {
		err = multierr.Append(err, errs.WrapConfiguration("invalid tag pattern", mErr))
	}

	if c.MaxSearchDepth < 0 {
		err = multierr.Append(err, errs.Configuration("max search depth must not be negative, got %d", c.MaxSearchDepth))
	}

	if c.UseCommitID && (c.CommitIDLength < 1 || c.CommitIDLength > 40) {
		err = multierr.Append(err, errs.Configuration("commit id length must be between 1 and 40, got %d", c.CommitIDLength))
	}

	switch c.Strategy {
	case StrategyScript:
		if c.Script == "" {
			err = multierr.Append(err, errs.Configuration("script strategy requires a script"))
		}
		switch c.ScriptKind {
		case ScriptKindExpr, ScriptKindJS:
		default:
			err = multierr.Append(err, errs.Configuration("unknown script kind %q", c.ScriptKind))
		}
	case StrategyPattern:
		if c.VersionPattern == "" {
			err = multierr.Append(err, errs.Configuration("pattern strategy requires a version pattern"))
		}
		if c.Script != "" {
			err = multierr.Append(err, errs.Configuration("script is set but strategy is %q", c.Strategy))
		}
	case StrategyMaven:
		if c.Script != "" {
			err = multierr.Append(err, errs.Configuration("script is set but strategy is %q", c.Strategy))
		}
	}

	for _, policy := range c.BranchPolicies {
		if pErr := policy.validate(); pErr != nil {
			err = multierr.Append(err, errs.WrapConfiguration(
				"branch policy "+policy.Pattern, pErr))
		}
	}

	return err
}
