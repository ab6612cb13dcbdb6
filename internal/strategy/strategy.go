// Package strategy turns the computed metadata set into the final version
// string. The strategy set is closed (maven, pattern, script) and is
// selected by name; adding one means updating the configuration validator
// as well.
package strategy

import (
	"strconv"

	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/metadata"
	"github.com/calcver/calcver/internal/semver"
)

// Strategy computes the final version string from the metadata provider.
// All strategies consume the same provider; the configuration decides which
// one runs.
type Strategy interface {
	// Name returns the configuration name of this strategy.
	Name() string

	// Compute produces the final version string.
	Compute(md *metadata.Provider, cfg *config.Configuration) (string, error)
}

// ForName returns the strategy implementation for a validated strategy name.
func ForName(name string) (Strategy, error) {
	switch name {
	case config.StrategyMaven:
		return &MavenStrategy{}, nil
	case config.StrategyPattern:
		return &PatternStrategy{}, nil
	case config.StrategyScript:
		return &ScriptStrategy{}, nil
	default:
		return nil, errs.Configuration("unknown strategy %q", name)
	}
}

// baseVersion reconstructs the base version triple from the provider.
func baseVersion(md *metadata.Provider) semver.Version {
	return semver.New(
		mdInt(md, metadata.CurrentVersionMajor),
		mdInt(md, metadata.CurrentVersionMinor),
		mdInt(md, metadata.CurrentVersionPatch),
	)
}

func mdInt(md *metadata.Provider, key metadata.Key) int64 {
	v, ok := md.Get(key)
	if !ok {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func mdBool(md *metadata.Provider, key metadata.Key) bool {
	v, _ := md.Get(key)
	return v == "true"
}

func mdString(md *metadata.Provider, key metadata.Key) string {
	v, _ := md.Get(key)
	return v
}
