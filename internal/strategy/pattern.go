package strategy

import (
	"regexp"
	"strings"

	"github.com/calcver/calcver/internal/config"
	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/metadata"
)

// placeholderRegex recognizes ${token} placeholders in version patterns.
var placeholderRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

// shorthandTokens maps convenience tokens to metadata keys. Any other token
// must be spelled "meta.<KEY>".
var shorthandTokens = map[string]metadata.Key{
	"major":     metadata.CurrentVersionMajor,
	"minor":     metadata.CurrentVersionMinor,
	"patch":     metadata.CurrentVersionPatch,
	"distance":  metadata.CommitDistance,
	"sha":       metadata.GitSha1Full,
	"sha8":      metadata.GitSha1Abbreviated,
	"branch":    metadata.QualifiedBranchName,
	"dirty":     metadata.DirtyText,
	"timestamp": metadata.CommitTimestamp,
}

// PatternStrategy renders a configured template, substituting ${token}
// placeholders from the metadata set. The tag-version-pattern applies when
// HEAD carries the base tag, the version-pattern otherwise. Placeholders
// are resolved lazily: an unknown token fails the calculation, not the
// configuration load.
type PatternStrategy struct{}

func (s *PatternStrategy) Name() string { return config.StrategyPattern }

func (s *PatternStrategy) Compute(md *metadata.Provider, cfg *config.Configuration) (string, error) {
	template := cfg.VersionPattern
	if mdBool(md, metadata.BaseCommitOnHead) && cfg.TagVersionPattern != "" {
		template = cfg.TagVersionPattern
	}

	var resolveErr error
	out := placeholderRegex.ReplaceAllStringFunc(template, func(match string) string {
		token := placeholderRegex.FindStringSubmatch(match)[1]

		key, ok := shorthandTokens[token]
		if !ok {
			rest, hasPrefix := strings.CutPrefix(token, "meta.")
			if !hasPrefix || !metadata.Key(rest).Valid() {
				if resolveErr == nil {
					resolveErr = errs.Calculation("version pattern %q: unresolved placeholder ${%s}", template, token)
				}
				return match
			}
			key = metadata.Key(rest)
		}

		value, _ := md.Get(key)
		return value
	})
	if resolveErr != nil {
		return "", resolveErr
	}

	return out, nil
}
