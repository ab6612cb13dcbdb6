package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Transformation names accepted in branch policies. The set is closed.
const (
	TransformReplaceRegex = "replace-regex"
	TransformStripPrefix  = "strip-prefix"
	TransformTruncate     = "truncate"
	TransformLowercase    = "lowercase"
	TransformUppercase    = "uppercase"
	TransformRemoveUnsafe = "remove-unsafe"
	TransformIgnore       = "ignore"
)

// defaultQualifierMaxLength bounds the qualifier produced by the default
// branching policy.
const defaultQualifierMaxLength = 63

// unsafeQualifierChars matches characters that are not safe inside a
// version string.
var unsafeQualifierChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// BranchPolicy maps branch names matching Pattern to a qualifier by running
// Transformations in order. Policies are evaluated top to bottom; the first
// pattern matching the full branch name wins.
type BranchPolicy struct {
	Pattern         string           `yaml:"pattern"`
	Transformations []Transformation `yaml:"transformations"`
}

// Transformation is one named, parameterized text operation.
type Transformation struct {
	Name        string `yaml:"name"`
	Pattern     string `yaml:"pattern,omitempty"`     // replace-regex
	Replacement string `yaml:"replacement,omitempty"` // replace-regex
	Prefix      string `yaml:"prefix,omitempty"`      // strip-prefix
	Length      int    `yaml:"length,omitempty"`      // truncate
}

func (p BranchPolicy) validate() error {
	if _, err := regexp.Compile(p.Pattern); err != nil {
		return fmt.Errorf("compiling pattern %q: %w", p.Pattern, err)
	}
	for _, t := range p.Transformations {
		if err := t.validate(); err != nil {
			return err
		}
	}
	return nil
}

func (t Transformation) validate() error {
	switch t.Name {
	case TransformReplaceRegex:
		if _, err := regexp.Compile(t.Pattern); err != nil {
			return fmt.Errorf("transformation %s: compiling pattern %q: %w", t.Name, t.Pattern, err)
		}
	case TransformStripPrefix:
		if t.Prefix == "" {
			return fmt.Errorf("transformation %s: prefix is required", t.Name)
		}
	case TransformTruncate:
		if t.Length < 1 {
			return fmt.Errorf("transformation %s: length must be positive, got %d", t.Name, t.Length)
		}
	case TransformLowercase, TransformUppercase, TransformRemoveUnsafe, TransformIgnore:
	default:
		return fmt.Errorf("unknown transformation %q", t.Name)
	}
	return nil
}

func (t Transformation) apply(s string) (string, error) {
	switch t.Name {
	case TransformReplaceRegex:
		re, err := regexp.Compile(t.Pattern)
		if err != nil {
			return "", fmt.Errorf("transformation %s: compiling pattern %q: %w", t.Name, t.Pattern, err)
		}
		return re.ReplaceAllString(s, t.Replacement), nil
	case TransformStripPrefix:
		return strings.TrimPrefix(s, t.Prefix), nil
	case TransformTruncate:
		if len(s) > t.Length {
			return s[:t.Length], nil
		}
		return s, nil
	case TransformLowercase:
		return strings.ToLower(s), nil
	case TransformUppercase:
		return strings.ToUpper(s), nil
	case TransformRemoveUnsafe:
		return unsafeQualifierChars.ReplaceAllString(s, ""), nil
	case TransformIgnore:
		return "", nil
	default:
		return "", fmt.Errorf("unknown transformation %q", t.Name)
	}
}

// QualifyBranch maps a branch name to a version qualifier. Non-qualifier
// branches contribute nothing. Explicit policies are first-match: the
// transformation sequence of the first pattern matching the full branch
// name runs and later policies are not tried. When nothing matches, the
// default policy (strip unsafe characters, truncate) applies if enabled;
// otherwise the qualifier is empty.
func QualifyBranch(branch string, cfg *Configuration) (string, error) {
	for _, nq := range cfg.NonQualifierBranches {
		if branch == nq {
			return "", nil
		}
	}

	for _, policy := range cfg.BranchPolicies {
		re, err := regexp.Compile("^(?:" + policy.Pattern + ")$")
		if err != nil {
			return "", fmt.Errorf("compiling branch policy pattern %q: %w", policy.Pattern, err)
		}
		if !re.MatchString(branch) {
			continue
		}

		qualifier := branch
		for _, t := range policy.Transformations {
			qualifier, err = t.apply(qualifier)
			if err != nil {
				return "", err
			}
		}
		return qualifier, nil
	}

	if cfg.UseDefaultBranchingPolicy {
		return defaultQualify(branch), nil
	}

	return "", nil
}

// defaultQualify strips characters unsafe for version strings and bounds
// the result length.
func defaultQualify(branch string) string {
	q := unsafeQualifierChars.ReplaceAllString(branch, "")
	if len(q) > defaultQualifierMaxLength {
		q = q[:defaultQualifierMaxLength]
	}
	return q
}
