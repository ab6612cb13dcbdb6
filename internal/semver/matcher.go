package semver

import (
	"fmt"
	"regexp"
	"strconv"
)

// DefaultTagPattern matches plain and v-prefixed version tags such as
// "1.2.3", "v1.2.3" or "v1.2.3-rc1".
const DefaultTagPattern = `^v?(\d+)\.(\d+)\.(\d+)(?:[-.].*)?$`

// TagMatcher parses tag names against a configurable pattern whose first
// three capture groups carry major, minor and patch.
type TagMatcher struct {
	re *regexp.Regexp
}

// NewTagMatcher compiles the tag pattern. The pattern must contain at least
// three capture groups; the groups are presumed to match non-negative
// integers.
func NewTagMatcher(pattern string) (*TagMatcher, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling tag pattern %q: %w", pattern, err)
	}
	if re.NumSubexp() < 3 {
		return nil, fmt.Errorf("tag pattern %q must have at least 3 capture groups (major, minor, patch), has %d",
			pattern, re.NumSubexp())
	}
	return &TagMatcher{re: re}, nil
}

// Match parses a tag name into a Version. A name that does not match the
// pattern yields ok=false, since most repository tags are not version tags. A
// name that matches but whose capture groups are not non-negative integers
// is an error: the pattern was supposed to guarantee numeric groups.
func (m *TagMatcher) Match(name string) (Version, bool, error) {
	sub := m.re.FindStringSubmatch(name)
	if sub == nil {
		return Version{}, false, nil
	}

	var parts [3]int64
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseInt(sub[i+1], 10, 64)
		if err != nil || n < 0 {
			return Version{}, false, fmt.Errorf(
				"tag %q: capture group %d (%q) is not a non-negative integer", name, i+1, sub[i+1])
		}
		parts[i] = n
	}

	return New(parts[0], parts[1], parts[2]), true, nil
}

// Pattern returns the source pattern the matcher was compiled from.
func (m *TagMatcher) Pattern() string {
	return m.re.String()
}
