package script

import (
	"strconv"
	"strings"

	"github.com/calcver/calcver/internal/errs"
	"github.com/calcver/calcver/internal/semver"
)

// ParseOutput parses the script output grammar:
//
//	major;minor;patch[;qualifier]*
//
// Exactly the first three fields must be non-negative integers; any
// additional fields become ordered qualifiers appended verbatim, with empty
// fields dropped. Violations are calculation errors; there is no fallback
// value.
func ParseOutput(out string) (semver.Version, error) {
	fields := strings.Split(strings.TrimSpace(out), ";")
	if len(fields) < 3 {
		return semver.Version{}, errs.Calculation(
			"script output %q: want at least 3 fields (major;minor;patch), got %d", out, len(fields))
	}

	var parts [3]int64
	names := [3]string{"major", "minor", "patch"}
	for i := 0; i < 3; i++ {
		n, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 64)
		if err != nil || n < 0 {
			return semver.Version{}, errs.Calculation(
				"script output %q: %s field %q is not a non-negative integer", out, names[i], fields[i])
		}
		parts[i] = n
	}

	version := semver.New(parts[0], parts[1], parts[2])
	for _, q := range fields[3:] {
		version = version.WithQualifiers(strings.TrimSpace(q))
	}

	return version, nil
}
