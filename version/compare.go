package version

import (
	"cmp"
	"fmt"
	"strconv"
	"strings"
)

type semver struct {
	core       [3]int
	prerelease string
}

func parseSemver(s string) (semver, error) {
	var v semver

	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	s, _, _ = strings.Cut(s, "+")
	s, v.prerelease, _ = strings.Cut(s, "-")

	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return v, fmt.Errorf("invalid version %q", s)
	}

	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return v, fmt.Errorf("invalid version %q", s)
		}
		v.core[i] = n
	}

	return v, nil
}

// Compare orders two semantic versions, ignoring a leading "v" and build metadata.
// A pre-release sorts before its release, so 1.2.0-rc.1 < 1.2.0.
// Returns 1 if a > b, -1 if a < b, and 0 if equal.
func Compare(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, err
	}

	bv, err := parseSemver(b)
	if err != nil {
		return 0, err
	}

	for i := range av.core {
		if c := cmp.Compare(av.core[i], bv.core[i]); c != 0 {
			return c, nil
		}
	}

	switch {
	case av.prerelease == bv.prerelease:
		return 0, nil
	case av.prerelease == "":
		return 1, nil
	case bv.prerelease == "":
		return -1, nil
	default:
		return cmp.Compare(av.prerelease, bv.prerelease), nil
	}
}
