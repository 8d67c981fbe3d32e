package publish

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/wickers-data/catalog/pkg/types"
)

// versionPattern accepts strict three-integer dotted versions. Only
// versions matching it participate in version arithmetic; malformed
// versions are ignored rather than rejected.
var versionPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// firstVersion seeds the sequence when no well-formed version exists.
const firstVersion = "1.0.0"

// parseVersion splits a well-formed major.minor.patch string.
func parseVersion(v string) (major, minor, patch int, ok bool) {
	if !versionPattern.MatchString(v) {
		return 0, 0, 0, false
	}
	parts := strings.Split(v, ".")
	major, _ = strconv.Atoi(parts[0])
	minor, _ = strconv.Atoi(parts[1])
	patch, _ = strconv.Atoi(parts[2])
	return major, minor, patch, true
}

// compareVersions orders two parsed versions numerically.
func compareVersions(a, b [3]int) int {
	for i := 0; i < 3; i++ {
		if a[i] != b[i] {
			if a[i] > b[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// NextVersion derives the version for a new snapshot: the patch component
// of the numerically highest well-formed version among existing snapshots,
// incremented. Defaults to 1.0.0 when no snapshots exist or none carry a
// well-formed version.
func NextVersion(existing []types.Snapshot) string {
	var highest [3]int
	found := false

	for _, s := range existing {
		major, minor, patch, ok := parseVersion(s.Version)
		if !ok {
			continue
		}
		v := [3]int{major, minor, patch}
		if !found || compareVersions(v, highest) > 0 {
			highest = v
			found = true
		}
	}

	if !found {
		return firstVersion
	}
	return fmt.Sprintf("%d.%d.%d", highest[0], highest[1], highest[2]+1)
}
