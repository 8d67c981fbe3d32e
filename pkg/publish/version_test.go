package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wickers-data/catalog/pkg/types"
)

func snapshotsWithVersions(versions ...string) []types.Snapshot {
	out := make([]types.Snapshot, len(versions))
	for i, v := range versions {
		out[i] = types.Snapshot{Version: v}
	}
	return out
}

func TestNextVersion(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{name: "no snapshots", existing: nil, want: "1.0.0"},
		{name: "first increment", existing: []string{"1.0.0"}, want: "1.0.1"},
		{name: "highest wins regardless of order", existing: []string{"1.0.5", "1.0.2", "1.0.3"}, want: "1.0.6"},
		{name: "numeric not lexicographic", existing: []string{"1.0.9", "1.0.10"}, want: "1.0.11"},
		{name: "major dominates", existing: []string{"2.0.0", "1.9.9"}, want: "2.0.1"},
		{name: "minor dominates patch", existing: []string{"1.2.0", "1.1.99"}, want: "1.2.1"},
		{name: "malformed versions ignored", existing: []string{"abc", "1.0", "1.0.0-beta"}, want: "1.0.0"},
		{name: "malformed mixed with well-formed", existing: []string{"garbage", "1.0.3"}, want: "1.0.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextVersion(snapshotsWithVersions(tt.existing...))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextVersion_Monotonic(t *testing.T) {
	// Repeated publishing always produces a strictly higher version.
	var existing []types.Snapshot
	prev := [3]int{0, 0, 0}
	for i := 0; i < 5; i++ {
		v := NextVersion(existing)
		major, minor, patch, ok := parseVersion(v)
		assert.True(t, ok)
		cur := [3]int{major, minor, patch}
		assert.Equal(t, 1, compareVersions(cur, prev), "version %s did not increase", v)
		prev = cur
		existing = append(existing, types.Snapshot{Version: v})
	}
}
