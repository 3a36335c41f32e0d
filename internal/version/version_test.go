package version

import (
	"strings"
	"testing"
)

func TestVersionHasDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
	// The colored default still spells out the semantic version.
	for _, part := range []string{"0", "1", "-dev"} {
		if !strings.Contains(Version, part) {
			t.Errorf("Version %q missing %q", Version, part)
		}
	}
}

func TestBuildMetadataOverridable(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() {
		GitCommit, BuildDate = origCommit, origDate
	}()

	// Simulates build-time -ldflags overrides.
	GitCommit = "abc123def456"
	BuildDate = "2026-08-26T10:30:00Z"
	if GitCommit != "abc123def456" || BuildDate != "2026-08-26T10:30:00Z" {
		t.Errorf("override lost: commit=%q date=%q", GitCommit, BuildDate)
	}
}
