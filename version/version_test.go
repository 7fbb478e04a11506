package version

import "testing"

func TestGet(t *testing.T) {
	origVersion, origCommit, origBuild := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = origVersion, origCommit, origBuild })

	Version, GitCommit, BuildTime = "dev", "", ""
	if Get().IsRelease {
		t.Error("dev should not be a release")
	}

	Version, GitCommit, BuildTime = "1.4.0", "abcdef0123456", "2026-10-01T00:00:00Z"
	info := Get()
	if !info.IsRelease {
		t.Error("expected 1.4.0 to be a release")
	}
	if info.GitCommit != "abcdef0" {
		t.Errorf("expected short commit, got %q", info.GitCommit)
	}
	if info.BuildTime != "2026-10-01T00:00:00Z" {
		t.Errorf("expected ldflags build time to win, got %q", info.BuildTime)
	}
	if info.String() != "1.4.0 (abcdef0)" {
		t.Errorf("String() = %q", info.String())
	}
	if (Info{Version: "dev"}).String() != "dev" {
		t.Error("expected bare version without commit")
	}
}
