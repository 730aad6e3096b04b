package matchup

import (
	"math"
	"path/filepath"
	"testing"
)

func loadRepo(t *testing.T, name string) *Repository {
	t.Helper()
	feed, err := LoadFeed(testdataPath(name))
	if err != nil {
		t.Fatalf("LoadFeed(%s): %v", name, err)
	}
	return build(feed)
}

func TestComputeDiff_Testdata(t *testing.T) {
	base := loadRepo(t, "feed.json")
	head := loadRepo(t, "feed_next.json")

	diff := ComputeDiff(base, head, 0.5)

	if diff.ID == "" {
		t.Error("expected a diff id")
	}
	if diff.BasePatch != "14.20" || diff.HeadPatch != "14.21" {
		t.Errorf("patches = %q -> %q", diff.BasePatch, diff.HeadPatch)
	}

	// Only Milio synergy is new in head.
	if diff.Stats.AddedCount != 1 {
		t.Fatalf("AddedCount = %d, want 1: %+v", diff.Stats.AddedCount, diff.Added)
	}
	added := diff.Added[0]
	if added.Table != TableBottomSynergy || added.Champion != "Kai'Sa" || added.Other != "Milio" {
		t.Errorf("added = %+v", added)
	}

	// Leona counter moved from -1.2 to -0.2; the other common records moved
	// by less than 0.5 points.
	if diff.Stats.ShiftedCount != 1 {
		t.Fatalf("ShiftedCount = %d, want 1: %+v", diff.Stats.ShiftedCount, diff.Shifted)
	}
	sh := diff.Shifted[0]
	if sh.Other != "Leona" || sh.Table != TableBottomCounters || math.Abs(sh.Shift-1.0) > 1e-9 {
		t.Errorf("shifted = %+v", sh)
	}

	// Head has a malformed support section, so every support record is gone.
	supportRemoved := 0
	for _, c := range diff.Removed {
		if c.Table == TableSupportVsSupport || c.Table == TableSupportVsBottom || c.Table == TableSupportSynergyBottom {
			supportRemoved++
		}
	}
	if supportRemoved != base.Stats().SupportRecords {
		t.Errorf("removed support records = %d, want %d", supportRemoved, base.Stats().SupportRecords)
	}
	if diff.Stats.RemovedCount != len(diff.Removed) {
		t.Errorf("RemovedCount = %d, len(Removed) = %d", diff.Stats.RemovedCount, len(diff.Removed))
	}
}

func TestComputeDiff_Identical(t *testing.T) {
	base := loadRepo(t, "feed.json")
	diff := ComputeDiff(base, base, 0)
	if diff.Stats != (DiffStats{}) {
		t.Errorf("diff of a repository with itself = %+v, want empty", diff.Stats)
	}
}

func TestSaveLoadDiff(t *testing.T) {
	diff := ComputeDiff(loadRepo(t, "feed.json"), loadRepo(t, "feed_next.json"), 0.5)
	path := filepath.Join(t.TempDir(), "out", "diff.json")

	if err := SaveDiff(path, diff); err != nil {
		t.Fatalf("SaveDiff: %v", err)
	}
	got, err := LoadDiff(path)
	if err != nil {
		t.Fatalf("LoadDiff: %v", err)
	}
	if got.ID != diff.ID || got.Stats != diff.Stats {
		t.Errorf("LoadDiff = %s %+v, want %s %+v", got.ID, got.Stats, diff.ID, diff.Stats)
	}
}
