package matchup

import (
	"math"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/botlane/botlane/pkg/champion"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", name)
}

func buildFromBytes(t *testing.T, data string) *Repository {
	t.Helper()
	feed, err := ParseFeed([]byte(data))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	return build(feed)
}

func build(feed *RawFeed) *Repository {
	roster := champion.DefaultRoster()
	return Build(feed, champion.NewNormalizer(roster), champion.Names(roster.BotLaners()))
}

func mustValue(t *testing.T, s Signal) Value {
	t.Helper()
	v, ok := s.Get()
	if !ok {
		t.Fatal("expected signal to be present")
	}
	return v
}

func TestParseFeed_Testdata(t *testing.T) {
	feed, err := LoadFeed(testdataPath("feed.json"))
	if err != nil {
		t.Fatalf("LoadFeed: %v", err)
	}

	if feed.Patch != "14.20" {
		t.Errorf("Patch = %q, want 14.20", feed.Patch)
	}
	if len(feed.Version) != 12 {
		t.Errorf("Version = %q, want 12 hex chars", feed.Version)
	}
	if len(feed.Bottom) != 4 || len(feed.Support) != 3 {
		t.Errorf("sections = %d bottom / %d support, want 4 / 3", len(feed.Bottom), len(feed.Support))
	}

	// Lulu has no delta and Thresh has a string delta: both dropped.
	if got := len(feed.Bottom["kaisa"].CountersSupport); got != 3 {
		t.Errorf("kaisa counters.support = %d records, want 3", got)
	}
	if len(feed.Warnings) == 0 {
		t.Error("expected a warning for the skipped records")
	}
}

func TestBuild_Testdata(t *testing.T) {
	feed, err := LoadFeed(testdataPath("feed.json"))
	if err != nil {
		t.Fatalf("LoadFeed: %v", err)
	}
	repo := build(feed)

	kaisa, ok := repo.Bottom("Kai'Sa")
	if !ok {
		t.Fatal("expected a Kai'Sa profile keyed by canonical name")
	}
	if v := mustValue(t, kaisa.Synergy("Leona")); v.Delta != 4.0 || v.Games != 2000 {
		t.Errorf("Kai'Sa synergy with Leona = %+v, want {4 2000}", v)
	}
	if kaisa.Counter("Lulu").IsPresent() {
		t.Error("record without delta must be skipped, not zero-filled")
	}
	if v := mustValue(t, kaisa.Counter("Nautilus")); v.Delta != 0.8 {
		t.Errorf("Kai'Sa vs Nautilus = %+v, want delta 0.8", v)
	}

	// Seraphine is also a bottom-lane mage, so her counter record seeds enemyBottom.
	if v := mustValue(t, kaisa.EnemyBottom("Seraphine")); v.Delta != 2.5 {
		t.Errorf("inferred enemyBottom Seraphine = %+v, want delta 2.5", v)
	}
	if kaisa.EnemyBottom("Leona").IsPresent() {
		t.Error("Leona is not a bot laner and must not seed enemyBottom")
	}
	if v := mustValue(t, kaisa.EnemyBottom("Jinx")); v.Delta != 1.1 {
		t.Errorf("explicit enemyBottom Jinx = %+v, want delta 1.1", v)
	}

	if _, ok := repo.Bottom("Kog'Maw"); !ok {
		t.Error("expected KogMaw to resolve to Kog'Maw")
	}

	naut, ok := repo.Support("Nautilus")
	if !ok {
		t.Fatal("expected nautilus to resolve to Nautilus")
	}
	if v := mustValue(t, naut.SynergyBottom("Kai'Sa")); v.Games != 1500 {
		t.Errorf("Nautilus synergy with Kai'Sa = %+v, want 1500 games", v)
	}

	leona, _ := repo.Support("Leona")
	if v := mustValue(t, leona.VsBottom("Kai'Sa")); v.Delta != 0.5 {
		t.Errorf("Leona vs Kai'Sa = %+v, want delta 0.5", v)
	}
	if v := mustValue(t, leona.VsSupport("Lulu")); v.Delta != 1.0 {
		t.Errorf("Leona vs Lulu = %+v, want delta 1.0", v)
	}

	if repo.Patch != "14.20" || repo.Version != feed.Version {
		t.Errorf("repo meta = %q/%q", repo.Patch, repo.Version)
	}
}

func TestBuild_ExplicitBottomWinsOverInferred(t *testing.T) {
	repo := buildFromBytes(t, `{
		"bottom": {
			"Ezreal": {
				"counters": {
					"bottom":  [{"opponent": "Jinx", "delta": 1.0, "games": 10}],
					"support": [
						{"opponent": "Jinx", "delta": 9.0, "games": 99},
						{"opponent": "Ashe", "delta": 3.0, "games": 30},
						{"opponent": "Ashe", "delta": 4.0, "games": 40}
					]
				}
			}
		},
		"support": {}
	}`)

	ez, _ := repo.Bottom("Ezreal")
	if v := mustValue(t, ez.EnemyBottom("Jinx")); v.Delta != 1.0 {
		t.Errorf("enemyBottom Jinx = %+v, want explicit delta 1.0", v)
	}
	// First inferred write wins; the counters table keeps the last record.
	if v := mustValue(t, ez.EnemyBottom("Ashe")); v.Delta != 3.0 {
		t.Errorf("enemyBottom Ashe = %+v, want first inferred delta 3.0", v)
	}
	if v := mustValue(t, ez.Counter("Ashe")); v.Delta != 4.0 {
		t.Errorf("counters Ashe = %+v, want 4.0", v)
	}

	p, _ := repo.BottomProfile("Ezreal")
	for _, e := range p.EnemyBottom {
		if e.Name == "Jinx" && e.Inferred {
			t.Error("explicit Jinx entry reported as inferred")
		}
		if e.Name == "Ashe" && !e.Inferred {
			t.Error("Ashe entry should be reported as inferred")
		}
	}
}

func TestBuild_NameFallbacks(t *testing.T) {
	repo := buildFromBytes(t, `{
		"bottom": {
			"Vayne": {
				"counters": {"support": [{"ally": "Lulu", "delta": 1.5}]},
				"synergy":  {"support": [{"opponent": "Janna", "delta": 2.5, "games": -4}, {"delta": 1}]}
			}
		},
		"support": {
			"Janna": {
				"counters": {"support": [{"ally": "Lulu", "delta": 1.5}]},
				"synergy":  {"bottom": [{"opponent": "Vayne", "delta": 0.5, "games": 10}]}
			}
		}
	}`)

	vayne, _ := repo.Bottom("Vayne")
	if v := mustValue(t, vayne.Counter("Lulu")); v.Games != 0 {
		t.Errorf("missing games should default to 0, got %d", v.Games)
	}
	if v := mustValue(t, vayne.Synergy("Janna")); v.Games != 0 {
		t.Errorf("negative games should clamp to 0, got %d", v.Games)
	}
	if got := repo.Stats().BottomRecords; got != 2 {
		t.Errorf("BottomRecords = %d, want 2 (nameless record skipped)", got)
	}

	janna, _ := repo.Support("Janna")
	if janna.VsSupport("Lulu").IsPresent() {
		t.Error("support counters only read the opponent field")
	}
	if !janna.SynergyBottom("Vayne").IsPresent() {
		t.Error("support synergy falls back to the opponent field")
	}
}

func TestParseFeed_MalformedSections(t *testing.T) {
	feed, err := ParseFeed([]byte(`{"bottom": [1, 2], "support": {"Leona": 5, "Lulu": {"counters": []}}}`))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(feed.Bottom) != 0 {
		t.Errorf("malformed bottom section should be empty, got %d entries", len(feed.Bottom))
	}
	if _, ok := feed.Support["Leona"]; ok {
		t.Error("non-object entry should be skipped")
	}
	if _, ok := feed.Support["Lulu"]; !ok {
		t.Error("entry with a malformed group should survive with no records")
	}
	if len(feed.Warnings) < 3 {
		t.Errorf("expected warnings for every dropped part, got %v", feed.Warnings)
	}

	repo := build(feed)
	if s := repo.Stats(); s.BotLaners != 0 || s.SupportRecords != 0 {
		t.Errorf("Stats = %+v, want no bot laners and no support records", s)
	}
}

func TestParseFeed_GamesValues(t *testing.T) {
	feed, err := ParseFeed([]byte(`{"bottom": {"Jinx": {"synergy": {"support": [
		{"ally": "Leona", "delta": 3, "games": 1e19},
		{"ally": "Lulu", "delta": 2, "games": "100"},
		{"ally": "Janna", "delta": 1, "games": -40},
		{"ally": "Nami", "delta": 0.5, "games": null},
		{"ally": "Thresh", "games": 100}
	]}}}, "support": {}}`))
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}

	recs := feed.Bottom["Jinx"].SynergySupport
	tests := []struct {
		ally  string
		games int
	}{
		{"Leona", math.MaxInt},
		{"Lulu", 0},
		{"Janna", 0},
		{"Nami", 0},
	}
	if len(recs) != len(tests) {
		t.Fatalf("got %d records, want %d (only the delta-less one dropped)", len(recs), len(tests))
	}
	for i, tt := range tests {
		if recs[i].Ally != tt.ally || recs[i].Games != tt.games {
			t.Errorf("record %d = %s/%d games, want %s/%d", i, recs[i].Ally, recs[i].Games, tt.ally, tt.games)
		}
		if recs[i].Games < 0 {
			t.Errorf("%s: negative games %d", recs[i].Ally, recs[i].Games)
		}
	}
	if len(feed.Warnings) != 2 {
		t.Errorf("expected one warning for the dropped record and one for unreadable games, got %v", feed.Warnings)
	}
}

func TestParseFeed_NotAnObject(t *testing.T) {
	for _, doc := range []string{`[]`, `"feed"`, `{`} {
		if _, err := ParseFeed([]byte(doc)); err == nil {
			t.Errorf("ParseFeed(%s): expected error", doc)
		}
	}
}

func TestMissingSectionIsEmpty(t *testing.T) {
	repo := buildFromBytes(t, `{"bottom": {"Jinx": {"synergy": {"support": [{"ally": "Lulu", "delta": 3, "games": 100}]}}}}`)
	if _, ok := repo.Support("Lulu"); ok {
		t.Error("missing support section must give an empty support map")
	}
	if _, ok := repo.Bottom("Jinx"); !ok {
		t.Error("bottom section should still load")
	}
}

func TestNilProfileAccessors(t *testing.T) {
	var b *BotLanerData
	var s *SupportData
	for _, sig := range []Signal{
		b.Counter("x"), b.Synergy("x"), b.EnemyBottom("x"),
		s.VsSupport("x"), s.VsBottom("x"), s.SynergyBottom("x"),
	} {
		if sig.IsPresent() {
			t.Error("nil profile must yield absent signals")
		}
	}
}

func TestSignalNegate(t *testing.T) {
	v := mustValue(t, Present(Value{Delta: 2, Games: 5}).Negate())
	if v.Delta != -2 || v.Games != 5 {
		t.Errorf("Negate = %+v, want {-2 5}", v)
	}
	if Absent().Negate().IsPresent() {
		t.Error("negated absent signal must stay absent")
	}
}
