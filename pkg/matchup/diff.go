package matchup

import (
	"math"
	"sort"

	"github.com/google/uuid"
)

// Diff describes how the statistics changed between two repositories.
type Diff struct {
	ID          string    `json:"id"`
	BaseVersion string    `json:"base_version"`
	HeadVersion string    `json:"head_version"`
	BasePatch   string    `json:"base_patch,omitempty"`
	HeadPatch   string    `json:"head_patch,omitempty"`
	Added       []Change  `json:"added,omitempty"`
	Removed     []Change  `json:"removed,omitempty"`
	Shifted     []Change  `json:"shifted,omitempty"`
	Stats       DiffStats `json:"stats"`
}

// Change is one record that appeared, disappeared or moved.
type Change struct {
	Table    string  `json:"table"` // e.g. "bottom.synergy"
	Champion string  `json:"champion"`
	Other    string  `json:"other"`
	Base     *Value  `json:"base,omitempty"`
	Head     *Value  `json:"head,omitempty"`
	Shift    float64 `json:"shift,omitempty"` // head delta minus base delta
}

// DiffStats counts the changes of a Diff.
type DiffStats struct {
	AddedCount   int `json:"added_count"`
	RemovedCount int `json:"removed_count"`
	ShiftedCount int `json:"shifted_count"`
}

// Table names used in diffs and profiles.
const (
	TableBottomCounters       = "bottom.counters"
	TableBottomSynergy        = "bottom.synergy"
	TableBottomEnemyBottom    = "bottom.enemy_bottom"
	TableSupportVsSupport     = "support.vs_support"
	TableSupportVsBottom      = "support.vs_bottom"
	TableSupportSynergyBottom = "support.synergy_bottom"
)

type table map[string]map[string]Value

func (r *Repository) tables() map[string]table {
	out := map[string]table{
		TableBottomCounters:       {},
		TableBottomSynergy:        {},
		TableBottomEnemyBottom:    {},
		TableSupportVsSupport:     {},
		TableSupportVsBottom:      {},
		TableSupportSynergyBottom: {},
	}
	for name, d := range r.bottom {
		out[TableBottomCounters][name] = d.counters
		out[TableBottomSynergy][name] = d.synergy
		out[TableBottomEnemyBottom][name] = d.enemyBottom
	}
	for name, d := range r.support {
		out[TableSupportVsSupport][name] = d.vsSupport
		out[TableSupportVsBottom][name] = d.vsBottom
		out[TableSupportSynergyBottom][name] = d.synergyBottom
	}
	return out
}

// ComputeDiff compares two repositories record by record. A record present
// in both counts as shifted when its delta moved by at least minShift points.
func ComputeDiff(base, head *Repository, minShift float64) *Diff {
	diff := &Diff{
		ID:          uuid.New().String(),
		BaseVersion: base.Version,
		HeadVersion: head.Version,
		BasePatch:   base.Patch,
		HeadPatch:   head.Patch,
	}

	baseTables := base.tables()
	headTables := head.tables()

	for name, ht := range headTables {
		bt := baseTables[name]
		for champ, records := range ht {
			for other, hv := range records {
				hv := hv
				bv, ok := bt[champ][other]
				if !ok {
					diff.Added = append(diff.Added, Change{Table: name, Champion: champ, Other: other, Head: &hv})
					continue
				}
				shift := hv.Delta - bv.Delta
				if math.Abs(shift) >= minShift && shift != 0 {
					bv := bv
					diff.Shifted = append(diff.Shifted, Change{
						Table: name, Champion: champ, Other: other,
						Base: &bv, Head: &hv, Shift: shift,
					})
				}
			}
		}
	}
	for name, bt := range baseTables {
		ht := headTables[name]
		for champ, records := range bt {
			for other, bv := range records {
				if _, ok := ht[champ][other]; ok {
					continue
				}
				bv := bv
				diff.Removed = append(diff.Removed, Change{Table: name, Champion: champ, Other: other, Base: &bv})
			}
		}
	}

	sortChanges(diff.Added)
	sortChanges(diff.Removed)
	sort.SliceStable(diff.Shifted, func(i, j int) bool {
		a, b := math.Abs(diff.Shifted[i].Shift), math.Abs(diff.Shifted[j].Shift)
		if a != b {
			return a > b
		}
		return changeLess(diff.Shifted[i], diff.Shifted[j])
	})

	diff.Stats = DiffStats{
		AddedCount:   len(diff.Added),
		RemovedCount: len(diff.Removed),
		ShiftedCount: len(diff.Shifted),
	}
	return diff
}

func sortChanges(cs []Change) {
	sort.Slice(cs, func(i, j int) bool { return changeLess(cs[i], cs[j]) })
}

func changeLess(a, b Change) bool {
	if a.Table != b.Table {
		return a.Table < b.Table
	}
	if a.Champion != b.Champion {
		return a.Champion < b.Champion
	}
	return a.Other < b.Other
}
