/*
 * pimc. Copyright (C) 2024-present the pimc authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation; either version 2 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License along
 * with this program; if not, write to the Free Software Foundation, Inc.,
 * 51 Franklin Street, Fifth Floor, Boston, MA 02110-1301 USA.
 */

package pimsm

import "fmt"

// VerifyReport is a structured diff between a policy and the updates
// packed from it; it is non-fatal in test contexts but carries enough
// detail to report a batch of mismatches at once.
type VerifyReport struct {
	MissingGroups    []Addr
	ExtraGroups      []Addr
	GroupMismatches  []GroupMismatch
	MalformedRecords []string
}

// GroupMismatch reports the differences found for one group between
// the original policy and a reconstruction from packed updates.
type GroupMismatch struct {
	Group         Addr
	RPMismatch    bool
	WantRP, GotRP Addr
	MissingSPT    []Addr
	ExtraSPT      []Addr
	MissingPrunes []Addr
	ExtraPrunes   []Addr
}

// OK reports whether the report carries no discrepancies.
func (r VerifyReport) OK() bool {
	return len(r.MissingGroups) == 0 && len(r.ExtraGroups) == 0 &&
		len(r.GroupMismatches) == 0 && len(r.MalformedRecords) == 0
}

// reconstructed is the per-group state recovered from a set of
// Updates while replaying §4.5's flag rules.
type reconstructed struct {
	hasRP   bool
	rp      Addr
	prunes  map[Addr]bool
	spt     map[Addr]bool
}

// Verify reconstructs a JPConfig from the forward-packed updates u and
// diffs it against the original cfg, per §4.5.
func Verify(cfg JPConfig, u []Update) VerifyReport {
	var report VerifyReport
	groups := map[Addr]*reconstructed{}
	order := []Addr{}

	get := func(g Addr) *reconstructed {
		r, ok := groups[g]
		if !ok {
			r = &reconstructed{prunes: map[Addr]bool{}, spt: map[Addr]bool{}}
			groups[g] = r
			order = append(order, g)
		}
		return r
	}

	record := func(g Addr, s Source) {
		r := get(g)
		switch {
		case s.Wildcard && s.RPT:
			r.hasRP = true
			r.rp = s.Addr
		case !s.Wildcard && s.RPT:
			r.prunes[s.Addr] = true
		case !s.Wildcard && !s.RPT:
			r.spt[s.Addr] = true
		default:
			report.MalformedRecords = append(report.MalformedRecords,
				fmt.Sprintf("group %s: invalid record %s", g, s))
		}
	}

	for _, up := range u {
		for _, ge := range up.Groups {
			for _, s := range ge.Joins {
				record(ge.Group, s)
			}
			for _, s := range ge.Prunes {
				record(ge.Group, s)
			}
		}
	}

	for _, g := range order {
		r := groups[g]
		if !r.hasRP && len(r.prunes) > 0 {
			report.MalformedRecords = append(report.MalformedRecords,
				fmt.Sprintf("group %s: RPT prune without an RP", g))
		}
	}

	want := map[Addr]GroupConfig{}
	for _, g := range cfg.Groups {
		want[g.Group] = g
	}

	seen := map[Addr]bool{}
	for _, g := range cfg.Groups {
		seen[g.Group] = true
		r, ok := groups[g.Group]
		if !ok {
			if g.RPT != nil || len(g.SPT) > 0 {
				report.MissingGroups = append(report.MissingGroups, g.Group)
			}
			continue
		}
		report.GroupMismatches = appendIfMismatch(report.GroupMismatches, diffGroup(g, r))
	}

	for g := range groups {
		if !seen[g] {
			report.ExtraGroups = append(report.ExtraGroups, g)
		}
	}

	return report
}

func diffGroup(want GroupConfig, got *reconstructed) GroupMismatch {
	m := GroupMismatch{Group: want.Group}

	var wantRP Addr
	wantHasRP := want.RPT != nil
	if wantHasRP {
		wantRP = want.RPT.RP
	}
	if wantHasRP != got.hasRP || (wantHasRP && wantRP != got.rp) {
		m.RPMismatch = true
		m.WantRP, m.GotRP = wantRP, got.rp
	}

	wantPrunes := map[Addr]bool{}
	if want.RPT != nil {
		for _, p := range want.RPT.Prunes {
			wantPrunes[p] = true
		}
	}
	for p := range wantPrunes {
		if !got.prunes[p] {
			m.MissingPrunes = append(m.MissingPrunes, p)
		}
	}
	for p := range got.prunes {
		if !wantPrunes[p] {
			m.ExtraPrunes = append(m.ExtraPrunes, p)
		}
	}

	wantSPT := map[Addr]bool{}
	for _, s := range want.SPT {
		wantSPT[s] = true
	}
	for s := range wantSPT {
		if !got.spt[s] {
			m.MissingSPT = append(m.MissingSPT, s)
		}
	}
	for s := range got.spt {
		if !wantSPT[s] {
			m.ExtraSPT = append(m.ExtraSPT, s)
		}
	}

	return m
}

func appendIfMismatch(ms []GroupMismatch, m GroupMismatch) []GroupMismatch {
	if m.RPMismatch || len(m.MissingSPT) > 0 || len(m.ExtraSPT) > 0 ||
		len(m.MissingPrunes) > 0 || len(m.ExtraPrunes) > 0 {
		return append(ms, m)
	}
	return ms
}

// VerifyInverse reconstructs a JPConfig from inverse-packed updates u
// (prune-only: the RP as (rp,T,T), SPT sources as (s,F,F)) and diffs
// it against cfg using the same group-level comparison as Verify.
func VerifyInverse(cfg JPConfig, u []Update) VerifyReport {
	var report VerifyReport
	groups := map[Addr]*reconstructed{}

	get := func(g Addr) *reconstructed {
		r, ok := groups[g]
		if !ok {
			r = &reconstructed{prunes: map[Addr]bool{}, spt: map[Addr]bool{}}
			groups[g] = r
		}
		return r
	}

	for _, up := range u {
		for _, ge := range up.Groups {
			if len(ge.Joins) > 0 {
				report.MalformedRecords = append(report.MalformedRecords,
					fmt.Sprintf("group %s: inverse update carries a join", ge.Group))
			}
			r := get(ge.Group)
			for _, s := range ge.Prunes {
				switch {
				case s.Wildcard && s.RPT:
					if r.hasRP {
						report.MalformedRecords = append(report.MalformedRecords,
							fmt.Sprintf("group %s: duplicate RP record", ge.Group))
					}
					r.hasRP = true
					r.rp = s.Addr
				case !s.Wildcard && !s.RPT:
					r.spt[s.Addr] = true
				default:
					report.MalformedRecords = append(report.MalformedRecords,
						fmt.Sprintf("group %s: invalid inverse record %s", ge.Group, s))
				}
			}
		}
	}

	seen := map[Addr]bool{}
	for _, g := range cfg.Groups {
		seen[g.Group] = true
		r, ok := groups[g.Group]
		if !ok {
			if g.RPT != nil || len(g.SPT) > 0 {
				report.MissingGroups = append(report.MissingGroups, g.Group)
			}
			continue
		}

		var wantRP Addr
		wantHasRP := g.RPT != nil
		if wantHasRP {
			wantRP = g.RPT.RP
		}
		m := GroupMismatch{Group: g.Group}
		if wantHasRP != r.hasRP || (wantHasRP && wantRP != r.rp) {
			m.RPMismatch = true
			m.WantRP, m.GotRP = wantRP, r.rp
		}

		wantSPT := map[Addr]bool{}
		for _, s := range g.SPT {
			wantSPT[s] = true
		}
		for s := range wantSPT {
			if !r.spt[s] {
				m.MissingSPT = append(m.MissingSPT, s)
			}
		}
		for s := range r.spt {
			if !wantSPT[s] {
				m.ExtraSPT = append(m.ExtraSPT, s)
			}
		}

		report.GroupMismatches = appendIfMismatch(report.GroupMismatches, m)
	}

	for g := range groups {
		if !seen[g] {
			report.ExtraGroups = append(report.ExtraGroups, g)
		}
	}

	return report
}
