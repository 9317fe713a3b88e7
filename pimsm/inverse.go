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

// InversePack produces the dual of Pack: for each group, a sequence
// of prune-only group entries covering the RP (as a Prune(*,G)
// record, leading the list, if the group has an RPT) and the SPT
// joined sources (as Prune(S,G) records). RPT prunes are not part of
// this dual form; see spec.md §4.3.
//
// Unlike the original C++ this is grounded on, a group whose RPT has
// no SPT joins still yields a group entry containing the RP prune:
// looping only while SPT sources remain (as the original does) drops
// the RP entirely whenever SPT is empty, which would violate "every
// RPT source appears in the output exactly once". This packer loops
// until both the pending RP and all SPT sources are placed.
func InversePack(cfg JPConfig) []Update {
	p := &inversePacker{q: newQueue()}
	for _, g := range cfg.Groups {
		p.fitGroup(g)
	}
	return p.build()
}

type inversePacker struct {
	q     *queue
	start int
}

func (p *inversePacker) fitGroup(g GroupConfig) {
	hasRP := g.RPT != nil
	spt := g.SPT
	srci := 0

	if !hasRP && len(spt) == 0 {
		return
	}

	c := newCursor(p.q, &p.start)

	for hasRP || srci < len(spt) {
		pending := len(spt) - srci
		if hasRP {
			pending++
		}

		cnt := maxSources(c.builder().remaining())
		if cnt > pending {
			cnt = pending
		}

		if cnt > 0 {
			geb := newGroupEntryBuilder(g.Group, 0, cnt)
			if hasRP {
				geb.prune(rpRecord(g.RPT.RP))
				hasRP = false
				cnt--
			}
			for i := srci; i < srci+cnt; i++ {
				geb.prune(sptRecord(spt[i]))
			}
			c.add(geb)
			srci += cnt
		}

		c.advance()
	}
}

func (p *inversePacker) build() []Update {
	n := p.q.len()
	if p.q.at(n - 1).empty() {
		n--
	}

	updates := make([]Update, 0, n)
	for i := 0; i < n; i++ {
		updates = append(updates, p.q.at(i).build())
	}
	return updates
}
