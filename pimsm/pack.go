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

// Pack translates a Join/Prune policy into a minimal sequence of
// Update values, each of which fits within JPCapacity, with each
// group's RPT state (if any) co-located in a single group entry
// within a single update. See spec.md §4.2 for the full algorithm.
func Pack(cfg JPConfig) []Update {
	p := &packer{q: newQueue()}
	for _, ge := range cfg.Groups {
		p.fitGroup(ge)
	}
	return p.build()
}

type packer struct {
	q     *queue
	start int
}

// maxSources returns the largest number of source records that fit
// in a joins-only (or prunes-only) entry given rem remaining bytes,
// after accounting for the group header.
func maxSources(rem int) int {
	if rem <= GrpHdrSize {
		return 0
	}
	return (rem - GrpHdrSize) / SrcASize
}

// findRptUb walks a cursor from the start watermark forward until it
// finds a builder with enough remaining room for g's entire RPT
// record (the RP plus all its RPT prunes), and returns that builder's
// identity. Reserving the slot before placing any SPT join guarantees
// the RPT record will always fit in whichever builder is returned.
func (p *packer) findRptUb(g GroupConfig) *updateBuilder {
	if g.RPT == nil {
		return nil
	}

	rptSz := GrpHdrSize + SrcASize*(len(g.RPT.Prunes)+1)
	c := newCursor(p.q, &p.start)
	for c.builder().remaining() < rptSz {
		c.advance()
	}
	return c.builder()
}

func (p *packer) fitGroup(g GroupConfig) {
	rptUb := p.findRptUb(g)

	c := newCursor(p.q, &p.start)
	srci := 0

	for srci < len(g.SPT) {
		if c.builder() != rptUb {
			cnt := maxSources(c.builder().remaining())
			if cnt > len(g.SPT)-srci {
				cnt = len(g.SPT) - srci
			}
			if cnt > 0 {
				geb := newGroupEntryBuilder(g.Group, cnt, 0)
				for i := srci; i < srci+cnt; i++ {
					geb.join(sptRecord(g.SPT[i]))
				}
				c.add(geb)
				srci += cnt
			}
		} else {
			rpt := g.RPT
			rptReserve := SrcASize * (len(rpt.Prunes) + 1)
			cnt := maxSources(c.builder().remaining() - rptReserve)
			if cnt > len(g.SPT)-srci {
				cnt = len(g.SPT) - srci
			}

			geb := newGroupEntryBuilder(g.Group, cnt+1, len(rpt.Prunes))
			for i := srci; i < srci+cnt; i++ {
				geb.join(sptRecord(g.SPT[i]))
			}
			geb.join(rpRecord(rpt.RP))
			for _, s := range rpt.Prunes {
				geb.prune(rptPruneRecord(s))
			}
			c.add(geb)
			srci += cnt
			rptUb = nil
		}
		c.advance()
	}

	if rptUb != nil {
		rpt := g.RPT
		geb := newGroupEntryBuilder(g.Group, 1, len(rpt.Prunes))
		geb.join(rpRecord(rpt.RP))
		for _, s := range rpt.Prunes {
			geb.prune(rptPruneRecord(s))
		}
		sz := geb.size()
		rptUb.add(geb.build(), sz)
	}
}

func (p *packer) build() []Update {
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
