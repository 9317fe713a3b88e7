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

// Source is one source record within a group entry: the address, a
// wildcard bit (set only for the RP's own record), and an rpt bit
// (set for the RP and its RPT prunes, clear for SPT joins and
// inverse-form SPT prunes).
type Source struct {
	Addr     Addr
	Wildcard bool
	RPT      bool
}

// rpRecord builds the (*,G) RP join/prune record.
func rpRecord(rp Addr) Source { return Source{Addr: rp, Wildcard: true, RPT: true} }

// rptPruneRecord builds a Prune(S,G,rpt) record.
func rptPruneRecord(s Addr) Source { return Source{Addr: s, Wildcard: false, RPT: true} }

// sptRecord builds an SPT Join(S,G) or, in the inverse form,
// Prune(S,G) record.
func sptRecord(s Addr) Source { return Source{Addr: s, Wildcard: false, RPT: false} }

// GroupEntry is the per-group state carried in one Join/Prune update:
// its joined and pruned source lists.
type GroupEntry struct {
	Group  Addr
	Joins  []Source
	Prunes []Source
}

// Size returns the encoded size in bytes of this group entry.
func (g GroupEntry) Size() int {
	return GrpHdrSize + SrcASize*(len(g.Joins)+len(g.Prunes))
}

// Update is a single Join/Prune message's worth of group entries.
type Update struct {
	Groups []GroupEntry
}

// Size returns the encoded size in bytes of this update's group
// entries (the Join/Prune fixed header is not included).
func (u Update) Size() int {
	sz := 0
	for _, g := range u.Groups {
		sz += g.Size()
	}
	return sz
}
