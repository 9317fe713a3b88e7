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

// RPT describes a group's rendezvous-point shared-tree state: the RP
// address itself plus the sources pruned off that shared tree
// (Prune(S,G,rpt)).
type RPT struct {
	RP     Addr
	Prunes []Addr
}

// GroupConfig is one group's Join/Prune policy: an optional shared
// tree and a set of source-specific-tree joined sources.
type GroupConfig struct {
	Group Addr
	RPT   *RPT
	SPT   []Addr
}

// JPConfig is the full multicast Join/Prune policy: an ordered,
// group-unique sequence of per-group configuration.
type JPConfig struct {
	Groups []GroupConfig
}

// Validate checks the invariants spec.md §3 places on a JPConfig:
// group uniqueness, RPT prune-list bounds and disjointness, and SPT
// disjointness from RPT prunes. It also rejects groups that are not
// multicast addresses and RPT records too large for JPCapacity. It
// does not check that the RP is a unicast address, and it returns at
// the first violation found.
func (c JPConfig) Validate() error {
	seen := make(map[Addr]bool, len(c.Groups))

	for _, g := range c.Groups {
		if seen[g.Group] {
			return fmt.Errorf("pimsm: duplicate group %s in policy", g.Group)
		}
		seen[g.Group] = true

		if !g.Group.IsMulticast() {
			return fmt.Errorf("pimsm: group %s is not a multicast address", g.Group)
		}

		if g.RPT != nil {
			if len(g.RPT.Prunes) > MaxPruneSGrptLen {
				return fmt.Errorf(
					"pimsm: group %s: %d RPT pruned sources exceeds the maximum of %d",
					g.Group, len(g.RPT.Prunes), MaxPruneSGrptLen)
			}

			pruneSet := make(map[Addr]bool, len(g.RPT.Prunes))
			for _, p := range g.RPT.Prunes {
				if p == g.RPT.RP {
					return fmt.Errorf(
						"pimsm: group %s: RPT pruned source %s equals the RP", g.Group, p)
				}
				if pruneSet[p] {
					return fmt.Errorf(
						"pimsm: group %s: duplicate RPT pruned source %s", g.Group, p)
				}
				pruneSet[p] = true
			}

			sptSet := make(map[Addr]bool, len(g.SPT))
			for _, s := range g.SPT {
				if pruneSet[s] {
					return fmt.Errorf(
						"pimsm: group %s: source %s is both an SPT join and an RPT prune",
						g.Group, s)
				}
				if sptSet[s] {
					return fmt.Errorf(
						"pimsm: group %s: duplicate SPT joined source %s", g.Group, s)
				}
				sptSet[s] = true
			}

			rptSz := GrpHdrSize + SrcASize*(len(g.RPT.Prunes)+1)
			if rptSz > JPCapacity {
				return fmt.Errorf(
					"pimsm: group %s: RPT record of %d bytes exceeds the %d byte "+
						"Join/Prune capacity and cannot be represented",
					g.Group, rptSz, JPCapacity)
			}
		} else {
			sptSet := make(map[Addr]bool, len(g.SPT))
			for _, s := range g.SPT {
				if sptSet[s] {
					return fmt.Errorf(
						"pimsm: group %s: duplicate SPT joined source %s", g.Group, s)
				}
				sptSet[s] = true
			}
		}
	}

	return nil
}
