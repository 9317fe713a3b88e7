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

import (
	"fmt"
	"strings"
)

// String renders a source record in the "(addr,W,R)" notation used
// throughout the protocol's worked scenarios.
func (s Source) String() string {
	w, r := "F", "F"
	if s.Wildcard {
		w = "T"
	}
	if s.RPT {
		r = "T"
	}
	return fmt.Sprintf("(%s,%s,%s)", s.Addr, w, r)
}

func formatSourceList(label string, ss []Source) string {
	if len(ss) == 0 {
		return ""
	}
	parts := make([]string, len(ss))
	for i, s := range ss {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s=[%s]", label, strings.Join(parts, ","))
}

// formatGroupEntry renders one group entry as "group joins=[...] prunes=[...]",
// omitting either list when empty.
func formatGroupEntry(ge GroupEntry) string {
	var parts []string
	parts = append(parts, ge.Group.String())
	if j := formatSourceList("joins", ge.Joins); j != "" {
		parts = append(parts, j)
	}
	if p := formatSourceList("prunes", ge.Prunes); p != "" {
		parts = append(parts, p)
	}
	return strings.Join(parts, " ")
}

// String renders the full update as one line per group entry.
func (u Update) String() string {
	lines := make([]string, len(u.Groups))
	for i, ge := range u.Groups {
		lines[i] = formatGroupEntry(ge)
	}
	return strings.Join(lines, "\n")
}
