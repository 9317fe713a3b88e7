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

// AssembledJP is a fully-framed IPv4+PIM Join/Prune datagram plus a
// human-readable description of its contents.
type AssembledJP struct {
	Bytes   []byte
	Summary string
}

// AssembleJoinPrune builds a single IPv4+PIM Join/Prune datagram for
// u, addressed from source to the upstream neighbor via the
// All-PIM-Routers destination, per §4.4. The caller is responsible for
// splitting a policy's full Update sequence across multiple calls.
func AssembleJoinPrune(u Update, neighbor, source Addr, holdtime uint16) AssembledJP {
	pimPayload := PIMJPHdrSize + u.Size()
	size := IPv4HdrSize + PIMHdrSize + pimPayload
	buf := make([]byte, size)

	writeIPv4Header(buf, source, AllPIMRouters, size)

	w := newPacketWriter(buf[IPv4HdrSize:])
	pimStart := IPv4HdrSize + w.mark()

	writePIMHdr(w, MsgJoinPrune)
	writeJPFixedHdr(w, neighbor, uint8(len(u.Groups)), holdtime)

	for _, ge := range u.Groups {
		writeGroupEntry(w, ge)
	}

	writeChecksum(buf, pimStart, w.size())

	return AssembledJP{
		Bytes:   buf,
		Summary: summarizeUpdate(u, neighbor, holdtime),
	}
}

// summarizeUpdate renders a human-readable one-line-per-group
// description of an Update, in the spirit of a network-engineer
// packet trace: group, then Join/Prune source lists with their flags.
func summarizeUpdate(u Update, neighbor Addr, holdtime uint16) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Join/Prune to %s holdtime=%d groups=%d", neighbor, holdtime, len(u.Groups))
	for _, ge := range u.Groups {
		fmt.Fprintf(&b, "\n  %s", formatGroupEntry(ge))
	}
	return b.String()
}
