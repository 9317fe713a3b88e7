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

// HelloParams carries the three options placed in every Hello this
// speaker emits.
type HelloParams struct {
	Holdtime     uint16
	DRPriority   uint32
	GenerationID uint32
}

const (
	helloOptHoldtimeSize = 2
	helloOptDRPrioSize   = 4
	helloOptGenIDSize    = 4

	helloBodySize = 3*HelloOptionHdrSize + helloOptHoldtimeSize + helloOptDRPrioSize + helloOptGenIDSize
)

// AssembledHello is a fully-framed IPv4+PIM Hello datagram plus a
// human-readable description.
type AssembledHello struct {
	Bytes   []byte
	Summary string
}

// AssembleHello builds an IPv4+PIM Hello datagram from source to the
// All-PIM-Routers address, carrying Hold-Time, DR Priority and
// Generation ID options in that order. A Holdtime of 0 renders as a
// Goodbye in the summary.
func AssembleHello(source Addr, p HelloParams) AssembledHello {
	size := IPv4HdrSize + PIMHdrSize + helloBodySize
	buf := make([]byte, size)

	writeIPv4Header(buf, source, AllPIMRouters, size)

	w := newPacketWriter(buf[IPv4HdrSize:])
	pimStart := IPv4HdrSize + w.mark()

	writePIMHdr(w, MsgHello)

	writeHelloOption(w, OptHoldtime, helloOptHoldtimeSize)
	w.putU16(p.Holdtime)

	writeHelloOption(w, OptDRPriority, helloOptDRPrioSize)
	w.putU32(p.DRPriority)

	writeHelloOption(w, OptGenerationID, helloOptGenIDSize)
	w.putU32(p.GenerationID)

	writeChecksum(buf, pimStart, w.size())

	kind := "Hello"
	if p.Holdtime == 0 {
		kind = "Goodbye"
	}

	return AssembledHello{
		Bytes: buf,
		Summary: fmt.Sprintf("%s from %s: holdtime=%d dr-priority=%d gen-id=%#08x",
			kind, source, p.Holdtime, p.DRPriority, p.GenerationID),
	}
}
