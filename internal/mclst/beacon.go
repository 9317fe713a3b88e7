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

// Package mclst holds the shared internals of the mclst diagnostic
// companion: a beacon payload format, a packet-dissecting listener,
// and loss/latency accounting. It reuses the PIM speaker's address
// type but is independent of the core Join/Prune packer.
package mclst

import "encoding/binary"

// beaconMagic identifies an mclst beacon payload so the listener can
// ignore unrelated UDP traffic arriving on the same multicast group.
const beaconMagic = 0x6d636c73 // "mcls"

// BeaconSize is the fixed wire size of a Beacon payload.
const BeaconSize = 4 + 8 + 8

// Beacon is the UDP payload the sender emits on the diagnostic
// multicast group: a magic number, a monotonically increasing
// sequence number, and the send timestamp in Unix nanoseconds.
type Beacon struct {
	Seq       uint64
	SentUnixN int64
}

// Encode renders b as its fixed-size wire payload.
func (b Beacon) Encode() []byte {
	buf := make([]byte, BeaconSize)
	binary.BigEndian.PutUint32(buf[0:4], beaconMagic)
	binary.BigEndian.PutUint64(buf[4:12], b.Seq)
	binary.BigEndian.PutUint64(buf[12:20], uint64(b.SentUnixN))
	return buf
}

// DecodeBeacon parses a UDP payload as a Beacon, reporting false if
// it is too short or does not carry the beacon magic.
func DecodeBeacon(payload []byte) (Beacon, bool) {
	if len(payload) < BeaconSize {
		return Beacon{}, false
	}
	if binary.BigEndian.Uint32(payload[0:4]) != beaconMagic {
		return Beacon{}, false
	}
	return Beacon{
		Seq:       binary.BigEndian.Uint64(payload[4:12]),
		SentUnixN: int64(binary.BigEndian.Uint64(payload[12:20])),
	}, true
}
