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
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssembleJoinPruneScenarioF covers spec.md §8 Scenario F: a
// 62-byte datagram (20 IPv4 + 4 PIM + 10 J/P fixed + 28 group entry)
// whose PIM checksum, recomputed over the payload
// with the checksum field zeroed, matches the stored value.
func TestAssembleJoinPruneScenarioF(t *testing.T) {
	group := mustAddr(t, "239.1.1.1")
	s1 := mustAddr(t, "10.0.0.1")
	s2 := mustAddr(t, "10.0.0.2")
	neighbor := mustAddr(t, "192.0.2.1")
	source := mustAddr(t, "192.0.2.2")

	cfg := JPConfig{Groups: []GroupConfig{{Group: group, SPT: []Addr{s1, s2}}}}
	u := Pack(cfg)
	require.Len(t, u, 1)

	jp := AssembleJoinPrune(u[0], neighbor, source, 210)
	wantSize := IPv4HdrSize + PIMHdrSize + PIMJPHdrSize + u[0].Size()
	require.Len(t, jp.Bytes, wantSize)

	pimStart := IPv4HdrSize
	region := make([]byte, PIMHdrSize+PIMJPHdrSize+u[0].Size())
	copy(region, jp.Bytes[pimStart:])
	stored := binary.BigEndian.Uint16(region[2:4])
	binary.BigEndian.PutUint16(region[2:4], 0)
	assert.Equal(t, stored, checksum(region))

	assert.Equal(t, byte(0x23), jp.Bytes[pimStart]) // version=2, type=3
	assert.Equal(t, source.Bytes(), [4]byte(jp.Bytes[12:16]))
	assert.Equal(t, AllPIMRouters.Bytes(), [4]byte(jp.Bytes[16:20]))
}

// TestAssembleJoinPruneIdempotent covers P6: assembling the same
// update twice produces byte-identical buffers.
func TestAssembleJoinPruneIdempotent(t *testing.T) {
	cfg := JPConfig{Groups: []GroupConfig{
		{Group: mustAddr(t, "239.1.1.1"), SPT: []Addr{mustAddr(t, "10.0.0.1")}},
	}}
	u := Pack(cfg)
	neighbor := mustAddr(t, "192.0.2.1")
	source := mustAddr(t, "192.0.2.2")

	a := AssembleJoinPrune(u[0], neighbor, source, 210)
	b := AssembleJoinPrune(u[0], neighbor, source, 210)
	assert.Equal(t, a.Bytes, b.Bytes)
}

// TestHelloGoodbye checks that a zero holdtime renders as a Goodbye.
func TestHelloGoodbye(t *testing.T) {
	source := mustAddr(t, "192.0.2.2")
	h := AssembleHello(source, HelloParams{Holdtime: 0, DRPriority: 1, GenerationID: 0xdeadbeef})
	assert.Contains(t, h.Summary, "Goodbye")

	g := AssembleHello(source, HelloParams{Holdtime: 105, DRPriority: 1, GenerationID: 0xdeadbeef})
	assert.Contains(t, g.Summary, "Hello")
}
