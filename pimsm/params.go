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

// Wire-level constants for PIM-SM v2 over IPv4. Sizes in bytes unless
// noted otherwise.
const (
	// IPv4FamilyNumber is the address family value used in encoded
	// addresses for IPv4.
	IPv4FamilyNumber uint8 = 1

	// NativeEncoding is the (only) encoding type this speaker emits.
	NativeEncoding uint8 = 0

	// PIM message types.
	MsgHello     uint8 = 0
	MsgJoinPrune uint8 = 3

	// Hello option types.
	OptHoldtime     uint16 = 1
	OptDRPriority   uint16 = 19
	OptGenerationID uint16 = 20

	// PIMHdrSize is the size of the fixed 4-byte PIM-SM v2 header:
	// 4-bit version, 4-bit type, 1 reserved byte, 2-byte checksum.
	PIMHdrSize = 4

	// HelloOptionHdrSize is the size of a Hello option's
	// type+length header.
	HelloOptionHdrSize = 4

	// EncUAddrSize is the size of an encoded unicast address record
	// (family, encoding type, 4-byte address).
	EncUAddrSize = 6

	// EncGAddrSize is the size of an encoded group address record
	// (family, encoding type, flags, mask length, 4-byte address).
	EncGAddrSize = 8

	// EncSrcAddrSize is the size of an encoded source address record
	// (family, encoding type, flags, mask length, 4-byte address).
	EncSrcAddrSize = 8

	// GrpHdrSize is the size of a Join/Prune group entry's fixed
	// header: the encoded group address plus joined/pruned source
	// counts.
	GrpHdrSize = EncGAddrSize + 2 + 2

	// SrcASize is GrpHdrSize's companion: the size of one encoded
	// source address record within a group entry.
	SrcASize = EncSrcAddrSize

	// MinEntrySize is the smallest possible group entry: the header
	// plus a single source record.
	MinEntrySize = GrpHdrSize + SrcASize

	// PIMJPHdrSize is the size of the Join/Prune fixed header that
	// follows the PIM header: encoded upstream-neighbor address (6),
	// reserved (1), number of groups (1), hold time (2).
	PIMJPHdrSize = EncUAddrSize + 1 + 1 + 2

	// JPCapacity is the per-packet byte budget available for group
	// entries in an IPv4 Join/Prune update, derived from a 1500-byte
	// Ethernet MTU payload: 1500 - 20 (IPv4 header) - 4 (PIM header)
	// - 10 (Join/Prune fixed header) = 1466.
	JPCapacity = 1466

	// MaxPruneSGrptLen is the maximum number of Prune(S,G,rpt)
	// entries a single group entry may carry.
	MaxPruneSGrptLen = 180

	// IPv4HdrSize is the size of the IPv4 header this speaker
	// writes (no options).
	IPv4HdrSize = 20

	// PIMProtocolNumber is the IP protocol number for PIM (103).
	PIMProtocolNumber = 103
)
