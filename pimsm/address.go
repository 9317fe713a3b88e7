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
)

// Addr is an IPv4 address held as a 32-bit value in host byte order.
type Addr uint32

// AddrFromBytes builds an Addr from four octets in network order.
func AddrFromBytes(a, b, c, d byte) Addr {
	return Addr(uint32(a)<<24 | uint32(b)<<16 | uint32(c)<<8 | uint32(d))
}

// ParseAddr parses a dotted-quad string into an Addr.
func ParseAddr(s string) (Addr, error) {
	var a, b, c, d int
	n, err := fmt.Sscanf(s, "%d.%d.%d.%d", &a, &b, &c, &d)
	if err != nil || n != 4 {
		return 0, fmt.Errorf("pimsm: invalid IPv4 address %q", s)
	}
	for _, o := range []int{a, b, c, d} {
		if o < 0 || o > 255 {
			return 0, fmt.Errorf("pimsm: invalid IPv4 address %q", s)
		}
	}
	return AddrFromBytes(byte(a), byte(b), byte(c), byte(d)), nil
}

// Bytes returns the address as four octets in network order.
func (a Addr) Bytes() [4]byte {
	return [4]byte{
		byte(a >> 24),
		byte(a >> 16),
		byte(a >> 8),
		byte(a),
	}
}

// ToNetwork returns the address as a uint32 in network byte order,
// suitable for writing directly into a wire header field.
func (a Addr) ToNetwork() uint32 {
	b := a.Bytes()
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

// Less provides a total order over addresses (numeric order of the
// 32-bit value).
func (a Addr) Less(b Addr) bool { return a < b }

func (a Addr) String() string {
	b := a.Bytes()
	return fmt.Sprintf("%d.%d.%d.%d", b[0], b[1], b[2], b[3])
}

// IsDefault reports whether a is 0.0.0.0.
func (a Addr) IsDefault() bool { return a == 0 }

// IsLoopback reports whether a is in 127.0.0.0/8.
func (a Addr) IsLoopback() bool { return a>>24 == 127 }

// IsBroadcast reports whether a is the local broadcast address
// 255.255.255.255.
func (a Addr) IsBroadcast() bool { return a == 0xffffffff }

// IsMulticast reports whether a is in 224.0.0.0/4.
func (a Addr) IsMulticast() bool { return a>>28 == 0xe }

// AllPIMRouters is the link-local multicast group used as the
// destination for PIM control messages (224.0.0.13).
const AllPIMRouters = Addr(0xe000000d)
