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

// Package ifaces resolves a configured interface name to its index
// and first usable IPv4 address, the information the send loop needs
// to bind the outbound raw socket and fill the datagram's source
// address.
package ifaces

import (
	"fmt"

	"github.com/vishvananda/netlink"

	"github.com/pimc-project/pimc/pimsm"
)

// Info is the resolved state of one network interface.
type Info struct {
	Name    string
	Index   int
	Address pimsm.Addr
}

// Resolve looks up name via netlink and returns its index and first
// global-scope IPv4 address.
func Resolve(name string) (Info, error) {
	link, err := netlink.LinkByName(name)
	if err != nil {
		return Info{}, fmt.Errorf("ifaces: %s: %w", name, err)
	}

	addrs, err := netlink.AddrList(link, netlink.FAMILY_V4)
	if err != nil {
		return Info{}, fmt.Errorf("ifaces: %s: listing addresses: %w", name, err)
	}

	for _, a := range addrs {
		v4 := a.IP.To4()
		if v4 == nil || a.Scope != 0 {
			continue
		}
		return Info{
			Name:    name,
			Index:   link.Attrs().Index,
			Address: pimsm.AddrFromBytes(v4[0], v4[1], v4[2], v4[3]),
		}, nil
	}

	return Info{}, fmt.Errorf("ifaces: %s: no usable IPv4 address", name)
}
