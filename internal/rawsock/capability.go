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

//go:build linux

package rawsock

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const capNetRaw = 13

// capGuard drops a raised capability bit on a scoped defer, so the
// process holds elevated privilege only across the narrow window
// between socket creation and bind.
type capGuard struct {
	hdr  unix.CapUserHeader
	data [2]unix.CapUserData
}

// raiseNetRaw raises CAP_NET_RAW in the effective set if it is not
// already present, returning a guard that restores the prior state.
// Running as root is accepted without raising anything.
func raiseNetRaw() (*capGuard, error) {
	if os.Geteuid() == 0 {
		return &capGuard{}, nil
	}

	hdr := unix.CapUserHeader{Version: unix.LINUX_CAPABILITY_VERSION_3, Pid: int32(os.Getpid())}
	var data [2]unix.CapUserData
	if err := unix.Capget(&hdr, &data[0]); err != nil {
		return nil, fmt.Errorf("rawsock: capget: %w", err)
	}

	if data[0].Effective&(1<<capNetRaw) != 0 {
		return &capGuard{}, nil
	}

	if data[0].Permitted&(1<<capNetRaw) == 0 {
		return nil, fmt.Errorf(
			"rawsock: missing CAP_NET_RAW (and not root); grant with: "+
				"sudo setcap cap_net_raw+ep %s", os.Args[0])
	}

	before := data
	data[0].Effective |= 1 << capNetRaw
	if err := unix.Capset(&hdr, &data[0]); err != nil {
		return nil, fmt.Errorf("rawsock: capset (raise): %w", err)
	}

	return &capGuard{hdr: hdr, data: before}, nil
}

// drop restores the effective capability set captured before the
// raise. A guard returned for the root/no-op case drops nothing.
func (g *capGuard) drop() {
	if g.hdr.Pid == 0 {
		return
	}
	_ = unix.Capset(&g.hdr, &g.data[0])
}
