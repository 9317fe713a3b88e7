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

package mclst

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

// Sender periodically emits beacons to a multicast group, the
// counterpart the Listener measures loss and latency against.
type Sender struct {
	fd  int
	dst unix.SockaddrInet4
	seq uint64
}

// OpenSender creates a UDP socket bound to ifAddr's outbound path,
// ready to send beacons to group:port.
func OpenSender(ifAddr [4]byte, group [4]byte, port int, ttl int) (*Sender, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
	if err != nil {
		return nil, fmt.Errorf("mclst: socket: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			_ = unix.Close(fd)
		}
	}()

	if err := unix.SetsockoptInet4Addr(fd, unix.IPPROTO_IP, unix.IP_MULTICAST_IF, ifAddr); err != nil {
		return nil, fmt.Errorf("mclst: IP_MULTICAST_IF: %w", err)
	}
	if err := unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_MULTICAST_TTL, ttl); err != nil {
		return nil, fmt.Errorf("mclst: IP_MULTICAST_TTL: %w", err)
	}

	ok = true
	return &Sender{fd: fd, dst: unix.SockaddrInet4{Addr: group, Port: port}}, nil
}

// SendOne emits a single beacon with the next sequence number.
func (s *Sender) SendOne() error {
	b := Beacon{Seq: s.seq, SentUnixN: time.Now().UnixNano()}
	s.seq++
	return unix.Sendto(s.fd, b.Encode(), 0, &s.dst)
}

// Close closes the send socket.
func (s *Sender) Close() error { return unix.Close(s.fd) }
