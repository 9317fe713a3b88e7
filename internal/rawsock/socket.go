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

// Package rawsock owns the raw IPv4 socket the PIM speaker sends
// already-framed PIM datagrams on, plus the capability raise/drop
// guard around opening it.
package rawsock

import (
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/pimc-project/pimc/pimsm"
)

// Socket is a raw IPv4 socket opened with IP_HDRINCL: the caller
// supplies complete, already-framed IPv4 datagrams, and the kernel
// does no header construction of its own. A mutex serializes Send
// and Close against the single file descriptor.
type Socket struct {
	fd int
	mu sync.Mutex
}

// Open raises CAP_NET_RAW, creates a raw IPv4 socket bound to
// ifName's outbound path with IP_HDRINCL set, and drops the raised
// capability again before returning.
func Open(ifName string) (*Socket, error) {
	guard, err := raiseNetRaw()
	if err != nil {
		return nil, err
	}
	defer guard.drop()

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, pimsm.PIMProtocolNumber)
	if err != nil {
		return nil, fmt.Errorf("rawsock: open: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			_ = unix.Close(fd)
		}
	}()

	if err := unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_HDRINCL, 1); err != nil {
		return nil, fmt.Errorf("rawsock: set IP_HDRINCL: %w", err)
	}
	if ifName != "" {
		if err := unix.BindToDevice(fd, ifName); err != nil {
			return nil, fmt.Errorf("rawsock: bind to device %s: %w", ifName, err)
		}
	}

	ok = true
	return &Socket{fd: fd}, nil
}

// Send delivers a complete IPv4+PIM datagram to the All-PIM-Routers
// address. The datagram's destination address must already be
// correct in the IPv4 header; this call only frames the sockaddr for
// the syscall.
func (s *Socket) Send(bytes []byte, descr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := pimsm.AllPIMRouters.Bytes()
	dst := &unix.SockaddrInet4{Addr: b}

	if err := unix.Sendto(s.fd, bytes, 0, dst); err != nil {
		return fmt.Errorf("rawsock: send %s: %w", descr, err)
	}
	return nil
}

// Close closes the underlying file descriptor.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return unix.Close(s.fd)
}
