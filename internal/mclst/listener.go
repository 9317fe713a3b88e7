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
	"log/slog"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"golang.org/x/sys/unix"
)

// Listener owns the multicast receive socket. One goroutine reads
// datagrams and dispatches decoded beacons to Stats; no locking is
// required since it is the socket's sole owner.
type Listener struct {
	fd   int
	log  *slog.Logger
	stat *Stats
}

// Open joins group on ifAddr and returns a Listener reading full
// IPv4+UDP datagrams on a raw socket, so the receive side can dissect
// the UDP header itself rather than rely on the kernel's per-socket
// demultiplexing.
func Open(group [4]byte, ifAddr [4]byte, log *slog.Logger) (*Listener, error) {
	if log == nil {
		log = slog.Default()
	}

	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_UDP)
	if err != nil {
		return nil, fmt.Errorf("mclst: socket: %w", err)
	}
	ok := false
	defer func() {
		if !ok {
			_ = unix.Close(fd)
		}
	}()

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEPORT, 1); err != nil {
		return nil, fmt.Errorf("mclst: SO_REUSEPORT: %w", err)
	}

	mreq := unix.IPMreq{Multiaddr: group, Interface: ifAddr}
	if err := unix.SetsockoptIPMreq(fd, unix.IPPROTO_IP, unix.IP_ADD_MEMBERSHIP, &mreq); err != nil {
		return nil, fmt.Errorf("mclst: IP_ADD_MEMBERSHIP: %w", err)
	}

	ok = true
	return &Listener{fd: fd, log: log, stat: NewStats()}, nil
}

// Stats returns the listener's running loss/latency accounting.
func (l *Listener) Stats() *Stats { return l.stat }

// Close closes the receive socket.
func (l *Listener) Close() error { return unix.Close(l.fd) }

// Run reads datagrams until Close is called (which causes Recvfrom to
// return an error and Run to exit), updating Stats for each beacon
// received and logging anything that does not parse as one.
func (l *Listener) Run() error {
	buf := make([]byte, 2048)
	for {
		n, _, err := unix.Recvfrom(l.fd, buf, 0)
		if err != nil {
			return fmt.Errorf("mclst: recv: %w", err)
		}
		l.handle(buf[:n])
	}
}

// handle dissects a received IPv4+UDP datagram with gopacket to
// recover the beacon payload, then records it against Stats.
func (l *Listener) handle(raw []byte) {
	pkt := gopacket.NewPacket(raw, layers.LayerTypeIPv4, gopacket.DecodeOptions{
		Lazy: true, NoCopy: true,
	})
	udpLayer := pkt.Layer(layers.LayerTypeUDP)
	if udpLayer == nil {
		l.log.Warn("mclst: non-UDP datagram on beacon socket")
		return
	}
	udp, _ := udpLayer.(*layers.UDP)

	b, ok := DecodeBeacon(udp.Payload)
	if !ok {
		l.log.Warn("mclst: payload is not a beacon", "len", len(udp.Payload))
		return
	}

	l.stat.Record(b, time.Now())
}
