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

package mclst

import (
	"sync"
	"time"
)

// Stats accumulates loss and latency counters from a stream of
// received beacons. The receive side is single-threaded, but Stats
// is still safe for concurrent reads from a reporting goroutine.
type Stats struct {
	mu sync.Mutex

	received  uint64
	lost      uint64
	lastSeq   uint64
	haveFirst bool

	latencySum   time.Duration
	latencyCount uint64
	maxLatency   time.Duration
}

// NewStats returns an empty Stats.
func NewStats() *Stats { return &Stats{} }

// Record folds one received beacon into the running counters. A gap
// in the sequence number relative to the last beacon seen is counted
// as loss (out-of-order beacons are not un-counted; this is a running
// estimate, not a windowed reorder buffer).
func (s *Stats) Record(b Beacon, receivedAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.received++

	if s.haveFirst && b.Seq > s.lastSeq+1 {
		s.lost += b.Seq - s.lastSeq - 1
	}
	if !s.haveFirst || b.Seq > s.lastSeq {
		s.lastSeq = b.Seq
		s.haveFirst = true
	}

	if latency := receivedAt.Sub(time.Unix(0, b.SentUnixN)); latency >= 0 {
		s.latencySum += latency
		s.latencyCount++
		if latency > s.maxLatency {
			s.maxLatency = latency
		}
	}
}

// Snapshot is a point-in-time read of the running counters.
type Snapshot struct {
	Received       uint64
	Lost           uint64
	AverageLatency time.Duration
	MaxLatency     time.Duration
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Received: s.received, Lost: s.lost, MaxLatency: s.maxLatency}
	if s.latencyCount > 0 {
		snap.AverageLatency = s.latencySum / time.Duration(s.latencyCount)
	}
	return snap
}
