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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeaconEncodeDecodeRoundTrip(t *testing.T) {
	b := Beacon{Seq: 42, SentUnixN: 1_700_000_000_000_000_000}
	got, ok := DecodeBeacon(b.Encode())
	require.True(t, ok)
	assert.Equal(t, b, got)
}

func TestDecodeBeaconRejectsShortOrWrongMagic(t *testing.T) {
	_, ok := DecodeBeacon([]byte{1, 2, 3})
	assert.False(t, ok)

	junk := make([]byte, BeaconSize)
	_, ok = DecodeBeacon(junk)
	assert.False(t, ok)
}

func TestStatsRecordsLossAcrossSequenceGap(t *testing.T) {
	s := NewStats()
	now := time.Unix(0, 1_700_000_000_000_000_000)

	s.Record(Beacon{Seq: 1, SentUnixN: now.UnixNano()}, now)
	s.Record(Beacon{Seq: 2, SentUnixN: now.UnixNano()}, now)
	s.Record(Beacon{Seq: 5, SentUnixN: now.UnixNano()}, now)

	snap := s.Snapshot()
	assert.Equal(t, uint64(3), snap.Received)
	assert.Equal(t, uint64(2), snap.Lost)
}

func TestStatsTracksLatency(t *testing.T) {
	s := NewStats()
	sent := time.Unix(0, 1_700_000_000_000_000_000)
	recv := sent.Add(50 * time.Millisecond)

	s.Record(Beacon{Seq: 1, SentUnixN: sent.UnixNano()}, recv)

	snap := s.Snapshot()
	assert.Equal(t, 50*time.Millisecond, snap.AverageLatency)
	assert.Equal(t, 50*time.Millisecond, snap.MaxLatency)
}
