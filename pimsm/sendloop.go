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
	"context"
	"log/slog"
	"time"
)

// Sink is the datagram sink contract: it delivers a complete,
// already-framed IPv4+PIM datagram to the All-PIM-Routers address on
// the configured output interface. A Sink never mutates bytes.
type Sink interface {
	Send(bytes []byte, descr string) error
}

// Cadence carries the timer periods and identity fields that drive
// the send loop, per §4.6.
type Cadence struct {
	HelloPeriod     time.Duration
	JPRefreshPeriod time.Duration
	JPHoldtime      uint16
	DRPriority      uint32
	GenerationID    uint32
	Neighbor        Addr
	Source          Addr
}

// HelloHoldtime returns 3.5x the Hello period in seconds, truncated
// to a whole second.
func (c Cadence) HelloHoldtime() uint16 {
	return uint16((c.HelloPeriod * 7 / 2) / time.Second)
}

// Loop drives Hello and Join/Prune cadence on a single timer-driven
// goroutine, per §5: one Hello is always emitted before the first
// Join/Prune refresh, and on ctx cancellation a Goodbye is emitted
// before the loop returns.
type Loop struct {
	cadence Cadence
	sink    Sink
	log     *slog.Logger
	updates func() []Update
}

// NewLoop builds a send loop that sources its policy-derived Update
// sequence from updates (called once per refresh tick) and writes
// datagrams through sink.
func NewLoop(cadence Cadence, sink Sink, log *slog.Logger, updates func() []Update) *Loop {
	if log == nil {
		log = slog.Default()
	}
	return &Loop{cadence: cadence, sink: sink, log: log, updates: updates}
}

// Run blocks, driving cadence ticks until ctx is cancelled, at which
// point it emits one Goodbye Hello (best-effort) and returns.
func (l *Loop) Run(ctx context.Context) error {
	l.sendHello(l.cadence.HelloHoldtime())
	l.sendRefresh()

	helloTicker := time.NewTicker(l.cadence.HelloPeriod)
	defer helloTicker.Stop()
	jpTicker := time.NewTicker(l.cadence.JPRefreshPeriod)
	defer jpTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.sendHello(0)
			return ctx.Err()
		case <-helloTicker.C:
			l.sendHello(l.cadence.HelloHoldtime())
		case <-jpTicker.C:
			l.sendRefresh()
		}
	}
}

func (l *Loop) sendHello(holdtime uint16) {
	h := AssembleHello(l.cadence.Source, HelloParams{
		Holdtime:     holdtime,
		DRPriority:   l.cadence.DRPriority,
		GenerationID: l.cadence.GenerationID,
	})
	if err := l.sink.Send(h.Bytes, h.Summary); err != nil {
		l.log.Warn("hello send failed", "error", err)
	}
}

// sendRefresh emits the full sequence of updates produced from the
// current policy, in packer order; a send failure for one datagram
// does not abort the rest of the cycle, per §7 class 4.
func (l *Loop) sendRefresh() {
	for _, u := range l.updates() {
		jp := AssembleJoinPrune(u, l.cadence.Neighbor, l.cadence.Source, l.cadence.JPHoldtime)
		if err := l.sink.Send(jp.Bytes, jp.Summary); err != nil {
			l.log.Warn("join/prune send failed", "error", err)
		}
	}
}
