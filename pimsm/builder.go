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

import "fmt"

// groupEntryBuilder accumulates the joins and prunes of a single
// group entry before it is committed to an updateBuilder.
type groupEntryBuilder struct {
	group  Addr
	joins  []Source
	prunes []Source
}

func newGroupEntryBuilder(group Addr, jcap, pcap int) *groupEntryBuilder {
	return &groupEntryBuilder{
		group:  group,
		joins:  make([]Source, 0, jcap),
		prunes: make([]Source, 0, pcap),
	}
}

func (b *groupEntryBuilder) join(s Source)  { b.joins = append(b.joins, s) }
func (b *groupEntryBuilder) prune(s Source) { b.prunes = append(b.prunes, s) }

func (b *groupEntryBuilder) size() int {
	return GrpHdrSize + SrcASize*(len(b.joins)+len(b.prunes))
}

func (b *groupEntryBuilder) build() GroupEntry {
	return GroupEntry{Group: b.group, Joins: b.joins, Prunes: b.prunes}
}

// updateBuilder accumulates group entries for one Update, tracking
// the running encoded size against JPCapacity.
type updateBuilder struct {
	groups []GroupEntry
	sz     int
}

func newUpdateBuilder() *updateBuilder { return &updateBuilder{} }

func (u *updateBuilder) remaining() int { return JPCapacity - u.sz }

// add commits a group entry of size sz into this builder. sz must be
// the entry's own Size(); a mismatch, or an add that would overflow
// JPCapacity, indicates a packer logic bug and panics rather than
// return an error, per spec.md §7 class 3.
func (u *updateBuilder) add(ge GroupEntry, sz int) {
	if sz != ge.Size() {
		panic(fmt.Sprintf("pimsm: entry size %d, declared size %d", ge.Size(), sz))
	}
	if u.sz+sz > JPCapacity {
		panic(fmt.Sprintf(
			"pimsm: update capacity %d, current size %d, entry size %d",
			JPCapacity, u.sz, sz))
	}
	u.groups = append(u.groups, ge)
	u.sz += sz
}

func (u *updateBuilder) build() Update { return Update{Groups: u.groups} }

func (u *updateBuilder) empty() bool { return len(u.groups) == 0 }

// full reports whether even the smallest possible group entry no
// longer fits.
func (u *updateBuilder) full() bool { return u.remaining() < MinEntrySize }

// queue is the growing, ordered sequence of updateBuilders the packer
// works against. It always keeps at least one builder present.
type queue struct {
	ubs []*updateBuilder
}

func newQueue() *queue { return &queue{ubs: []*updateBuilder{newUpdateBuilder()}} }

func (q *queue) at(i int) *updateBuilder { return q.ubs[i] }

func (q *queue) len() int { return len(q.ubs) }

func (q *queue) grow() { q.ubs = append(q.ubs, newUpdateBuilder()) }

// cursor is a position within a queue plus the shared start
// watermark: the index of the leftmost not-yet-full builder. Pre-
// incrementing past the end of the queue appends a fresh builder.
type cursor struct {
	q     *queue
	start *int
	i     int
}

func newCursor(q *queue, start *int) *cursor {
	return &cursor{q: q, start: start, i: *start}
}

func (c *cursor) builder() *updateBuilder { return c.q.at(c.i) }

// advance moves the cursor to the next builder, appending one if the
// queue is exhausted.
func (c *cursor) advance() {
	c.i++
	if c.i >= c.q.len() {
		c.q.grow()
	}
}

// add commits geb into the builder currently under the cursor and
// updates the start watermark.
func (c *cursor) add(geb *groupEntryBuilder) {
	c.q.at(c.i).add(geb.build(), geb.size())
	c.updateStart()
}

// updateStart walks the watermark forward past any builders that have
// become full, so future searches for a fitting builder can start
// from *start instead of rescanning the whole queue.
func (c *cursor) updateStart() {
	for j := *c.start; j <= c.i; j++ {
		if c.q.at(j).full() {
			*c.start = j + 1
		} else {
			return
		}
	}

	if *c.start == c.q.len() {
		c.q.grow()
	}
}
