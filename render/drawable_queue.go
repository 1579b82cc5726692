// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"math"
	"slices"
)

// Sentinel sort keys.
var (
	// SortKeyFirst orders a drawable before every other drawable.
	SortKeyFirst = math.Inf(-1)

	// SortKeyLast orders a drawable after every other drawable.
	SortKeyLast = math.Inf(1)
)

type queueEntry struct {
	drawable Drawable
	key      float64
	ordinal  int
}

// DrawableQueue is an ordered multiset of drawables keyed by sort key.
//
// Poll drains entries in non-decreasing key order; entries with equal keys
// drain in the order they were offered. Sorting is deferred until the first
// Poll, Peek or At after an Offer and reuses the queue's storage, so a queue
// that is cleared and refilled every frame does not allocate once warm.
//
// DrawableQueue is not safe for concurrent use.
type DrawableQueue struct {
	entries  []queueEntry
	position int
	ordinal  int
	sorted   bool
}

// Offer appends d with the given sort key. NaN keys sort as SortKeyLast.
// A nil drawable is ignored.
func (q *DrawableQueue) Offer(d Drawable, key float64) {
	if d == nil {
		return
	}
	if math.IsNaN(key) {
		key = SortKeyLast
	}
	q.entries = append(q.entries, queueEntry{drawable: d, key: key, ordinal: q.ordinal})
	q.ordinal++
	q.sorted = false
}

// Len returns the number of entries, drained or not.
func (q *DrawableQueue) Len() int {
	return len(q.entries)
}

// Remaining returns the number of entries not yet polled.
func (q *DrawableQueue) Remaining() int {
	return len(q.entries) - q.position
}

// Peek returns the next drawable without removing it, or nil when drained.
func (q *DrawableQueue) Peek() Drawable {
	q.sort()
	if q.position >= len(q.entries) {
		return nil
	}
	return q.entries[q.position].drawable
}

// PeekKey returns the sort key of the next drawable.
func (q *DrawableQueue) PeekKey() (float64, bool) {
	q.sort()
	if q.position >= len(q.entries) {
		return 0, false
	}
	return q.entries[q.position].key, true
}

// Poll removes and returns the drawable with the smallest remaining key,
// or nil when the queue is drained.
func (q *DrawableQueue) Poll() Drawable {
	q.sort()
	if q.position >= len(q.entries) {
		return nil
	}
	d := q.entries[q.position].drawable
	q.position++
	return d
}

// At returns the i-th drawable in sort order regardless of the drain
// position.
func (q *DrawableQueue) At(i int) Drawable {
	q.sort()
	return q.entries[i].drawable
}

// Rewind resets the drain position so the queue can be iterated again.
// Contents are kept.
func (q *DrawableQueue) Rewind() {
	q.position = 0
}

// Clear recycles every drawable and empties the queue, keeping capacity.
func (q *DrawableQueue) Clear() {
	for i := range q.entries {
		if d := q.entries[i].drawable; d != nil {
			d.Recycle()
		}
	}
	clear(q.entries)
	q.entries = q.entries[:0]
	q.position = 0
	q.ordinal = 0
	q.sorted = true
}

// sort orders the undrained entries. Already polled entries keep their
// place so Rewind replays what was drawn.
func (q *DrawableQueue) sort() {
	if q.sorted {
		return
	}
	slices.SortFunc(q.entries[q.position:], compareEntries)
	q.sorted = true
}

func compareEntries(a, b queueEntry) int {
	if c := cmp.Compare(a.key, b.key); c != 0 {
		return c
	}
	return cmp.Compare(a.ordinal, b.ordinal)
}
