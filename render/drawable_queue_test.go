// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"math"
	"testing"
)

// testDrawable records draws and recycles.
type testDrawable struct {
	name     string
	draws    int
	recycled int
	err      error
	panicVal any
	onDraw   func(dc *DrawContext)
}

func (d *testDrawable) Draw(dc *DrawContext) error {
	d.draws++
	if d.onDraw != nil {
		d.onDraw(dc)
	}
	if d.panicVal != nil {
		panic(d.panicVal)
	}
	return d.err
}

func (d *testDrawable) Recycle() { d.recycled++ }

func drainNames(q *DrawableQueue) []string {
	var names []string
	for d := q.Poll(); d != nil; d = q.Poll() {
		names = append(names, d.(*testDrawable).name)
	}
	return names
}

func TestDrawableQueue_StableOrder(t *testing.T) {
	var q DrawableQueue
	q.Offer(&testDrawable{name: "k3"}, 3)
	q.Offer(&testDrawable{name: "k1a"}, 1)
	q.Offer(&testDrawable{name: "k1b"}, 1)
	q.Offer(&testDrawable{name: "k2"}, 2)

	got := drainNames(&q)
	want := []string{"k1a", "k1b", "k2", "k3"}
	if len(got) != len(want) {
		t.Fatalf("drained %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestDrawableQueue_ManyEqualKeysKeepOfferOrder(t *testing.T) {
	var q DrawableQueue
	ds := make([]*testDrawable, 200)
	for i := range ds {
		ds[i] = &testDrawable{}
		q.Offer(ds[i], float64(i%3))
	}
	var prevKey float64 = math.Inf(-1)
	prevIndex := map[float64]int{}
	for k := range 3 {
		prevIndex[float64(k)] = -1
	}
	for i := 0; i < len(ds); i++ {
		key, _ := q.PeekKey()
		d := q.Poll().(*testDrawable)
		if key < prevKey {
			t.Fatalf("key %v drained after %v", key, prevKey)
		}
		prevKey = key
		idx := indexOf(ds, d)
		if idx <= prevIndex[key] {
			t.Fatalf("key %v: index %d drained after %d", key, idx, prevIndex[key])
		}
		prevIndex[key] = idx
	}
}

func indexOf(ds []*testDrawable, d *testDrawable) int {
	for i := range ds {
		if ds[i] == d {
			return i
		}
	}
	return -1
}

func TestDrawableQueue_Sentinels(t *testing.T) {
	var q DrawableQueue
	q.Offer(&testDrawable{name: "mid"}, 0)
	q.Offer(&testDrawable{name: "last"}, SortKeyLast)
	q.Offer(&testDrawable{name: "nan"}, math.NaN())
	q.Offer(&testDrawable{name: "first"}, SortKeyFirst)
	q.Offer(&testDrawable{name: "low"}, -1e300)

	got := drainNames(&q)
	want := []string{"first", "low", "mid", "last", "nan"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %s, want %s (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestDrawableQueue_PeekDoesNotRemove(t *testing.T) {
	var q DrawableQueue
	d := &testDrawable{name: "a"}
	q.Offer(d, 1)
	if q.Peek() != d || q.Peek() != d {
		t.Fatal("Peek did not return the head twice")
	}
	if q.Remaining() != 1 {
		t.Errorf("Remaining() = %d, want 1", q.Remaining())
	}
	if q.Poll() != d {
		t.Error("Poll did not return the peeked drawable")
	}
	if q.Poll() != nil || q.Peek() != nil {
		t.Error("drained queue should return nil")
	}
	if _, ok := q.PeekKey(); ok {
		t.Error("PeekKey on drained queue reported ok")
	}
}

func TestDrawableQueue_Rewind(t *testing.T) {
	var q DrawableQueue
	q.Offer(&testDrawable{name: "b"}, 2)
	q.Offer(&testDrawable{name: "a"}, 1)

	first := drainNames(&q)
	q.Rewind()
	second := drainNames(&q)
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("first=%v second=%v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("rewind changed order: %v vs %v", first, second)
		}
	}
	if q.Len() != 2 {
		t.Errorf("Len() = %d, want 2", q.Len())
	}
}

func TestDrawableQueue_At(t *testing.T) {
	var q DrawableQueue
	q.Offer(&testDrawable{name: "b"}, 2)
	q.Offer(&testDrawable{name: "a"}, 1)
	if got := q.At(0).(*testDrawable).name; got != "a" {
		t.Errorf("At(0) = %s, want a", got)
	}
	if got := q.At(1).(*testDrawable).name; got != "b" {
		t.Errorf("At(1) = %s, want b", got)
	}
}

func TestDrawableQueue_ClearRecyclesAndDropsReferences(t *testing.T) {
	var q DrawableQueue
	a, b := &testDrawable{}, &testDrawable{}
	q.Offer(a, 1)
	q.Offer(b, 2)
	_ = q.Poll()

	q.Clear()
	if a.recycled != 1 || b.recycled != 1 {
		t.Errorf("recycled = %d,%d want 1,1", a.recycled, b.recycled)
	}
	if q.Len() != 0 || q.Remaining() != 0 {
		t.Errorf("Len()=%d Remaining()=%d after Clear", q.Len(), q.Remaining())
	}
	full := q.entries[:cap(q.entries)]
	for i := range full[:2] {
		if full[i].drawable != nil {
			t.Errorf("entry %d still references a drawable", i)
		}
	}
}

func TestDrawableQueue_OfferNilIgnored(t *testing.T) {
	var q DrawableQueue
	q.Offer(nil, 1)
	if q.Len() != 0 {
		t.Errorf("Len() = %d, want 0", q.Len())
	}
}

func TestDrawableQueue_SteadyStateNoAllocs(t *testing.T) {
	var q DrawableQueue
	ds := make([]Drawable, 64)
	for i := range ds {
		ds[i] = &testDrawable{}
	}
	fill := func() {
		for i, d := range ds {
			q.Offer(d, float64(len(ds)-i))
		}
		for q.Poll() != nil {
		}
		q.Clear()
	}
	fill() // warm capacity

	allocs := testing.AllocsPerRun(100, fill)
	if allocs != 0 {
		t.Errorf("steady-state fill/drain allocated %v times per run, want 0", allocs)
	}
}

func BenchmarkDrawableQueue_OfferPoll(b *testing.B) {
	var q DrawableQueue
	ds := make([]Drawable, 256)
	for i := range ds {
		ds[i] = &testDrawable{}
	}
	b.ReportAllocs()
	for b.Loop() {
		for i, d := range ds {
			q.Offer(d, float64(i%7))
		}
		for q.Poll() != nil {
		}
		q.Clear()
	}
}
