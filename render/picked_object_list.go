// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"cmp"
	"slices"
)

// PickedObjectList maps pick identifiers to picked objects for one Frame.
//
// The list is reused across frames; Clear keeps the map's storage so a
// steady pick workload does not allocate. Not safe for concurrent use; a
// Frame's list is touched by one goroutine at a time.
type PickedObjectList struct {
	objects map[uint32]*PickedObject
}

// NewPickedObjectList creates an empty list.
func NewPickedObjectList() *PickedObjectList {
	return &PickedObjectList{objects: make(map[uint32]*PickedObject)}
}

// Count returns the number of objects in the list.
func (l *PickedObjectList) Count() int {
	return len(l.objects)
}

// Offer inserts po, replacing any object with the same identifier.
// A nil object or identifier 0 is ignored.
func (l *PickedObjectList) Offer(po *PickedObject) {
	if po == nil || po.identifier == 0 {
		return
	}
	if l.objects == nil {
		l.objects = make(map[uint32]*PickedObject)
	}
	l.objects[po.identifier] = po
}

// PickedObject returns the object registered under id, or nil.
func (l *PickedObjectList) PickedObject(id uint32) *PickedObject {
	return l.objects[id]
}

// TerrainPickedObject returns the terrain object, or nil.
func (l *PickedObjectList) TerrainPickedObject() *PickedObject {
	for _, po := range l.objects {
		if po.terrain {
			return po
		}
	}
	return nil
}

// TopPickedObject returns an object marked on top, or nil. After a point
// pick at most one object is on top.
func (l *PickedObjectList) TopPickedObject() *PickedObject {
	var top *PickedObject
	for _, po := range l.objects {
		// Lowest identifier wins so the answer is stable across map orders.
		if po.onTop && (top == nil || po.identifier < top.identifier) {
			top = po
		}
	}
	return top
}

// HasNonTerrainObjects reports whether any renderable was picked.
func (l *PickedObjectList) HasNonTerrainObjects() bool {
	for _, po := range l.objects {
		if !po.terrain {
			return true
		}
	}
	return false
}

// Clear removes every object.
func (l *PickedObjectList) Clear() {
	clear(l.objects)
}

// KeepTopObjects removes every object not marked on top.
func (l *PickedObjectList) KeepTopObjects() {
	for id, po := range l.objects {
		if !po.onTop {
			delete(l.objects, id)
		}
	}
}

// KeepTopAndTerrainObjects removes every object that is neither on top nor
// the terrain.
func (l *PickedObjectList) KeepTopAndTerrainObjects() {
	for id, po := range l.objects {
		if !po.onTop && !po.terrain {
			delete(l.objects, id)
		}
	}
}

// Objects returns the objects ordered by identifier.
func (l *PickedObjectList) Objects() []*PickedObject {
	return l.AppendObjects(make([]*PickedObject, 0, len(l.objects)))
}

// AppendObjects appends the objects, ordered by identifier, to dst and
// returns it.
func (l *PickedObjectList) AppendObjects(dst []*PickedObject) []*PickedObject {
	n := len(dst)
	for _, po := range l.objects {
		dst = append(dst, po)
	}
	slices.SortFunc(dst[n:], func(a, b *PickedObject) int {
		return cmp.Compare(a.identifier, b.identifier)
	})
	return dst
}

// Clone returns an independent copy of the list. Picked objects are copied
// by value so the result outlives the Frame that produced it.
func (l *PickedObjectList) Clone() *PickedObjectList {
	c := &PickedObjectList{objects: make(map[uint32]*PickedObject, len(l.objects))}
	for id, po := range l.objects {
		cp := *po
		c.objects[id] = &cp
	}
	return c
}
