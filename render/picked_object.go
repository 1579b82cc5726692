// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/worldwind/geom"
)

// PickedObject identifies one hit-testable entity within a single Frame's
// pick session. Identifiers are only unique within that session; 0 is
// reserved for "no object".
type PickedObject struct {
	identifier uint32
	userObject any
	position   geom.Position
	terrain    bool
	layer      Layer
	onTop      bool
}

// NewPickedObject returns a picked object for a renderable user object
// drawn by layer (which may be nil).
func NewPickedObject(id uint32, userObject any, layer Layer) *PickedObject {
	return &PickedObject{identifier: id, userObject: userObject, layer: layer}
}

// NewTerrainPickedObject returns a picked object for the terrain surface at
// the given geographic position.
func NewTerrainPickedObject(id uint32, pos geom.Position) *PickedObject {
	return &PickedObject{identifier: id, position: pos, terrain: true}
}

// Identifier returns the pick identifier.
func (po *PickedObject) Identifier() uint32 { return po.identifier }

// UserObject returns the picked renderable, or the terrain Position for
// terrain picks.
func (po *PickedObject) UserObject() any {
	if po.terrain {
		return po.position
	}
	return po.userObject
}

// TerrainPosition returns the picked geographic position when this object
// is the terrain.
func (po *PickedObject) TerrainPosition() (geom.Position, bool) {
	return po.position, po.terrain
}

// IsTerrain reports whether the object is the terrain surface.
func (po *PickedObject) IsTerrain() bool { return po.terrain }

// Layer returns the layer that produced the object, if any.
func (po *PickedObject) Layer() Layer { return po.layer }

// IsOnTop reports whether the object was visible at a picked pixel.
func (po *PickedObject) IsOnTop() bool { return po.onTop }

// MarkOnTop flags the object as visible at a picked pixel.
func (po *PickedObject) MarkOnTop() { po.onTop = true }

func (po *PickedObject) String() string {
	if po.terrain {
		return fmt.Sprintf("PickedObject{id=%d terrain=%v onTop=%v}", po.identifier, po.position, po.onTop)
	}
	return fmt.Sprintf("PickedObject{id=%d object=%v onTop=%v}", po.identifier, po.userObject, po.onTop)
}
