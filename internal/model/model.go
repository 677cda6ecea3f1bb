// Package model defines the Model and Operation value types the rest of the
// pipeline works on. A Model is created once by a primitive-builder tool and
// keeps its type for life; its pose and box may be mutated by applying
// operations. An Operation is created by the transform tool and consumed
// exactly once by the materializer, then retained only for audit.
package model

import (
	"encoding/json"
	"fmt"

	"cad-engine/internal/geom"
)

// Model type tags. The set is closed per release but new tags may be added
// alongside a materializer rule.
const (
	TypeCube         = "cube"
	TypeCylinder     = "cylinder"
	TypeHalfCylinder = "half-cylinder"
	TypeAirfoil      = "naca4-airfoil"
)

// TypeParams is the per-type parameter payload of a Model. Each primitive
// type carries its own strongly typed struct instead of an untyped map.
type TypeParams interface {
	typeTag() string
}

// CubeParams are the cube's dimensions. They duplicate BoxSize; kept for
// symmetry with the other types.
type CubeParams struct {
	Width  float32 `json:"width"`
	Height float32 `json:"height"`
	Depth  float32 `json:"depth"`
}

func (CubeParams) typeTag() string { return TypeCube }

// CylinderParams describe a (possibly elliptical) cylinder with its axis
// along local Z. Shared by cylinder and half-cylinder.
type CylinderParams struct {
	RadiusX float32 `json:"radius_x"`
	RadiusY float32 `json:"radius_y"`
	Height  float32 `json:"height"`
}

func (CylinderParams) typeTag() string { return TypeCylinder }

// AirfoilParams describe a NACA 4-digit airfoil sheet. The derived fields
// (MaxCamber, CamberPosition, ThicknessRatio) are decoded from Digits at
// creation time and carried for inspection.
type AirfoilParams struct {
	Digits         string  `json:"naca_digits"`
	ChordLength    float32 `json:"chord_length"`
	SheetThickness float32 `json:"sheet_thickness"`
	Resolution     int     `json:"resolution"`
	MaxCamber      float32 `json:"max_camber"`
	CamberPosition float32 `json:"max_camber_position"`
	ThicknessRatio float32 `json:"thickness_ratio"`
}

func (AirfoilParams) typeTag() string { return TypeAirfoil }

// Model is a named geometric instance. Position is the world-space center,
// Orientation holds pitch/yaw/roll in degrees (combined as Rz·Ry·Rx), and
// BoxSize is an axis-aligned extent used for cheap transform bookkeeping —
// not necessarily the true mesh bounds after rotation.
type Model struct {
	Name        string
	Description string
	Type        string
	Position    geom.Vec3
	Orientation geom.Vec3 // pitch (X), yaw (Y), roll (Z), degrees
	BoxSize     geom.Vec3
	Params      TypeParams
}

// Cylinder returns the cylinder parameters, defaulting any absent struct
// from BoxSize (radii = half extents, height = Z extent). Every field the
// materializer reads must come back populated.
func (m *Model) Cylinder() CylinderParams {
	if p, ok := m.Params.(CylinderParams); ok {
		return p
	}
	return CylinderParams{
		RadiusX: m.BoxSize[0] / 2,
		RadiusY: m.BoxSize[1] / 2,
		Height:  m.BoxSize[2],
	}
}

// Airfoil returns the airfoil parameters, defaulting any absent struct from
// BoxSize (chord = X extent, sheet thickness = Y extent).
func (m *Model) Airfoil() AirfoilParams {
	if p, ok := m.Params.(AirfoilParams); ok {
		return p
	}
	return AirfoilParams{
		Digits:         "0012",
		ChordLength:    m.BoxSize[0],
		SheetThickness: m.BoxSize[1],
		Resolution:     50,
		ThicknessRatio: 0.12,
	}
}

// ApplyRigidTransform mutates the model in place: position and orientation
// accumulate additively, box size scales uniformly. Type parameters are
// deliberately left untouched — the stored radius/height/chord of a
// cylinder or airfoil do not follow box_size under repeated scaling. This
// asymmetry is the documented behavior; do not "fix" it here.
func (m *Model) ApplyRigidTransform(translation, rotation geom.Vec3, scale float32) {
	m.Position = m.Position.Add(translation)
	m.Orientation = m.Orientation.Add(rotation)
	m.BoxSize = m.BoxSize.Scale(scale)
}

// String implements fmt.Stringer for terminal logs.
func (m *Model) String() string {
	return fmt.Sprintf("Model(name=%s, type=%s, pos=(%g, %g, %g), orient=(%g, %g, %g))",
		m.Name, m.Type,
		m.Position[0], m.Position[1], m.Position[2],
		m.Orientation[0], m.Orientation[1], m.Orientation[2])
}

// modelJSON is the wire form of Model. type_parameters is kept as raw JSON
// so decoding can pick the parameter struct from the type tag.
type modelJSON struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        string          `json:"type"`
	Position    [3]float32      `json:"position"`
	Orientation [3]float32      `json:"orientation"`
	BoxSize     [3]float32      `json:"box_size"`
	Params      json.RawMessage `json:"type_parameters,omitempty"`
}

// MarshalJSON encodes the model with its typed parameters under
// "type_parameters".
func (m *Model) MarshalJSON() ([]byte, error) {
	out := modelJSON{
		Name:        m.Name,
		Description: m.Description,
		Type:        m.Type,
		Position:    m.Position,
		Orientation: m.Orientation,
		BoxSize:     m.BoxSize,
	}
	if m.Params != nil {
		raw, err := json.Marshal(m.Params)
		if err != nil {
			return nil, err
		}
		out.Params = raw
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes the model, selecting the parameter struct from the
// type tag. Unknown types keep nil parameters; the materializer defaults
// from box_size or skips them.
func (m *Model) UnmarshalJSON(data []byte) error {
	var in modelJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	m.Name = in.Name
	m.Description = in.Description
	m.Type = in.Type
	m.Position = in.Position
	m.Orientation = in.Orientation
	m.BoxSize = in.BoxSize
	m.Params = nil
	if len(in.Params) == 0 {
		return nil
	}
	switch in.Type {
	case TypeCube:
		var p CubeParams
		if err := json.Unmarshal(in.Params, &p); err != nil {
			return err
		}
		m.Params = p
	case TypeCylinder, TypeHalfCylinder:
		var p CylinderParams
		if err := json.Unmarshal(in.Params, &p); err != nil {
			return err
		}
		m.Params = p
	case TypeAirfoil:
		var p AirfoilParams
		if err := json.Unmarshal(in.Params, &p); err != nil {
			return err
		}
		m.Params = p
	default:
		// Unknown tag: parameters are dropped rather than kept untyped.
	}
	return nil
}
