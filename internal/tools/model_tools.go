package tools

import (
	"fmt"

	"cad-engine/internal/geom"
	"cad-engine/internal/model"
	"cad-engine/internal/naca"
)

// Cube builds axis-aligned boxes. Cubes are always created centered at the
// origin and repositioned later via a transform operation.
type Cube struct {
	Opts Options
}

func (t *Cube) Descriptor() Descriptor {
	return Descriptor{
		Name:        "Cube",
		Description: "Create a cube model centered at (0,0,0) with the given width, height, and depth.",
		ToolType:    TypeModel,
		Parameters: map[string]Param{
			"name":   {Type: "string", Description: "Name of the cube model", Default: "Cube_1", Required: true},
			"width":  {Type: "float", Description: "Extent along X", Default: t.Opts.CubeSize[0], Required: true},
			"height": {Type: "float", Description: "Extent along Y", Default: t.Opts.CubeSize[1], Required: true},
			"depth":  {Type: "float", Description: "Extent along Z", Default: t.Opts.CubeSize[2], Required: true},
		},
	}
}

func (t *Cube) Invoke(args map[string]interface{}) (Result, error) {
	name, err := stringArg(args, "name", true, "")
	if err != nil {
		return Result{}, err
	}
	width, err := floatArg(args, "width", true, 0)
	if err != nil {
		return Result{}, err
	}
	height, err := floatArg(args, "height", true, 0)
	if err != nil {
		return Result{}, err
	}
	depth, err := floatArg(args, "depth", true, 0)
	if err != nil {
		return Result{}, err
	}
	return Result{Model: &model.Model{
		Name:        name,
		Description: t.Descriptor().Description,
		Type:        model.TypeCube,
		BoxSize:     geom.Vec3{width, height, depth},
		Params:      model.CubeParams{Width: width, Height: height, Depth: depth},
	}}, nil
}

// Cylinder builds cylinders with the axis along local Z. Unequal radii give
// an elliptical cross-section. Position may be supplied directly.
type Cylinder struct {
	Opts Options
}

func (t *Cylinder) Descriptor() Descriptor {
	return Descriptor{
		Name:        "Cylinder",
		Description: "Create a cylinder model with the given radii and height, axis along Z.",
		ToolType:    TypeModel,
		Parameters: map[string]Param{
			"name":     {Type: "string", Description: "Name of the cylinder model", Default: "Cylinder_1", Required: true},
			"radius_x": {Type: "float", Description: "Radius along X", Default: t.Opts.CylinderSize[0], Required: true},
			"radius_y": {Type: "float", Description: "Radius along Y (usually same as radius_x)", Default: t.Opts.CylinderSize[1], Required: true},
			"height":   {Type: "float", Description: "Height along Z", Default: t.Opts.CylinderSize[2], Required: true},
			"coord_x":  {Type: "float", Description: "X coordinate of the center", Default: 0.0, Required: false},
			"coord_y":  {Type: "float", Description: "Y coordinate of the center", Default: 0.0, Required: false},
			"coord_z":  {Type: "float", Description: "Z coordinate of the center", Default: 0.0, Required: false},
		},
	}
}

func (t *Cylinder) Invoke(args map[string]interface{}) (Result, error) {
	m, err := cylinderModel(args, model.TypeCylinder, t.Descriptor().Description, true)
	if err != nil {
		return Result{}, err
	}
	return Result{Model: m}, nil
}

// HalfCylinder builds a cylinder cut in half along the plane through its
// axis; the cut itself happens at materialization since it needs boolean
// mesh work. Always centered at the origin.
type HalfCylinder struct {
	Opts Options
}

func (t *HalfCylinder) Descriptor() Descriptor {
	return Descriptor{
		Name:        "HalfCylinder",
		Description: "Create a half-cylinder model centered at (0,0,0): a cylinder cut by the plane through its axis, so the front view is a rectangle.",
		ToolType:    TypeModel,
		Parameters: map[string]Param{
			"name":     {Type: "string", Description: "Name of the half-cylinder model", Default: "HalfCylinder_1", Required: true},
			"radius_x": {Type: "float", Description: "Radius along X", Default: t.Opts.CylinderSize[0], Required: true},
			"radius_y": {Type: "float", Description: "Radius along Y (usually same as radius_x)", Default: t.Opts.CylinderSize[1], Required: true},
			"height":   {Type: "float", Description: "Height along Z", Default: t.Opts.CylinderSize[2], Required: true},
		},
	}
}

func (t *HalfCylinder) Invoke(args map[string]interface{}) (Result, error) {
	m, err := cylinderModel(args, model.TypeHalfCylinder, t.Descriptor().Description, false)
	if err != nil {
		return Result{}, err
	}
	return Result{Model: m}, nil
}

// cylinderModel is shared by Cylinder and HalfCylinder; withPosition allows
// the coord_x/y/z parameters.
func cylinderModel(args map[string]interface{}, typ, description string, withPosition bool) (*model.Model, error) {
	name, err := stringArg(args, "name", true, "")
	if err != nil {
		return nil, err
	}
	radiusX, err := floatArg(args, "radius_x", true, 0)
	if err != nil {
		return nil, err
	}
	radiusY, err := floatArg(args, "radius_y", true, 0)
	if err != nil {
		return nil, err
	}
	height, err := floatArg(args, "height", true, 0)
	if err != nil {
		return nil, err
	}
	var pos geom.Vec3
	if withPosition {
		for i, key := range []string{"coord_x", "coord_y", "coord_z"} {
			c, err := floatArg(args, key, false, 0)
			if err != nil {
				return nil, err
			}
			pos[i] = c
		}
	}
	return &model.Model{
		Name:        name,
		Description: description,
		Type:        typ,
		Position:    pos,
		BoxSize:     geom.Vec3{2 * radiusX, 2 * radiusY, height},
		Params:      model.CylinderParams{RadiusX: radiusX, RadiusY: radiusY, Height: height},
	}, nil
}

// NACA4 builds a thin airfoil sheet from a 4-digit designation, for wing
// work. The designation is validated here so a bad code rejects the record
// instead of reaching the materializer.
type NACA4 struct {
	Opts Options
}

func (t *NACA4) Descriptor() Descriptor {
	return Descriptor{
		Name:        "NACA4",
		Description: "Create a NACA 4-digit airfoil model: a thin sheet with the NACA profile, chord along X.",
		ToolType:    TypeModel,
		Parameters: map[string]Param{
			"name":         {Type: "string", Description: "Name of the airfoil model", Default: "NACA_" + t.Opts.NacaDigits, Required: true},
			"naca_digits":  {Type: "string", Description: "4-digit NACA designation (e.g. '0012', '2412')", Default: t.Opts.NacaDigits, Required: true},
			"chord_length": {Type: "float", Description: "Chord length along X", Default: t.Opts.NacaChord, Required: true},
			"thickness":    {Type: "float", Description: "Sheet thickness along Y", Default: t.Opts.NacaSheet, Required: true},
			"resolution":   {Type: "integer", Description: "Number of points on the airfoil curve (higher = smoother)", Default: t.Opts.Resolution, Required: false},
			"coord_x":      {Type: "float", Description: "X coordinate of the center", Default: 0.0, Required: false},
			"coord_y":      {Type: "float", Description: "Y coordinate of the center", Default: 0.0, Required: false},
			"coord_z":      {Type: "float", Description: "Z coordinate of the center", Default: 0.0, Required: false},
		},
	}
}

func (t *NACA4) Invoke(args map[string]interface{}) (Result, error) {
	name, err := stringArg(args, "name", true, "")
	if err != nil {
		return Result{}, err
	}
	digits, err := stringArg(args, "naca_digits", true, "")
	if err != nil {
		return Result{}, err
	}
	prm, err := naca.Parse(digits)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	chord, err := floatArg(args, "chord_length", true, 0)
	if err != nil {
		return Result{}, err
	}
	thickness, err := floatArg(args, "thickness", true, 0)
	if err != nil {
		return Result{}, err
	}
	resolution, err := intArg(args, "resolution", false, t.Opts.Resolution)
	if err != nil {
		return Result{}, err
	}
	var pos geom.Vec3
	for i, key := range []string{"coord_x", "coord_y", "coord_z"} {
		c, err := floatArg(args, key, false, 0)
		if err != nil {
			return Result{}, err
		}
		pos[i] = c
	}
	return Result{Model: &model.Model{
		Name:        name,
		Description: t.Descriptor().Description,
		Type:        model.TypeAirfoil,
		Position:    pos,
		// Approximate footprint: chord (X), sheet (Y), twice the max
		// thickness offset (Z).
		BoxSize: geom.Vec3{chord, thickness, chord * prm.ThicknessRatio * 2},
		Params: model.AirfoilParams{
			Digits:         digits,
			ChordLength:    chord,
			SheetThickness: thickness,
			Resolution:     resolution,
			MaxCamber:      prm.MaxCamber,
			CamberPosition: prm.CamberPosition,
			ThicknessRatio: prm.ThicknessRatio,
		},
	}}, nil
}
