package tools

import (
	"cad-engine/internal/geom"
	"cad-engine/internal/model"
)

// RigidTransform produces rigid-transform operations: translate, rotate,
// and uniformly scale a named model. The operation is applied later by the
// materializer.
type RigidTransform struct{}

func (t *RigidTransform) Descriptor() Descriptor {
	return Descriptor{
		Name:        "transform_rigid",
		Description: "Perform a rigid transformation (translation, rotation, uniform scale) on a named model.",
		ToolType:    TypeOperation,
		Parameters: map[string]Param{
			"model":       {Type: "string", Description: "Name of the model to transform", Required: true},
			"translation": {Type: "array", Description: "Translation vector [tx, ty, tz]", Default: []float32{0, 0, 0}, Required: false},
			"rotation":    {Type: "array", Description: "Rotation [pitch, yaw, roll] in degrees", Default: []float32{0, 0, 0}, Required: false},
			"scale":       {Type: "float", Description: "Uniform scale factor", Default: 1.0, Required: false},
		},
	}
}

func (t *RigidTransform) Invoke(args map[string]interface{}) (Result, error) {
	target, err := stringArg(args, "model", true, "")
	if err != nil {
		return Result{}, err
	}
	translation, err := vec3Arg(args, "translation", geom.Vec3{})
	if err != nil {
		return Result{}, err
	}
	rotation, err := vec3Arg(args, "rotation", geom.Vec3{})
	if err != nil {
		return Result{}, err
	}
	scale, err := floatArg(args, "scale", false, 1)
	if err != nil {
		return Result{}, err
	}
	return Result{Operation: model.NewRigidTransform(target, translation, rotation, scale)}, nil
}
