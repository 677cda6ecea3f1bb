package model

import (
	"fmt"

	"github.com/google/uuid"

	"cad-engine/internal/geom"
)

// OpRigidTransform is the only operation type currently defined.
const OpRigidTransform = "rigid_transform"

// Operation is a named transform descriptor. Targets is ordered; the
// materializer applies the operation to the first matching model only.
// The ID ties the operation to audit log entries after it is consumed.
type Operation struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Targets     []string  `json:"target_names"`
	Translation geom.Vec3 `json:"translation"`
	Rotation    geom.Vec3 `json:"rotation"` // degrees
	Scale       float32   `json:"scale"`
}

// NewRigidTransform returns a rigid-transform operation for the named model.
// Zero translation/rotation and scale 1 form the identity.
func NewRigidTransform(target string, translation, rotation geom.Vec3, scale float32) *Operation {
	return &Operation{
		ID:          uuid.NewString(),
		Type:        OpRigidTransform,
		Targets:     []string{target},
		Translation: translation,
		Rotation:    rotation,
		Scale:       scale,
	}
}

// String implements fmt.Stringer for audit entries.
func (o *Operation) String() string {
	target := ""
	if len(o.Targets) > 0 {
		target = o.Targets[0]
	}
	return fmt.Sprintf("Operation(id=%s, type=%s, target=%s, t=(%g, %g, %g), r=(%g, %g, %g), s=%g)",
		o.ID, o.Type, target,
		o.Translation[0], o.Translation[1], o.Translation[2],
		o.Rotation[0], o.Rotation[1], o.Rotation[2], o.Scale)
}
