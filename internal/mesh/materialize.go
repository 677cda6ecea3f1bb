package mesh

import (
	"errors"
	"fmt"

	"cad-engine/internal/geom"
	"cad-engine/internal/logging"
	"cad-engine/internal/model"
)

// NamedMesh pairs an output mesh with the model name that produced it.
type NamedMesh struct {
	Name string
	Mesh *Mesh
}

// Materializer converts a scene's models into world-space meshes. Processing
// order is fixed: apply pending operations to the model fields, build one
// local-space mesh per model by type, then move each mesh into world space.
type Materializer struct {
	Slices int // cylinder cross-section resolution
}

// NewMaterializer returns a materializer with default discretization.
func NewMaterializer() *Materializer {
	return &Materializer{Slices: DefaultSlices}
}

// ApplyOperations mutates models per the pending operations. Only the first
// target name of each operation is considered; an operation whose target
// matches no model is a no-op, not an error.
func ApplyOperations(models []*model.Model, ops []*model.Operation) {
	for _, op := range ops {
		if op.Type != model.OpRigidTransform {
			logging.Warn("skipping operation %s: unknown type %q", op.ID, op.Type)
			continue
		}
		if len(op.Targets) == 0 {
			logging.Warn("skipping operation %s: no target", op.ID)
			continue
		}
		target := op.Targets[0]
		applied := false
		for _, m := range models {
			if m.Name == target {
				m.ApplyRigidTransform(op.Translation, op.Rotation, op.Scale)
				applied = true
				break
			}
		}
		if !applied {
			logging.Warn("operation %s targets unknown model %q; skipped", op.ID, target)
		}
	}
}

// Materialize applies ops to models, then returns one world-space mesh per
// model in input order. Models with an unrecognized type yield no mesh and
// are skipped; construction failures degrade to the per-type fallback, so
// the batch always completes.
func (mt *Materializer) Materialize(models []*model.Model, ops []*model.Operation) []NamedMesh {
	ApplyOperations(models, ops)

	out := make([]NamedMesh, 0, len(models))
	for _, m := range models {
		msh, err := mt.build(m)
		if err != nil {
			if errors.Is(err, ErrUnsupportedType) {
				logging.Warn("model %q: %v; skipped", m.Name, err)
				continue
			}
			// build never lets a GeometryError through; belt and braces.
			logging.Error("model %q: %v; skipped", m.Name, err)
			continue
		}
		world := geom.Compose(m.Position, m.Orientation[0], m.Orientation[1], m.Orientation[2])
		msh.Transform(world)
		out = append(out, NamedMesh{Name: m.Name, Mesh: msh})
	}
	return out
}

// build constructs the local-space mesh for one model, applying the
// per-type fallback when the primary construction fails.
func (mt *Materializer) build(m *model.Model) (*Mesh, error) {
	switch m.Type {
	case model.TypeCube:
		return Box(m.BoxSize), nil

	case model.TypeCylinder:
		p := m.Cylinder()
		return Cylinder(p.RadiusX, p.RadiusY, p.Height, mt.Slices), nil

	case model.TypeHalfCylinder:
		p := m.Cylinder()
		msh, err := HalfCylinder(p.RadiusX, p.RadiusY, p.Height, mt.Slices)
		if err != nil {
			// Fallback: the uncut cylinder beats losing the model.
			logging.Warn("model %q: %v; falling back to full cylinder", m.Name, err)
			return Cylinder(p.RadiusX, p.RadiusY, p.Height, mt.Slices), nil
		}
		return msh, nil

	case model.TypeAirfoil:
		p := m.Airfoil()
		msh, err := AirfoilSheet(p)
		if err != nil {
			// Fallback: a flat box in the airfoil's footprint.
			logging.Warn("model %q: %v; falling back to flat box", m.Name, err)
			return Box(geom.Vec3{p.ChordLength, p.SheetThickness, 0.1 * p.ChordLength}), nil
		}
		return msh, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedType, m.Type)
	}
}
