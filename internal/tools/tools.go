// Package tools holds the capability-described tool set: each tool reports
// a self-describing schema and builds either a Model (primitive builders)
// or an Operation (transform descriptors) from named parameters. Tools are
// stateless; invoking one constructs a value and nothing else.
package tools

import (
	"errors"
	"fmt"

	"cad-engine/internal/geom"
	"cad-engine/internal/model"
)

// ErrInvalidArgument marks malformed tool parameters (wrong type, missing
// required field, bad NACA code). The caller rejects the record and
// continues the batch.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrToolNotFound marks an invocation of an unregistered tool name.
// Non-fatal: the record is skipped.
var ErrToolNotFound = errors.New("tool not found")

// Tool type tags, used by the caller to route a tool's output.
const (
	TypeModel     = "model"
	TypeOperation = "operation"
)

// Param describes one tool parameter for the upstream caller.
type Param struct {
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Default     interface{} `json:"default,omitempty"`
	Required    bool        `json:"required"`
}

// Descriptor is a tool's self-describing schema.
type Descriptor struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	ToolType    string           `json:"tool_type"`
	Parameters  map[string]Param `json:"parameters"`
}

// Result is the sum of what a tool can produce: exactly one field is set.
type Result struct {
	Model     *model.Model
	Operation *model.Operation
}

// Tool is the capability pair every registered tool implements.
type Tool interface {
	Descriptor() Descriptor
	Invoke(args map[string]interface{}) (Result, error)
}

// Options carry the default dimensions surfaced in tool descriptors and
// used for optional parameters at invoke time. Overridable from the
// primitive defaults file.
type Options struct {
	CubeSize     [3]float32
	CylinderSize [3]float32 // radius_x, radius_y, height
	NacaDigits   string
	NacaChord    float32
	NacaSheet    float32
	Resolution   int
}

// DefaultOptions returns the built-in defaults (unit primitives, a thin
// symmetric airfoil).
func DefaultOptions() Options {
	return Options{
		CubeSize:     [3]float32{1, 1, 1},
		CylinderSize: [3]float32{1, 1, 1},
		NacaDigits:   "0012",
		NacaChord:    1,
		NacaSheet:    0.01,
		Resolution:   50,
	}
}

// Registry maps tool names to tools. Lookup is by exact name match.
type Registry struct {
	order []string
	tools map[string]Tool
}

// NewRegistry returns a registry holding the built-in tool set: the four
// primitive builders and the rigid transform.
func NewRegistry(opts Options) *Registry {
	r := &Registry{tools: make(map[string]Tool)}
	r.Register(&Cube{Opts: opts})
	r.Register(&Cylinder{Opts: opts})
	r.Register(&HalfCylinder{Opts: opts})
	r.Register(&NACA4{Opts: opts})
	r.Register(&RigidTransform{})
	return r
}

// Register adds a tool under its descriptor name, replacing any previous
// tool with that name.
func (r *Registry) Register(t Tool) {
	name := t.Descriptor().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Lookup returns the tool with the given name or ErrToolNotFound.
func (r *Registry) Lookup(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrToolNotFound, name)
	}
	return t, nil
}

// Descriptors returns every tool's schema in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Descriptor())
	}
	return out
}

// Parameter extraction helpers. JSON-decoded arguments arrive as
// map[string]interface{} with float64 numbers.

func stringArg(args map[string]interface{}, name string, required bool, def string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		if required {
			return "", fmt.Errorf("%w: missing required parameter %q", ErrInvalidArgument, name)
		}
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: parameter %q must be a string", ErrInvalidArgument, name)
	}
	return s, nil
}

func floatArg(args map[string]interface{}, name string, required bool, def float32) (float32, error) {
	v, ok := args[name]
	if !ok || v == nil {
		if required {
			return 0, fmt.Errorf("%w: missing required parameter %q", ErrInvalidArgument, name)
		}
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return float32(n), nil
	case float32:
		return n, nil
	case int:
		return float32(n), nil
	default:
		return 0, fmt.Errorf("%w: parameter %q must be a number", ErrInvalidArgument, name)
	}
}

func intArg(args map[string]interface{}, name string, required bool, def int) (int, error) {
	f, err := floatArg(args, name, required, float32(def))
	if err != nil {
		return 0, err
	}
	return int(f), nil
}

func vec3Arg(args map[string]interface{}, name string, def geom.Vec3) (geom.Vec3, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return def, nil
	}
	arr, ok := v.([]interface{})
	if !ok || len(arr) != 3 {
		return def, fmt.Errorf("%w: parameter %q must be [x, y, z]", ErrInvalidArgument, name)
	}
	var out geom.Vec3
	for i := 0; i < 3; i++ {
		switch n := arr[i].(type) {
		case float64:
			out[i] = float32(n)
		case float32:
			out[i] = n
		case int:
			out[i] = float32(n)
		default:
			return def, fmt.Errorf("%w: parameter %q[%d] is not a number", ErrInvalidArgument, name, i)
		}
	}
	return out, nil
}
