package dispatch

import (
	"strings"
	"testing"

	"cad-engine/internal/geom"
	"cad-engine/internal/history"
	"cad-engine/internal/mesh"
	"cad-engine/internal/scene"
	"cad-engine/internal/tools"
)

const cubeBatch = `[
  {"tool": "Cube", "tool_type": "model", "has_content": true,
   "tool_parameters": {"name": "C1", "width": 4, "height": 4, "depth": 4}},
  {"tool": "transform_rigid", "tool_type": "operation", "has_content": true,
   "tool_parameters": {"model": "C1", "translation": [1, 2, 3]}}
]`

func TestParseCallsPlainArray(t *testing.T) {
	calls, err := ParseCalls(cubeBatch)
	if err != nil {
		t.Fatalf("ParseCalls: %v", err)
	}
	if len(calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(calls))
	}
	if calls[0].Tool != "Cube" || !calls[0].HasContent {
		t.Errorf("first call: %+v", calls[0])
	}
	if calls[1].Tool != "transform_rigid" || calls[1].ToolType != tools.TypeOperation {
		t.Errorf("second call: %+v", calls[1])
	}
}

func TestParseCallsFencedWithProse(t *testing.T) {
	raw := "Here is the plan:\n```json\n" + cubeBatch + "\n```\nDone."
	calls, err := ParseCalls(raw)
	if err != nil {
		t.Fatalf("ParseCalls: %v", err)
	}
	if len(calls) != 2 {
		t.Errorf("got %d calls, want 2", len(calls))
	}
}

func TestParseCallsSingleObject(t *testing.T) {
	raw := `{"tool": "Cube", "has_content": true,
	  "tool_parameters": {"name": "C1", "width": 1, "height": 1, "depth": 1}}`
	calls, err := ParseCalls(raw)
	if err != nil {
		t.Fatalf("ParseCalls: %v", err)
	}
	if len(calls) != 1 || calls[0].Tool != "Cube" {
		t.Errorf("calls = %+v", calls)
	}
}

func TestParseCallsBracketsInsideStrings(t *testing.T) {
	raw := `[{"tool": "Cube", "has_content": true,
	  "tool_parameters": {"name": "weird ] { name", "width": 1, "height": 1, "depth": 1}}]`
	calls, err := ParseCalls(raw)
	if err != nil {
		t.Fatalf("ParseCalls: %v", err)
	}
	if calls[0].Parameters["name"] != "weird ] { name" {
		t.Errorf("name = %v", calls[0].Parameters["name"])
	}
}

func TestParseCallsStructuralFailures(t *testing.T) {
	for _, raw := range []string{
		"no json here at all",
		"[ {\"tool\": \"Cube\"",   // unbalanced
		"[1, 2, 3]",               // not records
		`{"tool": {"nested": 1}}`, // wrong field type
	} {
		if _, err := ParseCalls(raw); err == nil {
			t.Errorf("ParseCalls(%q): expected error", raw)
		}
	}
}

func TestApplyRoutesModelsAndOperations(t *testing.T) {
	d := New(tools.NewRegistry(tools.DefaultOptions()))
	scn := scene.New()
	calls, err := ParseCalls(cubeBatch)
	if err != nil {
		t.Fatal(err)
	}
	res := d.Apply(scn, calls)
	if res.ModelsCreated != 1 || res.OperationsQueued != 1 || res.Skipped != 0 || len(res.Rejected) != 0 {
		t.Fatalf("result = %+v", res)
	}
	m := scn.Lookup("C1")
	if m == nil {
		t.Fatal("C1 not in scene")
	}
	if m.BoxSize != (geom.Vec3{4, 4, 4}) {
		t.Errorf("box size = %v", m.BoxSize)
	}
	ops := scn.Operations()
	if len(ops) != 1 || ops[0].Targets[0] != "C1" {
		t.Fatalf("operations = %v", ops)
	}
	if ops[0].Translation != (geom.Vec3{1, 2, 3}) {
		t.Errorf("translation = %v", ops[0].Translation)
	}
}

func TestApplySkipsEmptyAndUnknown(t *testing.T) {
	d := New(tools.NewRegistry(tools.DefaultOptions()))
	scn := scene.New()
	calls := []Call{
		{Tool: "Cube", HasContent: false},
		{Tool: "", HasContent: true},
		{Tool: "Sphere", HasContent: true, Parameters: map[string]interface{}{"name": "s"}},
	}
	res := d.Apply(scn, calls)
	if res.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", res.Skipped)
	}
	if scn.Len() != 0 {
		t.Errorf("scene has %d models, want 0", scn.Len())
	}
}

func TestApplyRejectsBadArgumentsAndContinues(t *testing.T) {
	d := New(tools.NewRegistry(tools.DefaultOptions()))
	scn := scene.New()
	calls := []Call{
		{Tool: "Cube", HasContent: true, Parameters: map[string]interface{}{"name": "bad"}}, // missing dims
		{Tool: "Cube", HasContent: true, Parameters: map[string]interface{}{
			"name": "good", "width": 1.0, "height": 1.0, "depth": 1.0}},
	}
	res := d.Apply(scn, calls)
	if len(res.Rejected) != 1 {
		t.Fatalf("rejected = %v", res.Rejected)
	}
	if !IsInvalidArgument(res.Rejected[0]) {
		t.Errorf("rejection %v is not an invalid-argument error", res.Rejected[0])
	}
	if res.ModelsCreated != 1 || scn.Lookup("good") == nil {
		t.Error("batch did not continue past the rejection")
	}
}

func TestApplyLastWriterWins(t *testing.T) {
	d := New(tools.NewRegistry(tools.DefaultOptions()))
	scn := scene.New()
	calls := []Call{
		{Tool: "Cube", HasContent: true, Parameters: map[string]interface{}{
			"name": "a", "width": 1.0, "height": 1.0, "depth": 1.0}},
		{Tool: "Cube", HasContent: true, Parameters: map[string]interface{}{
			"name": "a", "width": 2.0, "height": 2.0, "depth": 2.0}},
	}
	res := d.Apply(scn, calls)
	if res.ModelsCreated != 2 {
		t.Errorf("models created = %d, want 2", res.ModelsCreated)
	}
	if scn.Len() != 1 {
		t.Errorf("scene has %d models, want 1", scn.Len())
	}
	if m := scn.Lookup("a"); m.BoxSize != (geom.Vec3{2, 2, 2}) {
		t.Errorf("box size = %v, want the later cube", m.BoxSize)
	}
}

func TestFullPipelineCubeTransform(t *testing.T) {
	raw := `[
	  {"tool": "Cube", "tool_type": "model", "has_content": true,
	   "tool_parameters": {"name": "C1", "width": 2, "height": 2, "depth": 2}},
	  {"tool": "transform_rigid", "tool_type": "operation", "has_content": true,
	   "tool_parameters": {"model": "C1", "translation": [1, 2, 3], "rotation": [0, 0, 0], "scale": 2}}
	]`
	calls, err := ParseCalls(raw)
	if err != nil {
		t.Fatal(err)
	}
	d := New(tools.NewRegistry(tools.DefaultOptions()))
	scn := scene.New()
	res := d.Apply(scn, calls)
	if res.ModelsCreated != 1 || res.OperationsQueued != 1 {
		t.Fatalf("result = %+v", res)
	}

	meshes := mesh.NewMaterializer().Materialize(scn.Models(), scn.TakeOperations())
	if len(meshes) != 1 || meshes[0].Name != "C1" {
		t.Fatalf("meshes = %d", len(meshes))
	}
	m := scn.Lookup("C1")
	if m.Position != (geom.Vec3{1, 2, 3}) {
		t.Errorf("position = %v, want (1,2,3)", m.Position)
	}
	if m.BoxSize != (geom.Vec3{4, 4, 4}) {
		t.Errorf("box size = %v, want (4,4,4)", m.BoxSize)
	}
}

func TestTransformReachesEarlierTurnModel(t *testing.T) {
	d := New(tools.NewRegistry(tools.DefaultOptions()))
	mt := mesh.NewMaterializer()
	sess := scene.NewSession()

	turn1 := `[{"tool": "Cube", "tool_type": "model", "has_content": true,
	  "tool_parameters": {"name": "C1", "width": 2, "height": 2, "depth": 2}}]`
	turn2 := `[{"tool": "transform_rigid", "tool_type": "operation", "has_content": true,
	  "tool_parameters": {"model": "C1", "translation": [1, 2, 3], "scale": 2}}]`

	for i, raw := range []string{turn1, turn2} {
		calls, err := ParseCalls(raw)
		if err != nil {
			t.Fatalf("turn %d: %v", i+1, err)
		}
		scn := sess.BeginTurn()
		d.Apply(scn, calls)
		meshes := mt.Materialize(scn.Models(), scn.TakeOperations())
		if len(meshes) != 1 || meshes[0].Name != "C1" {
			t.Fatalf("turn %d produced %d meshes", i+1, len(meshes))
		}
		if err := sess.EndTurn(); err != nil {
			t.Fatalf("turn %d: EndTurn: %v", i+1, err)
		}
	}

	got := sess.Store().Get("C1")
	if got == nil {
		t.Fatal("C1 not retained")
	}
	if got.Position != (geom.Vec3{1, 2, 3}) {
		t.Errorf("position = %v, want (1,2,3)", got.Position)
	}
	if got.BoxSize != (geom.Vec3{4, 4, 4}) {
		t.Errorf("box size = %v, want (4,4,4)", got.BoxSize)
	}
}

func TestApplyAudits(t *testing.T) {
	d := New(tools.NewRegistry(tools.DefaultOptions()))
	d.Audit = history.NewAt("")
	scn := scene.New()
	calls, _ := ParseCalls(cubeBatch)
	d.Apply(scn, calls)

	lines := d.Audit.Lines()
	if len(lines) != 2 {
		t.Fatalf("audit lines = %d, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "Cube") || !strings.Contains(lines[1], "transform_rigid") {
		t.Errorf("audit lines = %v", lines)
	}
}
