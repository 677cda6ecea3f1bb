// Package dispatch turns a tool-invocation batch — the JSON the upstream
// natural-language interface produces — into scene updates. Individual bad
// records are skipped or rejected and the batch continues; only a
// structurally invalid top-level list aborts.
package dispatch

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"cad-engine/internal/history"
	"cad-engine/internal/logging"
	"cad-engine/internal/scene"
	"cad-engine/internal/tools"
)

// Call is one tool-invocation record. Records with HasContent false, an
// unknown tool, or a missing tool name are skipped, not errors.
type Call struct {
	Tool       string                 `json:"tool"`
	ToolType   string                 `json:"tool_type"`
	Parameters map[string]interface{} `json:"tool_parameters"`
	HasContent bool                   `json:"has_content"`
}

// Result summarizes one applied batch.
type Result struct {
	ModelsCreated    int
	OperationsQueued int
	Skipped          int
	Rejected         []error // per-record InvalidArgument failures
}

var fenceRe = regexp.MustCompile("^```\\w*\\n?")

// ParseCalls extracts the invocation list from raw text. Tolerates markdown
// fences and surrounding prose the way upstream replies tend to arrive:
// the first balanced JSON array is decoded. A single top-level record
// object is accepted too. Anything else is a structural error and fatal
// for the batch.
func ParseCalls(raw string) ([]Call, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = fenceRe.ReplaceAllString(raw, "")
		raw = strings.TrimSuffix(raw, "```")
		raw = strings.TrimSpace(raw)
	}

	start := strings.IndexAny(raw, "[{")
	if start < 0 {
		return nil, fmt.Errorf("no JSON in invocation batch")
	}
	opener := raw[start]
	closer := byte(']')
	if opener == '{' {
		closer = '}'
	}
	depth := 0
	end := -1
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == opener:
			depth++
		case c == closer:
			depth--
			if depth == 0 {
				end = i + 1
			}
		}
		if end > 0 {
			break
		}
	}
	if end < 0 {
		return nil, fmt.Errorf("unbalanced JSON in invocation batch")
	}
	raw = raw[start:end]

	if opener == '{' {
		var single Call
		if err := json.Unmarshal([]byte(raw), &single); err != nil {
			return nil, fmt.Errorf("invocation batch invalid: %w", err)
		}
		return []Call{single}, nil
	}
	var calls []Call
	if err := json.Unmarshal([]byte(raw), &calls); err != nil {
		return nil, fmt.Errorf("invocation batch invalid: %w", err)
	}
	return calls, nil
}

// Dispatcher routes calls against a tool registry into a scene. The audit
// log, when set, records every accepted call.
type Dispatcher struct {
	Registry *tools.Registry
	Audit    *history.Log
}

// New returns a dispatcher over the given registry.
func New(reg *tools.Registry) *Dispatcher {
	return &Dispatcher{Registry: reg}
}

// Apply runs each call in order against the scene: primitive builders add
// models (last writer wins on name collision), the transform tool queues
// operations. Skips and per-record rejections never stop the batch.
func (d *Dispatcher) Apply(scn *scene.Scene, calls []Call) Result {
	var res Result
	for i, c := range calls {
		if !c.HasContent || c.Tool == "" {
			logging.Debug("record %d: no content; skipped", i+1)
			res.Skipped++
			continue
		}
		tool, err := d.Registry.Lookup(c.Tool)
		if err != nil {
			logging.Warn("record %d: %v; skipped", i+1, err)
			res.Skipped++
			continue
		}
		out, err := tool.Invoke(c.Parameters)
		if err != nil {
			logging.Warn("record %d (%s): %v; rejected", i+1, c.Tool, err)
			res.Rejected = append(res.Rejected, fmt.Errorf("record %d (%s): %w", i+1, c.Tool, err))
			continue
		}
		// Route by what the tool actually produced; the tool_type tag is
		// for the upstream caller.
		switch {
		case out.Model != nil:
			if c.ToolType != "" && c.ToolType != tools.TypeModel {
				logging.Debug("record %d: tool_type %q but tool produced a model", i+1, c.ToolType)
			}
			scn.Add(out.Model)
			res.ModelsCreated++
			d.audit(fmt.Sprintf("tool %s -> %s", c.Tool, out.Model))
		case out.Operation != nil:
			if c.ToolType != "" && c.ToolType != tools.TypeOperation {
				logging.Debug("record %d: tool_type %q but tool produced an operation", i+1, c.ToolType)
			}
			scn.PushOperation(out.Operation)
			res.OperationsQueued++
			d.audit(fmt.Sprintf("tool %s -> %s", c.Tool, out.Operation))
		default:
			logging.Warn("record %d (%s): tool produced nothing; skipped", i+1, c.Tool)
			res.Skipped++
		}
	}
	return res
}

func (d *Dispatcher) audit(line string) {
	if d.Audit != nil {
		d.Audit.Record(line)
	}
}

// IsInvalidArgument reports whether err is a per-record parameter failure.
func IsInvalidArgument(err error) bool {
	return errors.Is(err, tools.ErrInvalidArgument)
}
