package output

import (
	"encoding/json"
	"fmt"
	"io"
)

const (
	indentPrefix = ""
	indentSpacer = "  "
)

type jsonPlanRenderer struct {
	stdout io.Writer
	stderr io.Writer
	plan   *Plan
}

// NewJSONPlanRenderer returns a renderer producing the plan document as
// indented JSON on stdout. The document event carries the payload; section
// events are redundant for this rendering and skipped.
func NewJSONPlanRenderer(stdout, stderr io.Writer) PlanRenderer {
	return &jsonPlanRenderer{stdout: stdout, stderr: stderr}
}

func (renderer *jsonPlanRenderer) Handle(event Event) error {
	switch event.Kind {
	case EventKindPlan:
		renderer.plan = event.Plan
		return nil
	case EventKindNotice:
		if event.Notice != nil && renderer.stderr != nil {
			_, writeError := fmt.Fprintln(renderer.stderr, event.Notice.Message)
			return writeError
		}
		return nil
	default:
		return nil
	}
}

func (renderer *jsonPlanRenderer) Flush() error {
	if renderer.stdout == nil {
		return nil
	}
	if renderer.plan == nil {
		return fmt.Errorf("json plan: document event missing from stream")
	}
	encoded, marshalError := json.MarshalIndent(renderer.plan, indentPrefix, indentSpacer)
	if marshalError != nil {
		return marshalError
	}
	if _, writeError := renderer.stdout.Write(encoded); writeError != nil {
		return writeError
	}
	_, writeError := renderer.stdout.Write([]byte("\n"))
	return writeError
}
