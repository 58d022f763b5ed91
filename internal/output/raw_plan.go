package output

import (
	"fmt"
	"io"
)

const (
	rawPlanHeader   = "glimpse run plan"
	rawEntryIndent  = "  "
	rawEmptySection = "(none)"
)

type rawPlanRenderer struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRawPlanRenderer returns a renderer producing the human-readable plan
// listing on stdout. Notices go to stderr.
func NewRawPlanRenderer(stdout, stderr io.Writer) PlanRenderer {
	return &rawPlanRenderer{stdout: stdout, stderr: stderr}
}

func (renderer *rawPlanRenderer) Handle(event Event) error {
	switch event.Kind {
	case EventKindStart:
		return renderer.writeLine(rawPlanHeader)
	case EventKindSection:
		return renderer.writeSection(event.Section)
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

func (renderer *rawPlanRenderer) Flush() error {
	return nil
}

func (renderer *rawPlanRenderer) writeSection(section *SectionEvent) error {
	if section == nil {
		return nil
	}
	if writeError := renderer.writeLine(""); writeError != nil {
		return writeError
	}
	if writeError := renderer.writeLine(section.Name + ":"); writeError != nil {
		return writeError
	}
	if len(section.Entries) == 0 {
		return renderer.writeLine(rawEntryIndent + rawEmptySection)
	}
	for _, entry := range section.Entries {
		if writeError := renderer.writeLine(rawEntryIndent + formatEntry(entry)); writeError != nil {
			return writeError
		}
	}
	return nil
}

func formatEntry(entry EntryEvent) string {
	line := entry.Value
	if entry.Key != "" {
		line = entry.Key + ": " + entry.Value
	}
	if entry.Display != "" {
		line = fmt.Sprintf("%s (%s)", line, entry.Display)
	}
	return line
}

func (renderer *rawPlanRenderer) writeLine(content string) error {
	if renderer.stdout == nil {
		return nil
	}
	_, writeError := fmt.Fprintln(renderer.stdout, content)
	return writeError
}
