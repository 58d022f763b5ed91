package output

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/bigFin/glimpse/internal/types"
)

const (
	errorCreateOutputFileFormat    = "failed to create output file %s: %w"
	errorCloseOutputFileFormat     = "failed to close output file %s: %w"
	clipboardCopyErrorFormat       = "failed to copy output to clipboard: %w"
	clipboardServiceMissingMessage = "clipboard service is not available"
	clipboardNoticeMessage         = "copied to clipboard"
	fileNoticeFormat               = "plan written to %s"
)

// DestinationKind names the sink the rendered output reaches.
type DestinationKind string

const (
	// DestinationFile writes output to a named file.
	DestinationFile DestinationKind = "file"
	// DestinationStdout writes output to standard output.
	DestinationStdout DestinationKind = "stdout"
	// DestinationClipboard copies output to the system clipboard.
	DestinationClipboard DestinationKind = "clipboard"
)

// Destination is a resolved output sink. Write rendered output through
// Writer, then call Finish exactly once to complete delivery.
type Destination struct {
	Kind DestinationKind
	Path string

	writer io.Writer
	file   *os.File
	buffer *bytes.Buffer
	copier Copier
	stderr io.Writer
}

// ResolveDestination maps the renderer hand-off onto an output sink. An
// output file wins over printing; with neither requested the output is
// copied to the system clipboard, matching the tool's default behavior.
func ResolveDestination(render types.RenderRequest, copier Copier, stdout, stderr io.Writer) (*Destination, error) {
	if render.OutputFile != "" {
		outputFile, createError := os.Create(render.OutputFile)
		if createError != nil {
			return nil, fmt.Errorf(errorCreateOutputFileFormat, render.OutputFile, createError)
		}
		return &Destination{
			Kind:   DestinationFile,
			Path:   render.OutputFile,
			writer: outputFile,
			file:   outputFile,
			stderr: stderr,
		}, nil
	}
	if render.PrintToStdout {
		return &Destination{Kind: DestinationStdout, writer: stdout}, nil
	}
	if copier == nil {
		return nil, errors.New(clipboardServiceMissingMessage)
	}
	buffer := &bytes.Buffer{}
	return &Destination{
		Kind:   DestinationClipboard,
		writer: buffer,
		buffer: buffer,
		copier: copier,
		stderr: stderr,
	}, nil
}

// Writer returns the sink the rendering should be written to.
func (destination *Destination) Writer() io.Writer {
	return destination.writer
}

// Finish completes delivery: closes the output file or copies the buffered
// rendering to the clipboard, emitting the destination notice on stderr.
func (destination *Destination) Finish() error {
	switch destination.Kind {
	case DestinationFile:
		if closeError := destination.file.Close(); closeError != nil {
			return fmt.Errorf(errorCloseOutputFileFormat, destination.Path, closeError)
		}
		destination.notify(fmt.Sprintf(fileNoticeFormat, destination.Path))
		return nil
	case DestinationClipboard:
		if copyError := destination.copier.Copy(destination.buffer.String()); copyError != nil {
			return fmt.Errorf(clipboardCopyErrorFormat, copyError)
		}
		destination.notify(clipboardNoticeMessage)
		return nil
	default:
		return nil
	}
}

func (destination *Destination) notify(message string) {
	if destination.stderr == nil {
		return
	}
	fmt.Fprintln(destination.stderr, message)
}
