// Package ui picks how run output is presented: styled for a color
// terminal, plain text otherwise.
package ui

import (
	"io"
	"os"

	"github.com/arthur-debert/repatch/pkg/ui/output"
)

// Resolve turns FormatAuto into a concrete format for w. Writers that are
// not files (buffers, pipes wrapped in other writers) get plain text.
func Resolve(format Format, w io.Writer) Format {
	if format != FormatAuto {
		return format
	}
	if file, ok := w.(*os.File); ok {
		return DetectFormat(file)
	}
	return FormatText
}

// NewRenderer creates an output renderer for w in the given format. The
// Styled field of opts is derived from the format.
func NewRenderer(format Format, w io.Writer, opts output.Options) *output.Renderer {
	opts.Styled = Resolve(format, w) == FormatTerminal
	return output.NewRenderer(w, opts)
}
