package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/report"
	"github.com/arthur-debert/repatch/pkg/ui/output/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Options controls what a Renderer prints and how
type Options struct {
	// Styled enables ANSI styling
	Styled bool
	// Verbose also reports files that did not change
	Verbose bool
	// Diff selects the diff layout for report mode
	Diff report.DiffMode
}

// Summary is the end-of-run tally
type Summary struct {
	Changed      int
	Unchanged    int
	Failed       int
	SkippedSteps int
	DryRun       bool
}

// Renderer prints run output to a writer
type Renderer struct {
	writer   io.Writer
	opts     Options
	renderer *lipgloss.Renderer
}

// NewRenderer creates a Renderer writing to w
func NewRenderer(w io.Writer, opts Options) *Renderer {
	r := &Renderer{writer: w, opts: opts}
	if opts.Styled {
		r.renderer = lipgloss.NewRenderer(w)
		if r.renderer.ColorProfile() == termenv.Ascii {
			r.renderer.SetColorProfile(termenv.ANSI256)
		}
		logger := logging.GetLogger("output.Renderer")
		logger.Debug().
			Str("colorProfile", fmt.Sprintf("%v", r.renderer.ColorProfile())).
			Msg("Styled renderer created")
	}
	return r
}

func (r *Renderer) style(name, s string) string {
	if r.renderer == nil {
		return s
	}
	return styles.GetStyle(name).Renderer(r.renderer).Render(s)
}

func (r *Renderer) println(s string) error {
	_, err := fmt.Fprintln(r.writer, s)
	return err
}

// DryRunBanner announces that nothing will be written
func (r *Renderer) DryRunBanner() error {
	return r.println(r.style("DryRunBanner", "Dry run: no files will be modified"))
}

// Unchanged reports a file the steps left alone. It prints only in verbose
// mode.
func (r *Renderer) Unchanged(path string) error {
	if !r.opts.Verbose {
		return nil
	}
	return r.println(r.style("Muted", "no changes: "+path))
}

// Diff prints what would change in path
func (r *Renderer) Diff(path, oldText, newText string) error {
	if r.opts.Diff == report.DiffUnified {
		return r.unified(path, oldText, newText)
	}

	if err := r.println(r.style("FilePath", "--- "+path)); err != nil {
		return err
	}
	for _, c := range report.Positional(oldText, newText) {
		if c.HasOld {
			if err := r.println(r.style("Removed", "- "+c.Old)); err != nil {
				return err
			}
		}
		if c.HasNew {
			if err := r.println(r.style("Added", "+ "+c.New)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Renderer) unified(path, oldText, newText string) error {
	diff, err := report.Unified(path, oldText, newText)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			line = r.style("FilePath", line)
		case strings.HasPrefix(line, "@@"):
			line = r.style("Muted", line)
		case strings.HasPrefix(line, "-"):
			line = r.style("Removed", line)
		case strings.HasPrefix(line, "+"):
			line = r.style("Added", line)
		}
		if err := r.println(line); err != nil {
			return err
		}
	}
	return nil
}

// Written reports a file that was patched on disk
func (r *Renderer) Written(path string, backupCreated bool) error {
	msg := r.style("Success", "patched ") + r.style("FilePath", path)
	if backupCreated {
		msg += r.style("Muted", " (backup created)")
	}
	return r.println(msg)
}

// Failed reports a file that could not be processed
func (r *Renderer) Failed(path string, err error) error {
	return r.println(r.style("Error", "failed "+path+": ") + err.Error())
}

// Warning prints a non-fatal diagnostic
func (r *Renderer) Warning(msg string) error {
	return r.println(r.style("Warning", "warning: ") + msg)
}

// Summary prints the end-of-run tally
func (r *Renderer) Summary(s Summary) error {
	verb := "changed"
	if s.DryRun {
		verb = "would change"
	}
	line := fmt.Sprintf("%d %s, %d unchanged", s.Changed, verb, s.Unchanged)
	if s.Failed > 0 {
		line += ", " + r.style("Error", fmt.Sprintf("%d failed", s.Failed))
	}
	if s.SkippedSteps > 0 {
		line += fmt.Sprintf(", %d unknown steps skipped", s.SkippedSteps)
	}
	return r.println(r.style("Header", "Summary: ") + line)
}
