// Package pipeline runs an ordered list of steps over the text of one file.
// It encapsulates the flow: apply each step to the output of the previous
// one → compare the final text with the original.
package pipeline

import (
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/steps"
)

// Pipeline is an ordered, immutable list of steps
type Pipeline struct {
	steps []steps.Step
}

// New creates a pipeline that applies the given steps in order
func New(s ...steps.Step) *Pipeline {
	list := make([]steps.Step, len(s))
	copy(list, s)
	return &Pipeline{steps: list}
}

// Len returns the number of steps
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Steps returns a copy of the step list
func (p *Pipeline) Steps() []steps.Step {
	out := make([]steps.Step, len(p.steps))
	copy(out, p.steps)
	return out
}

// StepTrace records what one step did to the running text
type StepTrace struct {
	Index   int
	Kind    steps.Kind
	Changed bool
}

// Result is the outcome of running the pipeline over one text
type Result struct {
	Original string
	Text     string
	// Changed compares the final text with the original only; steps that
	// cancel each other out leave it false.
	Changed bool
	Trace   []StepTrace
}

// StepsChanged returns how many steps altered the text they received
func (r Result) StepsChanged() int {
	n := 0
	for _, st := range r.Trace {
		if st.Changed {
			n++
		}
	}
	return n
}

// Apply runs every step in order. It never fails: a step that finds nothing
// to do passes the text through unchanged.
func (p *Pipeline) Apply(text string) Result {
	logger := logging.GetLogger("pipeline")

	result := Result{
		Original: text,
		Text:     text,
		Trace:    make([]StepTrace, 0, len(p.steps)),
	}

	for i, step := range p.steps {
		next := step.Apply(result.Text)
		changed := next != result.Text
		result.Trace = append(result.Trace, StepTrace{Index: i, Kind: step.Kind(), Changed: changed})
		if changed {
			logger.Trace().Int("step", i).Str("kind", string(step.Kind())).Msg("Step changed text")
		}
		result.Text = next
	}

	result.Changed = result.Text != text
	return result
}
