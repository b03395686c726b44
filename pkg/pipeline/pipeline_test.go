// Test Type: Unit Test
// Description: Tests for ordered step application and change detection

package pipeline_test

import (
	"testing"

	"github.com/arthur-debert/repatch/pkg/pipeline"
	"github.com/arthur-debert/repatch/pkg/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func replaceAll(t *testing.T, pattern, replacement string) steps.Step {
	t.Helper()
	s, err := steps.NewReplaceAll(pattern, replacement)
	require.NoError(t, err)
	return s
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	p := pipeline.New(
		replaceAll(t, `a`, "b"),
		replaceAll(t, `b`, "c"),
	)

	result := p.Apply("a")
	assert.Equal(t, "c", result.Text)
	assert.True(t, result.Changed)
	assert.Equal(t, 2, result.StepsChanged())
	require.Len(t, result.Trace, 2)
	assert.Equal(t, steps.KindReplaceAll, result.Trace[0].Kind)
}

func TestPipeline_OrderMatters(t *testing.T) {
	p := pipeline.New(
		replaceAll(t, `b`, "c"),
		replaceAll(t, `a`, "b"),
	)

	assert.Equal(t, "b", p.Apply("a").Text)
}

func TestPipeline_RevertedChangeIsUnchanged(t *testing.T) {
	p := pipeline.New(
		replaceAll(t, `foo`, "bar"),
		replaceAll(t, `bar`, "foo"),
	)

	result := p.Apply("foo")
	assert.Equal(t, "foo", result.Text)
	assert.False(t, result.Changed)
	assert.Equal(t, 2, result.StepsChanged())
}

func TestPipeline_NoSteps(t *testing.T) {
	p := pipeline.New()

	result := p.Apply("text")
	assert.Equal(t, "text", result.Text)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Trace)
	assert.Equal(t, 0, p.Len())
}

func TestPipeline_StepsIsCopy(t *testing.T) {
	step := replaceAll(t, `a`, "b")
	p := pipeline.New(step)

	list := p.Steps()
	list[0] = replaceAll(t, `x`, "y")
	assert.Equal(t, "b", p.Apply("a").Text)
}

func TestPipeline_Idempotent(t *testing.T) {
	imp, err := steps.NewEnsureImport("package:app/app.dart", "")
	require.NoError(t, err)
	fn, err := steps.NewEnsureFunction("helper", "void helper() {}")
	require.NoError(t, err)

	p := pipeline.New(imp, fn, replaceAll(t, `pump\(\)`, "pumpAndSettle()"))

	first := p.Apply("void main() {\n  tester.pump();\n}\n")
	require.True(t, first.Changed)

	second := p.Apply(first.Text)
	assert.False(t, second.Changed)
	assert.Equal(t, first.Text, second.Text)
}
