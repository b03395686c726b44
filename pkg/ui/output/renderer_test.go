// Test Type: Output Rendering Test
// Description: Tests for diff, notice and summary rendering

package output_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/arthur-debert/repatch/pkg/report"
	"github.com/arthur-debert/repatch/pkg/ui/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_PositionalDiff(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, output.Options{})

	require.NoError(t, r.Diff("test/a.dart", "a\nb\nc\n", "a\nB\nc\n"))
	assert.Equal(t, "--- test/a.dart\n- b\n+ B\n", buf.String())
}

func TestRenderer_PositionalDiffCascade(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, output.Options{})

	require.NoError(t, r.Diff("a.dart", "x\n", "new\nx\n"))
	assert.Equal(t, "--- a.dart\n- x\n+ new\n- \n+ x\n+ \n", buf.String())
}

func TestRenderer_UnifiedDiff(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, output.Options{Diff: report.DiffUnified})

	require.NoError(t, r.Diff("a.dart", "x\n", "new\nx\n"))
	out := buf.String()
	assert.Contains(t, out, "--- a/a.dart\n")
	assert.Contains(t, out, "+new\n")
	assert.Contains(t, out, " x\n")
}

func TestRenderer_Unchanged(t *testing.T) {
	var quiet, verbose bytes.Buffer

	require.NoError(t, output.NewRenderer(&quiet, output.Options{}).Unchanged("a.dart"))
	require.NoError(t, output.NewRenderer(&verbose, output.Options{Verbose: true}).Unchanged("a.dart"))

	assert.Empty(t, quiet.String())
	assert.Equal(t, "no changes: a.dart\n", verbose.String())
}

func TestRenderer_Notices(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, output.Options{})

	require.NoError(t, r.Written("a.dart", true))
	require.NoError(t, r.Written("b.dart", false))
	require.NoError(t, r.Failed("c.dart", errors.New("permission denied")))
	require.NoError(t, r.Warning("unknown step type \"rename\""))

	assert.Equal(t,
		"patched a.dart (backup created)\n"+
			"patched b.dart\n"+
			"failed c.dart: permission denied\n"+
			"warning: unknown step type \"rename\"\n",
		buf.String())
}

func TestRenderer_Summary(t *testing.T) {
	tests := []struct {
		name    string
		summary output.Summary
		want    string
	}{
		{
			name:    "write_mode",
			summary: output.Summary{Changed: 2, Unchanged: 1},
			want:    "Summary: 2 changed, 1 unchanged\n",
		},
		{
			name:    "dry_run_with_failures_and_skips",
			summary: output.Summary{Changed: 1, Failed: 1, SkippedSteps: 2, DryRun: true},
			want:    "Summary: 1 would change, 0 unchanged, 1 failed, 2 unknown steps skipped\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, output.NewRenderer(&buf, output.Options{}).Summary(tt.summary))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestRenderer_StyledKeepsText(t *testing.T) {
	var buf bytes.Buffer
	r := output.NewRenderer(&buf, output.Options{Styled: true})

	require.NoError(t, r.Diff("a.dart", "old", "new"))
	out := buf.String()
	assert.Contains(t, out, "a.dart")
	assert.Contains(t, out, "- old")
	assert.Contains(t, out, "+ new")
	assert.Contains(t, out, "\x1b[")
}
