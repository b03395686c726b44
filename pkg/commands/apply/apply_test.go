// Test Type: Integration Test
// Description: Tests for the apply command over real and in-memory filesystems

package apply_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/repatch/pkg/commands/apply"
	"github.com/arthur-debert/repatch/pkg/config"
	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/testutil"
	"github.com/arthur-debert/repatch/pkg/types"
	"github.com/arthur-debert/repatch/pkg/ui/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configYAML = `
targets:
  - integration_test/**/*_test.dart
steps:
  - type: ensure_import
    import: pkg:thing
  - type: ensure_setup_block
    insert_at_start: ["await a();"]
`

const widgetTest = `void main() {
  testWidgets('x', (tester) async {
    await tester.pump();
  });
}
`

const patchedWidgetTest = `import 'pkg:thing';
void main() {
  setUpAll(() async {
    await a();
  });

  testWidgets('x', (tester) async {
    await tester.pump();
  });
}
`

func setupProject(t *testing.T) string {
	t.Helper()
	return testutil.WriteTree(t, map[string]string{
		"repatch.yaml":                        configYAML,
		"integration_test/login_test.dart":    widgetTest,
		"integration_test/a/b/x_test.dart":    patchedWidgetTest,
		"integration_test/helpers.dart":       widgetTest,
		"other/x_test.dart":                   widgetTest,
		"integration_test/notes_test.dart.md": widgetTest,
	})
}

func TestApply_WriteMode(t *testing.T) {
	root := setupProject(t)
	var buf bytes.Buffer

	result, err := apply.Apply(apply.ApplyOptions{
		Root:     root,
		Renderer: output.NewRenderer(&buf, output.Options{}),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Changed)
	assert.Equal(t, 1, result.Unchanged)
	assert.Equal(t, 0, result.Failed)
	require.Len(t, result.Files, 2)
	assert.Equal(t, "integration_test/a/b/x_test.dart", result.Files[0].Path)
	assert.Equal(t, "integration_test/login_test.dart", result.Files[1].Path)
	assert.True(t, result.Files[1].BackupCreated)

	login := filepath.Join(root, "integration_test", "login_test.dart")
	assert.Equal(t, patchedWidgetTest, testutil.ReadFile(t, login))
	assert.Equal(t, widgetTest, testutil.ReadFile(t, login+".bak"))

	// Files outside the targets are never touched
	assert.Equal(t, widgetTest, testutil.ReadFile(t, filepath.Join(root, "other", "x_test.dart")))
	assert.Equal(t, widgetTest, testutil.ReadFile(t, filepath.Join(root, "integration_test", "helpers.dart")))
	assert.NoFileExists(t, filepath.Join(root, "integration_test", "a", "b", "x_test.dart.bak"))

	assert.Contains(t, buf.String(), "patched integration_test/login_test.dart (backup created)")
	assert.Contains(t, buf.String(), "Summary: 1 changed, 1 unchanged")
}

func TestApply_SecondRunIsNoop(t *testing.T) {
	root := setupProject(t)
	opts := apply.ApplyOptions{Root: root, Renderer: output.NewRenderer(&bytes.Buffer{}, output.Options{})}

	_, err := apply.Apply(opts)
	require.NoError(t, err)

	result, err := apply.Apply(opts)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Changed)
	assert.Equal(t, 2, result.Unchanged)
}

func TestApply_BackupNeverOverwritten(t *testing.T) {
	root := setupProject(t)
	login := filepath.Join(root, "integration_test", "login_test.dart")
	opts := apply.ApplyOptions{Root: root, Renderer: output.NewRenderer(&bytes.Buffer{}, output.Options{})}

	_, err := apply.Apply(opts)
	require.NoError(t, err)

	// Revert by hand and run again: the backup keeps the first original
	require.NoError(t, os.WriteFile(login, []byte("void main() {\n  test('y', () {});\n}\n"), 0644))
	result, err := apply.Apply(opts)
	require.NoError(t, err)
	assert.False(t, result.Files[1].BackupCreated)
	assert.Equal(t, widgetTest, testutil.ReadFile(t, login+".bak"))
}

func TestApply_DryRun(t *testing.T) {
	root := setupProject(t)
	var buf bytes.Buffer

	result, err := apply.Apply(apply.ApplyOptions{
		Root:     root,
		DryRun:   true,
		Verbose:  true,
		Renderer: output.NewRenderer(&buf, output.Options{Verbose: true}),
	})
	require.NoError(t, err)
	assert.True(t, result.DryRun)
	assert.Equal(t, 1, result.Changed)

	login := filepath.Join(root, "integration_test", "login_test.dart")
	assert.Equal(t, widgetTest, testutil.ReadFile(t, login))
	assert.NoFileExists(t, login+".bak")

	out := buf.String()
	assert.Contains(t, out, "Dry run")
	assert.Contains(t, out, "--- integration_test/login_test.dart")
	assert.Contains(t, out, "- void main() {")
	assert.Contains(t, out, "+ import 'pkg:thing';")
	assert.Contains(t, out, "no changes: integration_test/a/b/x_test.dart")
	assert.Contains(t, out, "1 would change")
}

func TestApply_ExplicitConfig(t *testing.T) {
	root := setupProject(t)
	custom := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(custom, []byte(
		"targets = [\"other/*.dart\"]\n\n[[steps]]\ntype = \"replace_all\"\npattern = \"pump\"\nreplacement = \"pumpAndSettle\"\n"), 0644))

	result, err := apply.Apply(apply.ApplyOptions{
		Root:       root,
		ConfigPath: custom,
		Renderer:   output.NewRenderer(&bytes.Buffer{}, output.Options{}),
	})
	require.NoError(t, err)
	assert.Equal(t, custom, result.ConfigPath)
	require.Len(t, result.Files, 1)
	assert.Contains(t, testutil.ReadFile(t, filepath.Join(root, "other", "x_test.dart")), "pumpAndSettle")
}

func TestApply_NoConfig(t *testing.T) {
	_, err := apply.Apply(apply.ApplyOptions{Root: t.TempDir()})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestApply_InvalidConfigTouchesNothing(t *testing.T) {
	root := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(root, "repatch.yaml"), []byte("targets: [\"**/*.dart\"]\nsteps: []\n"), 0644))

	_, err := apply.Apply(apply.ApplyOptions{Root: root})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoSteps))
	assert.Equal(t, widgetTest, testutil.ReadFile(t, filepath.Join(root, "integration_test", "login_test.dart")))
}

func parse(t *testing.T, doc string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(doc), "yaml")
	require.NoError(t, err)
	return cfg
}

func TestRun_NoFilesMatched(t *testing.T) {
	fs := testutil.MemoryTree(t, "/proj", map[string]string{"lib/a.dart": "x"})

	ctx := &types.RunContext{Root: "/proj", FS: fs, Out: &bytes.Buffer{}}
	_, err := apply.Run(ctx, parse(t, configYAML), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoFilesMatched))
}

func TestRun_MemoryFS(t *testing.T) {
	fs := testutil.MemoryTree(t, "/proj", map[string]string{"integration_test/login_test.dart": widgetTest})

	var buf bytes.Buffer
	ctx := &types.RunContext{Root: "/proj", Mode: types.RunModeWrite, FS: fs, Out: &buf, BackupSuffix: ".orig"}
	result, err := apply.Run(ctx, parse(t, configYAML), nil)
	require.NoError(t, err)

	assert.Equal(t, 1, ctx.Changed)
	assert.Equal(t, 1, result.Changed)

	assert.Equal(t, patchedWidgetTest, testutil.ReadMemoryFile(t, fs, "/proj/integration_test/login_test.dart"))
	assert.Equal(t, widgetTest, testutil.ReadMemoryFile(t, fs, "/proj/integration_test/login_test.dart.orig"))
	assert.Contains(t, buf.String(), "patched integration_test/login_test.dart")
}

func TestRun_UnknownStepsReported(t *testing.T) {
	fs := testutil.MemoryTree(t, "/proj", map[string]string{"integration_test/a_test.dart": "foo\n"})

	cfg := parse(t, "targets: [\"integration_test/*_test.dart\"]\nsteps:\n  - type: teleport\n  - type: replace_all\n    pattern: foo\n    replacement: bar\n")

	var buf bytes.Buffer
	ctx := &types.RunContext{Root: "/proj", Mode: types.RunModeReport, FS: fs, Out: &buf}
	result, err := apply.Run(ctx, cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"teleport"}, result.SkippedSteps)
	assert.Equal(t, 1, ctx.SkippedSteps)
	assert.Contains(t, buf.String(), "warning: unknown step type \"teleport\" skipped")
	assert.Contains(t, buf.String(), "1 unknown steps skipped")
}

func TestRun_ReadFailureContinues(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	root := setupProject(t)
	blocked := filepath.Join(root, "integration_test", "a", "b", "x_test.dart")
	require.NoError(t, os.Chmod(blocked, 0000))
	t.Cleanup(func() { _ = os.Chmod(blocked, 0644) })

	var buf bytes.Buffer
	ctx := &types.RunContext{Root: root, Mode: types.RunModeWrite, Out: &buf}
	result, err := apply.Run(ctx, parse(t, configYAML), nil)

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrFilesFailed))
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, 1, result.Changed)
	assert.True(t, errors.IsErrorCode(result.Files[0].Err, errors.ErrFileRead))
	assert.Contains(t, buf.String(), "failed integration_test/a/b/x_test.dart")
}
