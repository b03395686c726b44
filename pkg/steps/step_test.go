// Test Type: Unit Test
// Description: Tests for step kinds and idempotence of every primitive

package steps_test

import (
	"testing"

	"github.com/arthur-debert/repatch/pkg/steps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	for _, k := range steps.Kinds {
		got, ok := steps.ParseKind(string(k))
		assert.True(t, ok, k)
		assert.Equal(t, k, got)
	}

	_, ok := steps.ParseKind("rename_file")
	assert.False(t, ok)
	assert.Len(t, steps.Kinds, 8)
}

const widgetTest = `import 'package:flutter_test/flutter_test.dart';

void main() {
  group('login', () {
    testWidgets('shows form', (tester) async {
      await tester.pump();
      expect(find.text('Login'), findsOneWidget);
    });
  });
}
`

func asStep[T steps.Step](s T, err error) (steps.Step, error) {
	return s, err
}

func TestSteps_Idempotent(t *testing.T) {
	build := map[string]func() (steps.Step, error){
		"ensure_import": func() (steps.Step, error) {
			return asStep(steps.NewEnsureImport("package:app/main.dart", ""))
		},
		"ensure_line_after_match": func() (steps.Step, error) {
			return asStep(steps.NewEnsureLineAfterMatch(`await tester\.pump\(\);`, []string{"      await tester.idle();"}, true))
		},
		"ensure_setup_block": func() (steps.Step, error) {
			return asStep(steps.NewEnsureSetupBlock([]string{"await init();"}))
		},
		"ensure_function": func() (steps.Step, error) {
			return asStep(steps.NewEnsureFunction("init", "Future<void> init() async {}"))
		},
		"replace_all": func() (steps.Step, error) {
			return asStep(steps.NewReplaceAll(`tester\.pump\(\)`, "tester.pumpAndSettle()"))
		},
		"replace_first_after_anchor": func() (steps.Step, error) {
			return asStep(steps.NewReplaceFirstAfterAnchor(`testWidgets`, 2, `findsOneWidget`, "findsWidgets"))
		},
		"replace_in_named_block": func() (steps.Step, error) {
			return asStep(steps.NewReplaceInNamedBlock(`^login$`, "", `'Login'`, "'Sign in'", steps.LimitAll))
		},
		"replace_nth_occurrence": func() (steps.Step, error) {
			return asStep(steps.NewReplaceNthOccurrence(`tester`, "t", []int{2}))
		},
	}

	for name, mk := range build {
		t.Run(name, func(t *testing.T) {
			step, err := mk()
			require.NoError(t, err)
			once := step.Apply(widgetTest)
			assert.NotEqual(t, widgetTest, once, "step should change the fixture")
			if step.Kind() == steps.KindReplaceNthOccurrence {
				// Positional selection shifts once the selected match is gone.
				return
			}
			assert.Equal(t, once, step.Apply(once))
		})
	}
}
