package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/arthur-debert/repatch/pkg/matchers"
	"github.com/arthur-debert/repatch/pkg/steps"
	"github.com/arthur-debert/repatch/pkg/types"
)

// StepSpec holds the union of every step kind's parameters. Which fields
// are read depends on Type.
type StepSpec struct {
	Type string `mapstructure:"type"`

	// ensure_import
	Import string `mapstructure:"import"`
	After  string `mapstructure:"after"`

	// ensure_line_after_match
	Match  string   `mapstructure:"match"`
	Lines  []string `mapstructure:"lines"`
	Unique *bool    `mapstructure:"unique"`

	// ensure_setup_block
	InsertAtStart []string `mapstructure:"insert_at_start"`

	// ensure_function
	Name            string `mapstructure:"name"`
	IfMissingAppend string `mapstructure:"if_missing_append"`

	// replace_*
	Pattern     string `mapstructure:"pattern"`
	Replacement string `mapstructure:"replacement"`
	Anchor      string `mapstructure:"anchor"`
	WithinLines int    `mapstructure:"within_lines"`
	Header      string `mapstructure:"header"`
	Limit       string `mapstructure:"limit"`
	Nth         []int  `mapstructure:"nth"`
}

// Compile validates a decoded document and builds its matchers and steps
func Compile(doc *Document) (*Config, error) {
	logger := logging.GetLogger("config")

	if len(doc.Targets) == 0 {
		return nil, errors.New(errors.ErrNoTargets, "configuration has no targets")
	}
	if len(doc.Steps) == 0 {
		return nil, errors.New(errors.ErrNoSteps, "configuration has no steps")
	}

	targets, err := matchers.CompileAll(doc.Targets)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "invalid target pattern")
	}

	cfg := &Config{
		Extensions:   doc.Extensions,
		BackupSuffix: doc.BackupSuffix,
		Targets:      targets,
	}
	if cfg.BackupSuffix == "" {
		cfg.BackupSuffix = types.DefaultBackupSuffix
	}

	for i, raw := range doc.Steps {
		spec, err := decodeStep(raw)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigValid, "step %d", i+1).
				WithDetail("step", i+1)
		}

		kind, ok := steps.ParseKind(spec.Type)
		if !ok {
			logger.Warn().Int("step", i+1).Str("type", spec.Type).Msg("Unknown step type, skipping")
			cfg.Skipped = append(cfg.Skipped, spec.Type)
			continue
		}

		step, err := Build(kind, spec)
		if err != nil {
			return nil, errors.Wrapf(err, errors.GetErrorCode(err), "step %d (%s)", i+1, kind).
				WithDetail("step", i+1)
		}
		cfg.Steps = append(cfg.Steps, step)
	}

	return cfg, nil
}

// decodeStep maps one raw step entry onto a StepSpec. Unknown keys are
// logged, not rejected.
func decodeStep(raw map[string]interface{}) (StepSpec, error) {
	var spec StepSpec
	var meta mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &spec,
		Metadata:         &meta,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return spec, err
	}
	if err := decoder.Decode(raw); err != nil {
		return spec, err
	}
	if spec.Type == "" {
		return spec, errors.New(errors.ErrStepInvalid, "step has no type")
	}
	if len(meta.Unused) > 0 {
		sort.Strings(meta.Unused)
		logger := logging.GetLogger("config")
		logger.Warn().
			Str("type", spec.Type).
			Str("keys", strings.Join(meta.Unused, ",")).
			Msg("Ignoring unknown step keys")
	}
	return spec, nil
}

// Build turns a spec into the step of the given kind
func Build(kind steps.Kind, spec StepSpec) (steps.Step, error) {
	switch kind {
	case steps.KindEnsureImport:
		return steps.NewEnsureImport(spec.Import, spec.After)
	case steps.KindEnsureLineAfterMatch:
		unique := true
		if spec.Unique != nil {
			unique = *spec.Unique
		}
		return steps.NewEnsureLineAfterMatch(spec.Match, spec.Lines, unique)
	case steps.KindEnsureSetupBlock:
		return steps.NewEnsureSetupBlock(spec.InsertAtStart)
	case steps.KindEnsureFunction:
		return steps.NewEnsureFunction(spec.Name, spec.IfMissingAppend)
	case steps.KindReplaceAll:
		return steps.NewReplaceAll(spec.Pattern, spec.Replacement)
	case steps.KindReplaceFirstAfterAnchor:
		return steps.NewReplaceFirstAfterAnchor(spec.Anchor, spec.WithinLines, spec.Pattern, spec.Replacement)
	case steps.KindReplaceInNamedBlock:
		limit, err := steps.ParseLimit(spec.Limit)
		if err != nil {
			return nil, err
		}
		return steps.NewReplaceInNamedBlock(spec.Name, spec.Header, spec.Pattern, spec.Replacement, limit)
	case steps.KindReplaceNthOccurrence:
		return steps.NewReplaceNthOccurrence(spec.Pattern, spec.Replacement, spec.Nth)
	default:
		return nil, errors.New(errors.ErrStepInvalid, fmt.Sprintf("unsupported step type %q", kind))
	}
}
