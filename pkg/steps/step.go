package steps

import (
	"github.com/arthur-debert/repatch/pkg/logging"
	"github.com/rs/zerolog"
)

// Kind identifies a step variant. The string values are the `type` tags
// used in configuration documents.
type Kind string

const (
	KindEnsureImport            Kind = "ensure_import"
	KindEnsureLineAfterMatch    Kind = "ensure_line_after_match"
	KindEnsureSetupBlock        Kind = "ensure_setup_block"
	KindEnsureFunction          Kind = "ensure_function"
	KindReplaceAll              Kind = "replace_all"
	KindReplaceFirstAfterAnchor Kind = "replace_first_after_anchor"
	KindReplaceInNamedBlock     Kind = "replace_in_named_block"
	KindReplaceNthOccurrence    Kind = "replace_nth_occurrence"
)

// Kinds lists every step variant in declaration order
var Kinds = []Kind{
	KindEnsureImport,
	KindEnsureLineAfterMatch,
	KindEnsureSetupBlock,
	KindEnsureFunction,
	KindReplaceAll,
	KindReplaceFirstAfterAnchor,
	KindReplaceInNamedBlock,
	KindReplaceNthOccurrence,
}

// ParseKind returns the Kind for a configuration tag
func ParseKind(tag string) (Kind, bool) {
	for _, k := range Kinds {
		if string(k) == tag {
			return k, true
		}
	}
	return "", false
}

// Step is one text-editing operation. The set of implementations is closed:
// only the types in this package satisfy it.
type Step interface {
	// Kind returns the variant tag
	Kind() Kind
	// Apply returns the text with the step applied. It never fails; a step
	// that finds nothing to do returns text unchanged.
	Apply(text string) string

	sealed()
}

func (EnsureImport) sealed()            {}
func (EnsureLineAfterMatch) sealed()    {}
func (EnsureSetupBlock) sealed()        {}
func (EnsureFunction) sealed()          {}
func (ReplaceAll) sealed()              {}
func (ReplaceFirstAfterAnchor) sealed() {}
func (ReplaceInNamedBlock) sealed()     {}
func (ReplaceNthOccurrence) sealed()    {}

func (EnsureImport) Kind() Kind            { return KindEnsureImport }
func (EnsureLineAfterMatch) Kind() Kind    { return KindEnsureLineAfterMatch }
func (EnsureSetupBlock) Kind() Kind        { return KindEnsureSetupBlock }
func (EnsureFunction) Kind() Kind          { return KindEnsureFunction }
func (ReplaceAll) Kind() Kind              { return KindReplaceAll }
func (ReplaceFirstAfterAnchor) Kind() Kind { return KindReplaceFirstAfterAnchor }
func (ReplaceInNamedBlock) Kind() Kind     { return KindReplaceInNamedBlock }
func (ReplaceNthOccurrence) Kind() Kind    { return KindReplaceNthOccurrence }

func logger() *zerolog.Logger {
	l := logging.GetLogger("steps")
	return &l
}

// noop logs why a step left the text alone and returns it
func noop(kind Kind, reason string, text string) string {
	logger().Debug().Str("step", string(kind)).Str("reason", reason).Msg("Step is a no-op")
	return text
}
