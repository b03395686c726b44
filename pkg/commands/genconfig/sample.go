package genconfig

// Sample mirrors the configuration document layout with one example of
// every step type
type Sample struct {
	Extensions   []string     `yaml:"extensions" toml:"extensions" comment:"Source file extensions collected under the root"`
	BackupSuffix string       `yaml:"backup_suffix" toml:"backup_suffix" comment:"Suffix of the one-time backup written next to each modified file"`
	Targets      []string     `yaml:"targets" toml:"targets" comment:"Glob patterns selecting files by path relative to the root (** spans directories)"`
	Steps        []SampleStep `yaml:"steps" toml:"steps" comment:"Steps run in order over every target file"`
}

// SampleStep is one step entry; unused parameters are omitted
type SampleStep struct {
	Type            string   `yaml:"type" toml:"type"`
	Import          string   `yaml:"import,omitempty" toml:"import,omitempty"`
	After           string   `yaml:"after,omitempty" toml:"after,omitempty"`
	Match           string   `yaml:"match,omitempty" toml:"match,omitempty"`
	Lines           []string `yaml:"lines,omitempty" toml:"lines,omitempty"`
	Unique          *bool    `yaml:"unique,omitempty" toml:"unique,omitempty"`
	InsertAtStart   []string `yaml:"insert_at_start,omitempty" toml:"insert_at_start,omitempty"`
	Name            string   `yaml:"name,omitempty" toml:"name,omitempty"`
	IfMissingAppend string   `yaml:"if_missing_append,omitempty" toml:"if_missing_append,omitempty"`
	Anchor          string   `yaml:"anchor,omitempty" toml:"anchor,omitempty"`
	WithinLines     int      `yaml:"within_lines,omitempty" toml:"within_lines,omitempty"`
	Pattern         string   `yaml:"pattern,omitempty" toml:"pattern,omitempty"`
	Replacement     string   `yaml:"replacement,omitempty" toml:"replacement,omitempty"`
	Limit           string   `yaml:"limit,omitempty" toml:"limit,omitempty"`
	Nth             []int    `yaml:"nth,omitempty" toml:"nth,omitempty"`
}

// NewSample returns the sample document
func NewSample() Sample {
	unique := true
	return Sample{
		Extensions:   []string{".dart"},
		BackupSuffix: ".bak",
		Targets:      []string{"integration_test/**/*_test.dart"},
		Steps: []SampleStep{
			{
				Type:   "ensure_import",
				Import: "package:integration_test/integration_test.dart",
				After:  "package:flutter_test/flutter_test.dart",
			},
			{
				Type:   "ensure_line_after_match",
				Match:  `void main\(\) \{`,
				Lines:  []string{"  IntegrationTestWidgetsFlutterBinding.ensureInitialized();"},
				Unique: &unique,
			},
			{
				Type:          "ensure_setup_block",
				InsertAtStart: []string{"await initFixtures();"},
			},
			{
				Type:            "ensure_function",
				Name:            "initFixtures",
				IfMissingAppend: "Future<void> initFixtures() async {}",
			},
			{
				Type:        "replace_all",
				Pattern:     `(\w+)\.pump\(\)`,
				Replacement: `\1.pumpAndSettle()`,
			},
			{
				Type:        "replace_first_after_anchor",
				Anchor:      `testWidgets\('login'`,
				WithinLines: 5,
				Pattern:     `findsNothing`,
				Replacement: "findsOneWidget",
			},
			{
				Type:        "replace_in_named_block",
				Name:        "^login$",
				Pattern:     `Duration\(seconds: \d+\)`,
				Replacement: "Duration(seconds: 10)",
				Limit:       "all",
			},
			{
				Type:        "replace_nth_occurrence",
				Pattern:     `await tester\.tap\(`,
				Replacement: "await tester.tapAt(",
				Nth:         []int{2},
			},
		},
	}
}
