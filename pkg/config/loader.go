package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	rperrors "github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/logging"
)

// EnvPrefix marks environment variables that override top-level settings
const EnvPrefix = "REPATCH_"

// CandidateNames are tried in order when no document path is given
var CandidateNames = []string{
	"repatch.yaml",
	"repatch.yml",
	".repatch.yaml",
	"repatch.toml",
	".repatch.toml",
}

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("not implemented")
}

// Discover returns the configuration document to use. An explicit path must
// exist; otherwise the first CandidateNames entry present under root wins.
func Discover(root, explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", rperrors.Wrapf(err, rperrors.ErrConfigLoad, "cannot read config %s", explicit)
		}
		return explicit, nil
	}

	for _, name := range CandidateNames {
		path := filepath.Join(root, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", rperrors.Newf(rperrors.ErrNotFound, "no configuration found in %s (looked for %s)",
		root, strings.Join(CandidateNames, ", ")).
		WithDetail("root", root)
}

// FormatOf returns "yaml" or "toml" for a document path
func FormatOf(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", rperrors.Newf(rperrors.ErrConfigParse, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

func parserFor(format string) (koanf.Parser, error) {
	switch format {
	case "yaml", "yml":
		return yaml.Parser(), nil
	case "toml":
		return toml.Parser(), nil
	default:
		return nil, rperrors.Newf(rperrors.ErrConfigParse, "unsupported config format %q", format)
	}
}

// Load reads, merges and compiles the document at path
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, rperrors.Wrapf(err, rperrors.ErrConfigParse, "failed to load config from %s", path)
	}
	if err := loadEnv(k); err != nil {
		return nil, err
	}

	cfg, err := compileFrom(k)
	if err != nil {
		return nil, err
	}
	cfg.Path = path

	logger.Info().
		Str("path", path).
		Int("targets", len(cfg.Targets)).
		Int("steps", len(cfg.Steps)).
		Int("skipped", len(cfg.Skipped)).
		Msg("Configuration loaded")
	return cfg, nil
}

// Parse compiles a document held in memory. format is "yaml" or "toml".
// Environment overrides are not applied.
func Parse(data []byte, format string) (*Config, error) {
	parser, err := parserFor(format)
	if err != nil {
		return nil, err
	}

	k, err := newKoanf()
	if err != nil {
		return nil, err
	}
	if err := k.Load(&rawBytesProvider{bytes: data}, parser); err != nil {
		return nil, rperrors.Wrapf(err, rperrors.ErrConfigParse, "failed to parse %s config", format)
	}
	return compileFrom(k)
}

// newKoanf returns a koanf instance holding the defaults
func newKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, rperrors.Wrap(err, rperrors.ErrConfigLoad, "failed to load defaults")
	}
	return k, nil
}

// loadEnv applies REPATCH_* overrides. REPATCH_BACKUP_SUFFIX maps to
// backup_suffix; list values such as REPATCH_EXTENSIONS are comma separated.
func loadEnv(k *koanf.Koanf) error {
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return rperrors.Wrap(err, rperrors.ErrConfigLoad, "failed to load environment overrides")
	}
	return nil
}

// decodeDocument unmarshals the merged koanf tree
func decodeDocument(k *koanf.Koanf) (*Document, error) {
	var doc Document
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &doc,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &doc, unmarshalConf); err != nil {
		return nil, rperrors.Wrap(err, rperrors.ErrConfigParse, "failed to unmarshal configuration")
	}
	return &doc, nil
}

func compileFrom(k *koanf.Koanf) (*Config, error) {
	doc, err := decodeDocument(k)
	if err != nil {
		return nil, err
	}
	return Compile(doc)
}
