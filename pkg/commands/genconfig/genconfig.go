// Package genconfig implements the genconfig command, which prints or
// writes a documented sample configuration.
package genconfig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/repatch/pkg/errors"
	"github.com/arthur-debert/repatch/pkg/logging"
)

const header = "repatch configuration. Run `repatch apply --dry-run` to preview changes."

// GenConfigOptions holds options for the genconfig command
type GenConfigOptions struct {
	// Format is "yaml" (default) or "toml"
	Format string
	// Root is where the file goes in write mode
	Root  string
	Write bool
}

// Result holds the rendered document and, in write mode, the file written
type Result struct {
	Format        string
	ConfigContent string
	FileWritten   string
	// AlreadyExisted is set when write mode found a file in place
	AlreadyExisted bool
}

// GenConfig renders the sample configuration and optionally writes it
func GenConfig(opts GenConfigOptions) (*Result, error) {
	logger := logging.GetLogger("commands.genconfig")

	format := strings.ToLower(opts.Format)
	if format == "" {
		format = "yaml"
	}

	var content string
	var err error
	switch format {
	case "yaml", "yml":
		format = "yaml"
		content, err = renderYAML(NewSample())
	case "toml":
		content, err = renderTOML(NewSample())
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unsupported config format %q (use yaml or toml)", opts.Format)
	}
	if err != nil {
		return nil, err
	}

	result := &Result{Format: format, ConfigContent: content}
	if !opts.Write {
		logger.Debug().Str("format", format).Msg("Outputting config to stdout")
		return result, nil
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	path := filepath.Join(root, "repatch."+format)
	if _, err := os.Stat(path); err == nil {
		logger.Warn().Str("path", path).Msg("Config file already exists, skipping")
		result.AlreadyExisted = true
		return result, nil
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", path)
	}

	logger.Info().Str("path", path).Msg("Written config file")
	result.FileWritten = path
	return result, nil
}

// renderYAML encodes the sample through a node tree so that each
// top-level key carries its comment
func renderYAML(s Sample) (string, error) {
	var doc yaml.Node
	if err := doc.Encode(s); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to encode sample config")
	}

	comments := map[string]string{
		"extensions":    "Source file extensions collected under the root",
		"backup_suffix": "Suffix of the one-time backup written next to each modified file",
		"targets":       "Glob patterns selecting files by path relative to the root (** spans directories)",
		"steps":         "Steps run in order over every target file",
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key := doc.Content[i]
		if c, ok := comments[key.Value]; ok {
			key.HeadComment = c
		}
	}
	out := yaml.Node{Kind: yaml.DocumentNode, HeadComment: header, Content: []*yaml.Node{&doc}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render sample config")
	}
	if err := enc.Close(); err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render sample config")
	}
	return buf.String(), nil
}

func renderTOML(s Sample) (string, error) {
	data, err := toml.Marshal(s)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render sample config")
	}
	return "# " + header + "\n\n" + string(data), nil
}
