package config

import (
	"github.com/arthur-debert/repatch/pkg/discovery"
	"github.com/arthur-debert/repatch/pkg/matchers"
	"github.com/arthur-debert/repatch/pkg/steps"
	"github.com/arthur-debert/repatch/pkg/types"
)

// Document is the raw configuration tree as decoded from koanf
type Document struct {
	Extensions   []string                 `koanf:"extensions"`
	BackupSuffix string                   `koanf:"backup_suffix"`
	Targets      []string                 `koanf:"targets"`
	Steps        []map[string]interface{} `koanf:"steps"`
}

// Config is a validated, compiled configuration
type Config struct {
	// Path is the document the configuration was loaded from, if any
	Path         string
	Extensions   []string
	BackupSuffix string
	Targets      matchers.Set
	Steps        []steps.Step
	// Skipped lists the unknown step types that were ignored
	Skipped []string
}

// Defaults returns the values applied before any document is read
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"extensions":    append([]string(nil), discovery.DefaultExtensions...),
		"backup_suffix": types.DefaultBackupSuffix,
	}
}
