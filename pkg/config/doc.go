// Package config loads repatch configuration documents.
//
// A document is YAML or TOML, chosen by file extension. Values are layered
// with koanf: built-in defaults, then the document, then REPATCH_-prefixed
// environment variables for the top-level scalar settings. The merged tree
// is decoded with mapstructure and compiled into matchers and steps, so a
// Config that loads without error is ready to run.
//
// Each entry under `steps` is a map with a `type` tag naming one of the
// step kinds. Unknown tags are skipped with a warning and listed in
// Config.Skipped; a known tag with bad parameters fails the load.
package config
