// Package config reads the two configuration sources of the tool.
//
// Directives come from a markdown file (SHABBAT.md) found in the working
// directory or one of its parents; each recognized line looks like
// "- key: value". Settings come from an optional YAML file and only matter to
// the long-running sidecar and its probe.
package config
