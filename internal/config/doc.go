// Package config provides configuration loading, merging, and validation
// for the iron command line tool.
//
// Configuration is assembled from multiple sources. The first source that
// sets a field wins:
//  1. Command-line flags
//  2. Environment variables
//  3. Config file (JSON with comments, or YAML)
//  4. Built-in defaults, which match [iron.DefaultOptions]
//
// The main entry point is [GetStructuredConfig]; [StructuredConfig.IronOptions]
// turns the result into options for the seal engine.
package config
