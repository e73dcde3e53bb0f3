// Package config provides configuration loading, merging, and validation
// facilities for the fieldsync client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. JSON config file
//
// Command-line overrides are applied by the CLI layer on top of the loaded
// [ClientConfig]; the package itself never touches os.Args.
//
// The main entry point is [GetClientConfig].
package config
