// Package config defines the explicit configuration of a stack declaration.
//
// The [Config] struct carries every value the declaration needs: stack and
// application names, the administrator identity, network sizing, cluster
// settings, node pools, and database, file system and cache parameters.
// It replaces process-wide constants so the same code can declare any
// number of stacks. Configs are read from YAML or TOML files, completed with
// [Config.ApplyDefaults] and checked with [Config.Validate].
package config
