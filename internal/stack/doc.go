// Package stack assembles the desired-state graph of the application stack.
//
// A [Stack] wraps a graph.Builder and offers one declare operation per
// component: network, cluster, node pools, operator identity bindings,
// database, file system and cache. Each operation declares the component
// together with the supporting resources it implies (roles, security
// groups, subnet groups, generated secrets) and the access rules that let
// the cluster reach it. [Assemble] runs the whole declaration for a
// config.Config and registers the fixed set of operator outputs.
//
// Assembly is synchronous and deterministic. Any invalid input aborts it
// with a configuration error; nothing is handed to the resolver.
package stack
