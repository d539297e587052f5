// Package graph holds the desired-state resource graph handed to the resolver.
//
// Nodes live in an arena and are addressed by integer [Handle] values rather
// than pointers, so that the whole graph can be validated before handoff:
// every edge, access rule and output must point at a declared node, the
// dependency edges must be acyclic, and subnet selections must match the
// exposure each resource kind requires.
//
// # Lifecycle
//
// A [Builder] accumulates declarations. [Builder.Finish] validates them and
// returns an immutable [Graph]. Nothing in this repository mutates a finished
// graph; updates and teardown belong to the resolver.
//
// # Access
//
// Network access is deny-by-default. [Graph.Permits] reports true only for a
// declared [AccessRule].
package graph
