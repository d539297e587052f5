// Package labels provides consistent tagging for declared cloud resources.
//
// All tags use the eksstack.io domain prefix and follow a builder pattern
// for constructing tag sets with stack name, component, resource kind, and
// manager identification.
package labels
