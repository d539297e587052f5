// Package naming provides consistent node names for declared resources.
//
// Top-level resources are named {app}-{type} (moodle-vpc, moodle-db) and
// supporting resources derive their names from the resource they serve
// ({db}-secret, {cache}-sg). Names are the identity of a node within the
// graph, so every function here is deterministic.
package naming
