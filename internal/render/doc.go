// Package render serializes a desired-state graph for the external resolver.
//
// The synthesized document lists every resource in deployment order with its
// properties, dependencies and tags, followed by the access rules and the
// outputs as unresolved ${node.Attribute} expressions. The same graph also
// yields the kube-system/aws-auth ConfigMap that maps external identities
// into the cluster.
package render
