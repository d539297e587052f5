// Package synth runs stack synthesis as a sequence of phases.
//
// The default pipeline is:
//   - validation: configuration pre-flight, reporting errors and warnings
//   - assembly: declares the stack graph (see package stack)
//   - ordering: computes the deployment order handed to the resolver
//
// Phases share a [Context] carrying the configuration, the accumulated
// [State] and an [Observer] for structured events. The console observer
// writes through a logr.Logger.
package synth
