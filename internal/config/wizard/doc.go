// Package wizard provides the interactive configuration wizard behind
// `eksstack init`.
//
// RunWizard asks for the handful of values that have no safe default (the
// administrator identity above all) and returns a WizardResult. BuildConfig
// turns the answers into a complete config.Config and WriteConfig writes it
// with a short descriptive header.
package wizard
