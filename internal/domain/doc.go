// Package domain contains the sentinel errors shared by the intro screen
// packages.
//
// The errors are re-exported by pkg/introscreen. Runtime failures of a
// sequence (timeouts, reported failures, load errors) are never returned as
// errors; they are represented by the Failure lifecycle state.
package domain
