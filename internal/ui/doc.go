// Package ui provides the Bubble Tea profile screen of the terminal client.
//
// The screen renders a profilesync.Session: it re-reads the session state on
// every store change, edits a draft in three text inputs and saves it through the
// session's reconciler.
package ui
