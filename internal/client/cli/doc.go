// Package cli implements the interactive CreatorLink client: a small REPL
// over the session controller. Commands mirror the web client's pages
// (login, signup, role selection, onboarding), and forced redirects from the
// session layer move the REPL between those screens.
package cli
